// Package vocab holds the controlled-vocabulary tables shared by the two
// output formats. Both tables are indexed by the same semantic names,
// loaded once at init, and never mutated.
package vocab

// Verb is an activity-stream verb term.
type Verb struct {
	URI     string
	Display string
}

// CaliperTerm pairs the structured format's event type with its action.
type CaliperTerm struct {
	EventType string
	Action    string
}

// Caliper entity kinds used by the structured renderers.
const (
	EntityPerson     = "Person"
	EntityApp        = "SoftwareApplication"
	EntityAssignment = "AssignableDigitalResource"
	EntityAttempt    = "Attempt"
	EntityScore      = "Score"
	EntityComment    = "Comment"
)

// verbs maps semantic verb names to registry verb URIs.
var verbs = map[string]Verb{
	"created":   {URI: "http://activitystrea.ms/schema/1.0/create", Display: "created"},
	"modified":  {URI: "http://activitystrea.ms/schema/1.0/update", Display: "updated"},
	"viewed":    {URI: "http://id.tincanapi.com/verb/viewed", Display: "viewed"},
	"submitted": {URI: "http://activitystrea.ms/schema/1.0/submit", Display: "submitted"},
	"scored":    {URI: "http://adlnet.gov/expapi/verbs/scored", Display: "scored"},
	"commented": {URI: "http://adlnet.gov/expapi/verbs/commented", Display: "commented"},
}

// caliperTerms parallels verbs, keyed by the same semantic names.
var caliperTerms = map[string]CaliperTerm{
	"created":   {EventType: "AssignableEvent", Action: "Created"},
	"modified":  {EventType: "AssignableEvent", Action: "Modified"},
	"viewed":    {EventType: "ViewEvent", Action: "Viewed"},
	"submitted": {EventType: "AssignableEvent", Action: "Submitted"},
	"scored":    {EventType: "GradeEvent", Action: "Graded"},
	"commented": {EventType: "FeedbackEvent", Action: "Commented"},
}

// activityTypes maps object kind names to flat-format activity type URIs.
var activityTypes = map[string]string{
	"assignment": "http://id.tincanapi.com/activitytype/school-assignment",
	"submission": "http://id.tincanapi.com/activitytype/solution",
	"comment":    "http://activitystrea.ms/schema/1.0/comment",
}

// LookupVerb returns the flat-format verb for a semantic name.
func LookupVerb(name string) (Verb, bool) {
	v, ok := verbs[name]
	return v, ok
}

// LookupCaliper returns the structured-format term for a semantic name.
func LookupCaliper(name string) (CaliperTerm, bool) {
	t, ok := caliperTerms[name]
	return t, ok
}

// ActivityType returns the flat-format activity type URI for an object kind.
func ActivityType(kind string) (string, bool) {
	t, ok := activityTypes[kind]
	return t, ok
}
