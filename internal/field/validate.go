package field

import "fmt"

// Reason classifies a validation failure.
type Reason string

const (
	ReasonMissing   Reason = "missing"
	ReasonWrongType Reason = "wrong-type"
)

// Error describes the first field that failed validation.
type Error struct {
	Field  string
	Reason Reason
	Want   Kind
}

func (e *Error) Error() string {
	if e.Reason == ReasonMissing {
		return fmt.Sprintf("field %q: missing required field", e.Field)
	}
	return fmt.Sprintf("field %q: expected %s", e.Field, e.Want)
}

// Rule declares how one metadata field is checked.
type Rule struct {
	Name     string
	Kind     Kind
	Required bool
}

// Rules is an ordered whitelist of checked fields. Metadata keys without a
// rule pass through untouched.
type Rules []Rule

// Validate checks md against the rules in declared order and returns the
// first failure, or nil when every declared field passes. Pure function.
func (rs Rules) Validate(md Metadata) *Error {
	for _, r := range rs {
		v, ok := md[r.Name]
		if !ok || v.empty() {
			if r.Required {
				return &Error{Field: r.Name, Reason: ReasonMissing, Want: r.Kind}
			}
			continue
		}
		if !v.conformsTo(r.Kind) {
			return &Error{Field: r.Name, Reason: ReasonWrongType, Want: r.Kind}
		}
	}
	return nil
}
