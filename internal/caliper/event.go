package caliper

// Event is one structured-format record.
type Event struct {
	Context   string `json:"@context"`
	ID        string `json:"id"`
	Type      string `json:"type,omitempty"`
	Actor     Entity `json:"actor"`
	Action    string `json:"action"`
	Object    Entity `json:"object"`
	Generated Entity `json:"generated,omitempty"`
	Target    Entity `json:"target,omitempty"`
	EventTime string `json:"eventTime"`
	EdApp     Entity `json:"edApp,omitempty"`
}

// Envelope is the transport wrapper the event store expects.
type Envelope struct {
	Sensor      string   `json:"sensor"`
	SendTime    string   `json:"sendTime"`
	DataVersion string   `json:"dataVersion"`
	Data        []*Event `json:"data"`
}
