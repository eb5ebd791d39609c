package field

import "time"

// Metadata is the event's field map. Absence of a key is the only way to
// express an absent value; templates rely on that for pruning.
type Metadata map[string]Value

func (m Metadata) Lookup(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Text returns the textual value for name, or "" when absent.
func (m Metadata) Text(name string) string {
	return m[name].Text()
}

// TextPtr returns a pointer to the textual value, or nil when absent/empty.
func (m Metadata) TextPtr(name string) *string {
	v, ok := m[name]
	if !ok || v.empty() {
		return nil
	}
	s := v.Text()
	return &s
}

// Number returns the numeric value and whether it was present.
func (m Metadata) Number(name string) (float64, bool) {
	v, ok := m[name]
	if !ok || v.Kind() != KindNumber {
		return 0, false
	}
	return v.Number(), true
}

// NumberPtr returns a pointer to the numeric value, or nil when absent.
func (m Metadata) NumberPtr(name string) *float64 {
	f, ok := m.Number(name)
	if !ok {
		return nil
	}
	return &f
}

// DateText returns the RFC 3339 rendering of a date field, or "" when absent.
func (m Metadata) DateText(name string) string {
	v, ok := m[name]
	if !ok {
		return ""
	}
	t := v.Date()
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Strings returns the sequence value for name, or nil when absent.
func (m Metadata) Strings(name string) []string {
	return m[name].Seq()
}

// DecodeJSON converts a decoded JSON object into Metadata. Strings become
// text, numbers become number, homogeneous string arrays become sequences.
// Nulls and unsupported shapes are dropped, which reads as absence.
func DecodeJSON(raw map[string]any) Metadata {
	md := make(Metadata, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			md[k] = Text(t)
		case float64:
			md[k] = Number(t)
		case []any:
			items := make([]string, 0, len(t))
			for _, it := range t {
				if s, ok := it.(string); ok {
					items = append(items, s)
				}
			}
			md[k] = Seq(items...)
		}
	}
	return md
}
