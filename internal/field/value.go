package field

import (
	"net/url"
	"time"
)

// Kind discriminates the value variants the engine understands.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
	KindDate
	KindURI
	KindSequence
)

// String returns the kind name used in rule declarations and error messages.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindURI:
		return "uri"
	case KindSequence:
		return "array"
	}
	return "unknown"
}

// Value is a tagged variant over the field kinds. The zero Value is empty text.
type Value struct {
	kind Kind
	text string
	num  float64
	date time.Time
	seq  []string
}

func Text(s string) Value     { return Value{kind: KindText, text: s} }
func Number(f float64) Value  { return Value{kind: KindNumber, num: f} }
func Date(t time.Time) Value  { return Value{kind: KindDate, date: t} }
func URI(s string) Value      { return Value{kind: KindURI, text: s} }
func Seq(items ...string) Value {
	return Value{kind: KindSequence, seq: items}
}

func (v Value) Kind() Kind { return v.kind }

// Text returns the textual content for text and uri variants, "" otherwise.
func (v Value) Text() string {
	if v.kind == KindText || v.kind == KindURI {
		return v.text
	}
	return ""
}

func (v Value) Number() float64 { return v.num }

// Date returns the parsed time for date variants. A text variant holding an
// RFC 3339 string is parsed on demand so JSON-decoded dates round-trip.
func (v Value) Date() time.Time {
	if v.kind == KindDate {
		return v.date
	}
	if v.kind == KindText {
		if t, err := time.Parse(time.RFC3339, v.text); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (v Value) Seq() []string { return v.seq }

// conformsTo reports whether the value satisfies a declared rule kind.
// Text coerces to uri and date when it parses as one.
func (v Value) conformsTo(k Kind) bool {
	switch k {
	case KindText:
		return v.kind == KindText || v.kind == KindURI
	case KindNumber:
		return v.kind == KindNumber
	case KindDate:
		switch v.kind {
		case KindDate:
			return true
		case KindText:
			_, err := time.Parse(time.RFC3339, v.text)
			return err == nil
		}
		return false
	case KindURI:
		switch v.kind {
		case KindURI:
			return true
		case KindText:
			u, err := url.Parse(v.text)
			return err == nil && u.IsAbs()
		}
		return false
	case KindSequence:
		return v.kind == KindSequence
	}
	return false
}

// empty reports whether a present value still counts as missing for a
// required field (null and empty-string both count).
func (v Value) empty() bool {
	return (v.kind == KindText || v.kind == KindURI) && v.text == ""
}
