package xapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/edupipe/edupipe/internal/event"
)

func TestNewAgent(t *testing.T) {
	ag := NewAgent(event.Actor{ID: "u1"}, "https://lms.acme.edu")
	if ag.Account == nil || ag.Account.Name != "u1" || ag.Account.HomePage != "https://lms.acme.edu" {
		t.Errorf("Account = %+v", ag.Account)
	}
	if ag.Mbox != "" {
		t.Errorf("Mbox = %q, want empty without email", ag.Mbox)
	}

	ag = NewAgent(event.Actor{ID: "u1", Email: "ada@acme.edu"}, "https://lms.acme.edu")
	if ag.Mbox != "mailto:ada@acme.edu" {
		t.Errorf("Mbox = %q", ag.Mbox)
	}
}

func TestNewActivityPrunes(t *testing.T) {
	act := NewActivity("assignment", "https://x/a1", "Essay", "")
	data, err := json.Marshal(act)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if strings.Contains(s, "description") {
		t.Errorf("absent description serialized: %s", s)
	}
	if !strings.Contains(s, "Essay") {
		t.Errorf("name missing: %s", s)
	}
	if !strings.Contains(s, "school-assignment") {
		t.Errorf("activity type missing: %s", s)
	}
}

func TestResultPrunes(t *testing.T) {
	st := Statement{ID: "x", Object: Activity{ObjectType: "Activity", ID: "https://x/a1"}}
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, absent := range []string{"result", "definition"} {
		if strings.Contains(s, absent) {
			t.Errorf("absent %s serialized: %s", absent, s)
		}
	}
}

func TestLangMap(t *testing.T) {
	if LangMap("") != nil {
		t.Error("LangMap(\"\") should be nil so omitempty prunes it")
	}
	m := LangMap("Essay")
	if m["en-US"] != "Essay" {
		t.Errorf("LangMap = %v", m)
	}
}
