package capture

import (
	"testing"

	"bestill-chatbot-be/pkg/store"
)

func TestIsTrigger(t *testing.T) {
	m := NewMachine("new entry", DefaultQuestions())

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "exact match", input: "new entry", want: true},
		{name: "case folded", input: "New Entry", want: true},
		{name: "upper case", input: "NEW ENTRY", want: true},
		{name: "surrounding whitespace", input: "  new entry  ", want: true},
		{name: "trailing text", input: "new entryx", want: false},
		{name: "embedded in sentence", input: "please make a new entry", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsTrigger(tt.input); got != tt.want {
				t.Errorf("IsTrigger(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFullCaptureFlow(t *testing.T) {
	m := NewMachine("new entry", DefaultQuestions())
	session := store.NewCaptureSession("alice")

	prompt := m.Start(session)
	if prompt != DefaultQuestions()[0].Prompt {
		t.Fatalf("Start prompt = %q, want first question", prompt)
	}
	if !session.Active {
		t.Fatal("session not active after Start")
	}

	answers := []string{"2024-03-01", "home", "my partner", "an argument that escalated", "N/A"}
	for i, answer := range answers[:4] {
		outcome := m.Advance(session, answer)
		if outcome.Kind != OutcomeNext {
			t.Fatalf("answer %d: kind = %v, want OutcomeNext", i, outcome.Kind)
		}
		if outcome.Prompt != DefaultQuestions()[i+1].Prompt {
			t.Errorf("answer %d: prompt = %q, want question %d", i, outcome.Prompt, i+1)
		}
	}

	outcome := m.Advance(session, answers[4])
	if outcome.Kind != OutcomeComplete {
		t.Fatalf("final answer: kind = %v, want OutcomeComplete", outcome.Kind)
	}

	want := map[string]string{
		"date":             "2024-03-01",
		"location":         "home",
		"parties_involved": "my partner",
		"description":      "an argument that escalated",
		"evidence_notes":   "N/A",
	}
	for field, value := range want {
		if outcome.Record[field] != value {
			t.Errorf("record[%q] = %q, want %q", field, outcome.Record[field], value)
		}
	}
}

func TestAdvanceAtCompleteDiscardsInput(t *testing.T) {
	m := NewMachine("new entry", DefaultQuestions())
	session := store.NewCaptureSession("alice")

	m.Start(session)
	for _, answer := range []string{"a", "b", "c", "d", "e"} {
		m.Advance(session, answer)
	}

	// A retry after a failed sink write must re-emit the same record and
	// must not absorb the retry input into any field.
	outcome := m.Advance(session, "anything at all")
	if outcome.Kind != OutcomeComplete {
		t.Fatalf("kind = %v, want OutcomeComplete", outcome.Kind)
	}
	if outcome.Record["evidence_notes"] != "e" {
		t.Errorf("record mutated on retry: evidence_notes = %q", outcome.Record["evidence_notes"])
	}
	for _, v := range outcome.Record {
		if v == "anything at all" {
			t.Error("retry input leaked into the record")
		}
	}
}

func TestRecordIsACopy(t *testing.T) {
	m := NewMachine("new entry", DefaultQuestions())
	session := store.NewCaptureSession("alice")

	m.Start(session)
	for _, answer := range []string{"a", "b", "c", "d", "e"} {
		m.Advance(session, answer)
	}

	outcome := m.Advance(session, "retry")
	outcome.Record["date"] = "tampered"

	again := m.Advance(session, "retry")
	if again.Record["date"] != "a" {
		t.Errorf("session state shared with returned record: date = %q", again.Record["date"])
	}
}

func TestReset(t *testing.T) {
	m := NewMachine("new entry", DefaultQuestions())
	session := store.NewCaptureSession("alice")

	m.Start(session)
	m.Advance(session, "2024-03-01")
	m.Reset(session)

	if session.Active {
		t.Error("session still active after Reset")
	}
	if session.StepIndex != 0 {
		t.Errorf("StepIndex = %d after Reset, want 0", session.StepIndex)
	}
	if len(session.Collected) != 0 {
		t.Errorf("Collected not emptied after Reset: %v", session.Collected)
	}
}
