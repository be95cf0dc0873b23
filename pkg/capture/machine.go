package capture

import (
	"strings"

	"bestill-chatbot-be/pkg/store"
)

// Question is one step of the guided-capture interview. The field id must
// match the journal record column it fills.
type Question struct {
	FieldId string
	Title   string
	Prompt  string
}

// DefaultQuestions returns the fixed interview used for journal entries.
func DefaultQuestions() []Question {
	return []Question{
		{FieldId: "date", Title: "Date", Prompt: "First, what is the date of the event?"},
		{FieldId: "location", Title: "Location", Prompt: "Where did the event take place?"},
		{FieldId: "parties_involved", Title: "Parties Involved", Prompt: "Who was involved in this event?"},
		{FieldId: "description", Title: "Description", Prompt: "Please provide a factual description of the event."},
		{FieldId: "evidence_notes", Title: "Evidence Notes", Prompt: "Are there any notes on evidence (e.g., photos, messages)? If not, say 'N/A'."},
	}
}

// OutcomeKind tags the result of an Advance call.
type OutcomeKind int

const (
	// OutcomeNext means an answer was recorded and the next question
	// should be shown.
	OutcomeNext OutcomeKind = iota
	// OutcomeComplete means every field has a value and the assembled
	// record is ready for the sink. Advance at a completed session
	// discards the input and re-emits the same record, so a retried
	// sink write never re-asks a question.
	OutcomeComplete
)

type Outcome struct {
	Kind   OutcomeKind
	Prompt string
	// Record is a copy of the collected fields, only set on OutcomeComplete.
	Record map[string]string
}

// Machine drives the fixed-question interview. It is pure transition
// logic: callers own per-user locking and persistence of the session.
type Machine struct {
	questions []Question
	trigger   string
}

// NewMachine creates a machine over an ordered question spec. The spec is
// fixed for the process lifetime.
func NewMachine(trigger string, questions []Question) *Machine {
	return &Machine{questions: questions, trigger: strings.ToLower(strings.TrimSpace(trigger))}
}

func (m *Machine) Questions() []Question {
	return m.questions
}

// IsTrigger reports whether input starts a capture. Matching is exact
// after trimming and case-folding.
func (m *Machine) IsTrigger(input string) bool {
	return strings.ToLower(strings.TrimSpace(input)) == m.trigger
}

// Start activates a session at the first question and returns its prompt.
func (m *Machine) Start(session *store.CaptureSession) string {
	session.Active = true
	session.StepIndex = 0
	session.Collected = make(map[string]string)
	return m.questions[0].Prompt
}

// Advance consumes one answer. The session must be active.
func (m *Machine) Advance(session *store.CaptureSession, input string) Outcome {
	if session.StepIndex >= len(m.questions) {
		// Already complete: sink write failed last time. Discard the
		// input and hand the record back for another attempt.
		return Outcome{Kind: OutcomeComplete, Record: m.copyRecord(session)}
	}

	session.Collected[m.questions[session.StepIndex].FieldId] = input
	session.StepIndex++

	if session.StepIndex < len(m.questions) {
		return Outcome{Kind: OutcomeNext, Prompt: m.questions[session.StepIndex].Prompt}
	}
	return Outcome{Kind: OutcomeComplete, Record: m.copyRecord(session)}
}

// Reset forces the session back to idle, discarding partial data.
func (m *Machine) Reset(session *store.CaptureSession) {
	session.Reset()
}

func (m *Machine) copyRecord(session *store.CaptureSession) map[string]string {
	record := make(map[string]string, len(session.Collected))
	for k, v := range session.Collected {
		record[k] = v
	}
	return record
}
