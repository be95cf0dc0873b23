package entity

import "time"

// IncidentDetails carries the structured facts attached to a journal entry.
type IncidentDetails struct {
	TypeOfAbuse        []string `json:"type_of_abuse" dynamodbav:"type_of_abuse"`
	ChildrenPresent    bool     `json:"children_present" dynamodbav:"children_present"`
	WeaponInvolved     bool     `json:"weapon_involved" dynamodbav:"weapon_involved"`
	InjuryOccurred     bool     `json:"injury_occurred" dynamodbav:"injury_occurred"`
	InjuryDescription  string   `json:"injury_description" dynamodbav:"injury_description"`
	EvidenceAvailable  []string `json:"evidence_available" dynamodbav:"evidence_available"`
	PoliceReportNumber string   `json:"police_report_number" dynamodbav:"police_report_number"`
}

// JournalEntry is a durable record keyed by username + entry timestamp.
// Guided-capture completions and direct journal writes both land here.
type JournalEntry struct {
	Username       string            `json:"username" dynamodbav:"username"`
	EntryTimestamp time.Time         `json:"entry_timestamp" dynamodbav:"entry_timestamp"`
	Title          string            `json:"title" dynamodbav:"title"`
	Content        string            `json:"content" dynamodbav:"content"`
	EventDate      string            `json:"event_date" dynamodbav:"event_date"`
	Details        IncidentDetails   `json:"details" dynamodbav:"details"`
	Fields         map[string]string `json:"fields,omitempty" dynamodbav:"fields,omitempty"`
}
