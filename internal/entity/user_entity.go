package entity

import "time"

// Credential is one row of the credentials table. PasswordHash is a bcrypt
// digest; the plaintext never leaves the auth service.
type Credential struct {
	Username     string `dynamodbav:"username"`
	PasswordHash string `dynamodbav:"password"`
}

// EmergencyContact identifies a person the user trusts in a crisis.
type EmergencyContact struct {
	Name         string `json:"name" dynamodbav:"name"`
	Phone        string `json:"phone" dynamodbav:"phone"`
	Relationship string `json:"relationship" dynamodbav:"relationship"`
}

type ChildrenInfo struct {
	HasChildren bool   `json:"has_children" dynamodbav:"has_children"`
	Count       int    `json:"count" dynamodbav:"count"`
	Details     string `json:"details" dynamodbav:"details"`
}

type SafetyPlan struct {
	SafePlace          string   `json:"safe_place" dynamodbav:"safe_place"`
	CodedMessage       string   `json:"coded_message" dynamodbav:"coded_message"`
	ImportantDocuments []string `json:"important_documents" dynamodbav:"important_documents"`
	Notes              string   `json:"notes" dynamodbav:"notes"`
}

type RiskFactors struct {
	AbuserAccessToWeapons bool `json:"abuser_access_to_weapons" dynamodbav:"abuser_access_to_weapons"`
}

// Profile is the per-user support document created at registration.
type Profile struct {
	Username           string           `json:"username" dynamodbav:"username"`
	CreatedAt          time.Time        `json:"created_at" dynamodbav:"created_at"`
	Age                *int             `json:"age" dynamodbav:"age"`
	Gender             string           `json:"gender" dynamodbav:"gender"`
	RelationshipStatus string           `json:"relationship_status" dynamodbav:"relationship_status"`
	Children           ChildrenInfo     `json:"children" dynamodbav:"children"`
	SupportSystem      string           `json:"support_system" dynamodbav:"support_system"`
	EmergencyContact   EmergencyContact `json:"emergency_contact" dynamodbav:"emergency_contact"`
	SafetyPlan         SafetyPlan       `json:"safety_plan" dynamodbav:"safety_plan"`
	RiskFactors        RiskFactors      `json:"risk_factors" dynamodbav:"risk_factors"`
}

// NewProfile returns the empty profile seeded at registration time.
func NewProfile(username string, at time.Time) *Profile {
	return &Profile{
		Username:  username,
		CreatedAt: at,
	}
}
