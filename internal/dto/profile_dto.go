package dto

import "bestill-chatbot-be/internal/entity"

type UpdateProfileRequest struct {
	Age                *int                     `json:"age" validate:"omitempty,gte=0,lte=130"`
	Gender             string                   `json:"gender" validate:"omitempty,max=64"`
	RelationshipStatus string                   `json:"relationship_status" validate:"omitempty,max=64"`
	Children           *entity.ChildrenInfo     `json:"children,omitempty"`
	SupportSystem      string                   `json:"support_system" validate:"omitempty,max=500"`
	EmergencyContact   *entity.EmergencyContact `json:"emergency_contact,omitempty"`
	SafetyPlan         *entity.SafetyPlan       `json:"safety_plan,omitempty"`
	RiskFactors        *entity.RiskFactors      `json:"risk_factors,omitempty"`
}

type ProfileResponse struct {
	Profile *entity.Profile `json:"profile"`
}
