package service

import (
	"context"
	"time"

	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/pkg/apperror"
	"bestill-chatbot-be/internal/repository/contract"
)

type IProfileService interface {
	GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, username string, request *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	profiles contract.ProfileRepository
}

func NewProfileService(profiles contract.ProfileRepository) IProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to load profile", err)
	}
	if profile == nil {
		return nil, apperror.NotFound("profile not found")
	}
	return &dto.ProfileResponse{Profile: profile}, nil
}

// UpdateProfile merges the submitted sections into the stored document,
// creating it if the registration seed never landed.
func (s *profileService) UpdateProfile(ctx context.Context, username string, request *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to load profile", err)
	}
	if profile == nil {
		profile = entity.NewProfile(username, time.Now().UTC())
	}

	if request.Age != nil {
		profile.Age = request.Age
	}
	if request.Gender != "" {
		profile.Gender = request.Gender
	}
	if request.RelationshipStatus != "" {
		profile.RelationshipStatus = request.RelationshipStatus
	}
	if request.Children != nil {
		profile.Children = *request.Children
	}
	if request.SupportSystem != "" {
		profile.SupportSystem = request.SupportSystem
	}
	if request.EmergencyContact != nil {
		profile.EmergencyContact = *request.EmergencyContact
	}
	if request.SafetyPlan != nil {
		profile.SafetyPlan = *request.SafetyPlan
	}
	if request.RiskFactors != nil {
		profile.RiskFactors = *request.RiskFactors
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to save profile", err)
	}
	return &dto.ProfileResponse{Profile: profile}, nil
}
