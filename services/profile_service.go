package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/jxeer/Harmonia/config"
	"github.com/jxeer/Harmonia/db"
	apiError "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"gorm.io/gorm"
)

type ProfileService interface {
	OnboardPatient(userID string, profile *models.PatientProfile) (*models.PatientProfile, *apiError.Error)
	UpdatePatientProfile(userID string, updates map[string]interface{}) (*models.PatientProfile, *apiError.Error)
	GetPatientProfile(userID string) (*models.PatientProfile, error)
	OnboardProvider(userID string, profile *models.ProviderProfile) (*models.ProviderProfile, *apiError.Error)
	UpdateProviderProfile(userID string, updates map[string]interface{}) (*models.ProviderProfile, *apiError.Error)
	GetProviderProfile(userID string) (*models.ProviderProfile, error)
	SearchProviders(filters models.ProviderSearchFilters) ([]models.ProviderProfile, error)
}

type profileService struct {
	Config      *config.Config
	profileRepo db.ProfileRepository
	authRepo    db.AuthRepository
}

func NewProfileService(profileRepo db.ProfileRepository, authRepo db.AuthRepository, conf *config.Config) ProfileService {
	return &profileService{
		Config:      conf,
		profileRepo: profileRepo,
		authRepo:    authRepo,
	}
}

// OnboardPatient creates the profile and flips the user's onboarded flag
// in one logical step, mirroring the signup flow's expectations.
func (s *profileService) OnboardPatient(userID string, profile *models.PatientProfile) (*models.PatientProfile, *apiError.Error) {
	if _, err := s.profileRepo.GetPatientProfileByUserID(userID); err == nil {
		return nil, apiError.New("patient profile already exists", http.StatusConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("OnboardPatient lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	profile.UserID = userID
	created, err := s.profileRepo.CreatePatientProfile(profile)
	if err != nil {
		log.Printf("OnboardPatient create error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.authRepo.MarkUserOnboarded(userID, models.RolePatient); err != nil {
		log.Printf("OnboardPatient onboarded-flag error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return created, nil
}

func (s *profileService) UpdatePatientProfile(userID string, updates map[string]interface{}) (*models.PatientProfile, *apiError.Error) {
	profile, err := s.profileRepo.UpdatePatientProfile(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("patient profile not found", http.StatusNotFound)
		}
		log.Printf("UpdatePatientProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) GetPatientProfile(userID string) (*models.PatientProfile, error) {
	return s.profileRepo.GetPatientProfileByUserID(userID)
}

func (s *profileService) OnboardProvider(userID string, profile *models.ProviderProfile) (*models.ProviderProfile, *apiError.Error) {
	if _, err := s.profileRepo.GetProviderProfileByUserID(userID); err == nil {
		return nil, apiError.New("provider profile already exists", http.StatusConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("OnboardProvider lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	profile.UserID = userID
	created, err := s.profileRepo.CreateProviderProfile(profile)
	if err != nil {
		log.Printf("OnboardProvider create error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.authRepo.MarkUserOnboarded(userID, models.RoleProvider); err != nil {
		log.Printf("OnboardProvider onboarded-flag error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return created, nil
}

func (s *profileService) UpdateProviderProfile(userID string, updates map[string]interface{}) (*models.ProviderProfile, *apiError.Error) {
	profile, err := s.profileRepo.UpdateProviderProfile(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("provider profile not found", http.StatusNotFound)
		}
		log.Printf("UpdateProviderProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) GetProviderProfile(userID string) (*models.ProviderProfile, error) {
	return s.profileRepo.GetProviderProfileByUserID(userID)
}

func (s *profileService) SearchProviders(filters models.ProviderSearchFilters) ([]models.ProviderProfile, error) {
	return s.profileRepo.SearchProviders(filters)
}
