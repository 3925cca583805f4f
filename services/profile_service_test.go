package services

import (
	"net/http"
	"testing"

	"github.com/jxeer/Harmonia/models"
)

type onboardTrackingAuthRepo struct {
	fakeAuthRepo
	onboarded map[string]string
}

func (f *onboardTrackingAuthRepo) MarkUserOnboarded(userID, role string) error {
	f.onboarded[userID] = role
	return nil
}

func TestOnboardPatientFlipsFlag(t *testing.T) {
	profiles := &fakeProfileRepo{
		patients:  map[string]*models.PatientProfile{},
		providers: map[string]*models.ProviderProfile{},
	}
	auth := &onboardTrackingAuthRepo{onboarded: map[string]string{}}
	svc := NewProfileService(profiles, auth, nil)

	profile, apiErr := svc.OnboardPatient("user-1", &models.PatientProfile{
		CulturalBackground: "Yoruba",
		PrimaryLanguage:    "en",
	})
	if apiErr != nil {
		t.Fatalf("OnboardPatient error: %v", apiErr)
	}
	if profile.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", profile.UserID)
	}
	if auth.onboarded["user-1"] != models.RolePatient {
		t.Errorf("onboarded role = %q, want %q", auth.onboarded["user-1"], models.RolePatient)
	}
}

func TestOnboardPatientRejectsDuplicate(t *testing.T) {
	profiles := &fakeProfileRepo{
		patients: map[string]*models.PatientProfile{
			"user-1": {Model: models.Model{ID: "existing"}, UserID: "user-1"},
		},
		providers: map[string]*models.ProviderProfile{},
	}
	auth := &onboardTrackingAuthRepo{onboarded: map[string]string{}}
	svc := NewProfileService(profiles, auth, nil)

	_, apiErr := svc.OnboardPatient("user-1", &models.PatientProfile{})
	if apiErr == nil || apiErr.Status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate onboarding, got %v", apiErr)
	}
	if len(auth.onboarded) != 0 {
		t.Error("onboarded flag must not flip on duplicate onboarding")
	}
}

func TestOnboardProviderFlipsFlag(t *testing.T) {
	profiles := &fakeProfileRepo{
		patients:  map[string]*models.PatientProfile{},
		providers: map[string]*models.ProviderProfile{},
	}
	auth := &onboardTrackingAuthRepo{onboarded: map[string]string{}}
	svc := NewProfileService(profiles, auth, nil)

	profile, apiErr := svc.OnboardProvider("user-2", &models.ProviderProfile{Specialty: "cardiology"})
	if apiErr != nil {
		t.Fatalf("OnboardProvider error: %v", apiErr)
	}
	if profile.UserID != "user-2" {
		t.Errorf("UserID = %q, want user-2", profile.UserID)
	}
	if auth.onboarded["user-2"] != models.RoleProvider {
		t.Errorf("onboarded role = %q, want %q", auth.onboarded["user-2"], models.RoleProvider)
	}
}
