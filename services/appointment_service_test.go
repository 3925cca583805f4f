package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/jxeer/Harmonia/models"
	"gorm.io/gorm"
)

type fakeProfileRepo struct {
	patients  map[string]*models.PatientProfile
	providers map[string]*models.ProviderProfile
}

func (f *fakeProfileRepo) CreatePatientProfile(profile *models.PatientProfile) (*models.PatientProfile, error) {
	profile.ID = "patient-profile-id"
	f.patients[profile.UserID] = profile
	return profile, nil
}

func (f *fakeProfileRepo) GetPatientProfileByUserID(userID string) (*models.PatientProfile, error) {
	profile, ok := f.patients[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) UpdatePatientProfile(userID string, updates map[string]interface{}) (*models.PatientProfile, error) {
	return f.GetPatientProfileByUserID(userID)
}

func (f *fakeProfileRepo) CreateProviderProfile(profile *models.ProviderProfile) (*models.ProviderProfile, error) {
	profile.ID = "provider-profile-id"
	f.providers[profile.UserID] = profile
	return profile, nil
}

func (f *fakeProfileRepo) GetProviderProfileByUserID(userID string) (*models.ProviderProfile, error) {
	profile, ok := f.providers[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) GetProviderProfileByID(id string) (*models.ProviderProfile, error) {
	for _, profile := range f.providers {
		if profile.ID == id {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) UpdateProviderProfile(userID string, updates map[string]interface{}) (*models.ProviderProfile, error) {
	return f.GetProviderProfileByUserID(userID)
}

func (f *fakeProfileRepo) SearchProviders(filters models.ProviderSearchFilters) ([]models.ProviderProfile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) CountPatients() (int64, error)  { return int64(len(f.patients)), nil }
func (f *fakeProfileRepo) CountProviders() (int64, error) { return int64(len(f.providers)), nil }

type fakeAppointmentRepo struct {
	created []*models.Appointment
	byID    map[string]*models.Appointment
	updates map[string]interface{}
}

func (f *fakeAppointmentRepo) CreateAppointment(appointment *models.Appointment) (*models.Appointment, error) {
	appointment.ID = "appointment-id"
	f.created = append(f.created, appointment)
	return appointment, nil
}

func (f *fakeAppointmentRepo) GetAppointmentByID(id string) (*models.Appointment, error) {
	appointment, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return appointment, nil
}

func (f *fakeAppointmentRepo) GetAppointmentsByPatient(patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) GetAppointmentsByProvider(providerID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateAppointment(id string, updates map[string]interface{}) (*models.Appointment, error) {
	f.updates = updates
	return f.byID[id], nil
}

func (f *fakeAppointmentRepo) CountAppointments() (int64, error)                            { return 0, nil }
func (f *fakeAppointmentRepo) CountAppointmentsByProvider(providerID string) (int64, error) { return 0, nil }
func (f *fakeAppointmentRepo) CountDistinctPatientsByProvider(providerID string) (int64, error) {
	return 0, nil
}
func (f *fakeAppointmentRepo) MonthlyAppointmentCounts(providerID string, since time.Time) ([]models.MonthlyAppointmentCount, error) {
	return nil, nil
}

func newProfiles() *fakeProfileRepo {
	return &fakeProfileRepo{
		patients: map[string]*models.PatientProfile{
			"patient-user": {Model: models.Model{ID: "patient-profile-id"}, UserID: "patient-user"},
		},
		providers: map[string]*models.ProviderProfile{
			"provider-user": {Model: models.Model{ID: "provider-profile-id"}, UserID: "provider-user"},
		},
	}
}

func TestBookAppointmentDefaultsAndStamps(t *testing.T) {
	appointments := &fakeAppointmentRepo{byID: map[string]*models.Appointment{}}
	svc := NewAppointmentService(appointments, newProfiles())

	appointment, apiErr := svc.BookAppointment("patient-user", &models.CreateAppointmentRequest{
		ProviderID:      "provider-profile-id",
		AppointmentDate: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Type:            "consultation",
	})
	if apiErr != nil {
		t.Fatalf("BookAppointment error: %v", apiErr)
	}

	if appointment.PatientID != "patient-profile-id" {
		t.Errorf("PatientID = %q, want the caller's profile id", appointment.PatientID)
	}
	if appointment.Status != models.AppointmentScheduled {
		t.Errorf("Status = %q, want %q", appointment.Status, models.AppointmentScheduled)
	}
	if appointment.Duration != 30 {
		t.Errorf("Duration = %d, want default 30", appointment.Duration)
	}
}

func TestBookAppointmentUnknownProvider(t *testing.T) {
	appointments := &fakeAppointmentRepo{byID: map[string]*models.Appointment{}}
	svc := NewAppointmentService(appointments, newProfiles())

	_, apiErr := svc.BookAppointment("patient-user", &models.CreateAppointmentRequest{
		ProviderID:      "missing",
		AppointmentDate: time.Now(),
		Type:            "consultation",
	})
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown provider, got %v", apiErr)
	}
	if len(appointments.created) != 0 {
		t.Errorf("created %d appointments, want 0", len(appointments.created))
	}
}

func TestUpdateAppointmentRequiresOwnership(t *testing.T) {
	existing := &models.Appointment{
		Model:      models.Model{ID: "appt-1"},
		PatientID:  "patient-profile-id",
		ProviderID: "provider-profile-id",
		Status:     models.AppointmentScheduled,
	}
	appointments := &fakeAppointmentRepo{byID: map[string]*models.Appointment{"appt-1": existing}}
	profiles := newProfiles()
	profiles.patients["other-user"] = &models.PatientProfile{
		Model: models.Model{ID: "other-profile-id"}, UserID: "other-user",
	}
	svc := NewAppointmentService(appointments, profiles)

	status := models.AppointmentCancelled
	_, apiErr := svc.UpdateAppointment("other-user", models.RolePatient, "appt-1", &models.UpdateAppointmentRequest{Status: &status})
	if apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-party update, got %v", apiErr)
	}

	_, apiErr = svc.UpdateAppointment("patient-user", models.RolePatient, "appt-1", &models.UpdateAppointmentRequest{Status: &status})
	if apiErr != nil {
		t.Fatalf("UpdateAppointment error: %v", apiErr)
	}
	if appointments.updates["status"] != models.AppointmentCancelled {
		t.Errorf("updates = %v, want status cancelled", appointments.updates)
	}
}

func TestUpdateAppointmentEmptyPatchIsNoop(t *testing.T) {
	existing := &models.Appointment{
		Model:     models.Model{ID: "appt-1"},
		PatientID: "patient-profile-id",
	}
	appointments := &fakeAppointmentRepo{byID: map[string]*models.Appointment{"appt-1": existing}}
	svc := NewAppointmentService(appointments, newProfiles())

	appointment, apiErr := svc.UpdateAppointment("patient-user", models.RolePatient, "appt-1", &models.UpdateAppointmentRequest{})
	if apiErr != nil {
		t.Fatalf("UpdateAppointment error: %v", apiErr)
	}
	if appointment != existing {
		t.Error("expected the unmodified appointment back")
	}
	if appointments.updates != nil {
		t.Errorf("updates = %v, want none", appointments.updates)
	}
}
