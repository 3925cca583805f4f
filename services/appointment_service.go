package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/jxeer/Harmonia/db"
	apiError "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"gorm.io/gorm"
)

type AppointmentService interface {
	BookAppointment(patientUserID string, req *models.CreateAppointmentRequest) (*models.Appointment, *apiError.Error)
	GetAppointments(userID, role string) ([]models.Appointment, *apiError.Error)
	UpdateAppointment(userID, role, appointmentID string, req *models.UpdateAppointmentRequest) (*models.Appointment, *apiError.Error)
}

type appointmentService struct {
	appointmentRepo db.AppointmentRepository
	profileRepo     db.ProfileRepository
}

func NewAppointmentService(appointmentRepo db.AppointmentRepository, profileRepo db.ProfileRepository) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
	}
}

func (s *appointmentService) BookAppointment(patientUserID string, req *models.CreateAppointmentRequest) (*models.Appointment, *apiError.Error) {
	patient, err := s.profileRepo.GetPatientProfileByUserID(patientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("patient profile not found", http.StatusNotFound)
		}
		log.Printf("BookAppointment patient lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if _, err := s.profileRepo.GetProviderProfileByID(req.ProviderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("provider not found", http.StatusNotFound)
		}
		log.Printf("BookAppointment provider lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	appointment := &models.Appointment{
		PatientID:       patient.ID,
		ProviderID:      req.ProviderID,
		AppointmentDate: req.AppointmentDate,
		Duration:        req.Duration,
		Type:            req.Type,
		Status:          models.AppointmentScheduled,
		IsVirtual:       req.IsVirtual,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
	}
	if appointment.Duration == 0 {
		appointment.Duration = 30
	}

	created, err := s.appointmentRepo.CreateAppointment(appointment)
	if err != nil {
		log.Printf("BookAppointment create error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

// GetAppointments resolves the caller's profile and returns their side of
// the appointment book.
func (s *appointmentService) GetAppointments(userID, role string) ([]models.Appointment, *apiError.Error) {
	switch role {
	case models.RoleProvider:
		provider, err := s.profileRepo.GetProviderProfileByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.New("provider profile not found", http.StatusNotFound)
			}
			log.Printf("GetAppointments provider lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		appointments, err := s.appointmentRepo.GetAppointmentsByProvider(provider.ID)
		if err != nil {
			log.Printf("GetAppointments query error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		return appointments, nil
	default:
		patient, err := s.profileRepo.GetPatientProfileByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.New("patient profile not found", http.StatusNotFound)
			}
			log.Printf("GetAppointments patient lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		appointments, err := s.appointmentRepo.GetAppointmentsByPatient(patient.ID)
		if err != nil {
			log.Printf("GetAppointments query error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		return appointments, nil
	}
}

func (s *appointmentService) UpdateAppointment(userID, role, appointmentID string, req *models.UpdateAppointmentRequest) (*models.Appointment, *apiError.Error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("appointment not found", http.StatusNotFound)
		}
		log.Printf("UpdateAppointment lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if aerr := s.authorizeParty(userID, role, appointment); aerr != nil {
		return nil, aerr
	}

	updates := map[string]interface{}{}
	if req.AppointmentDate != nil {
		updates["appointment_date"] = *req.AppointmentDate
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.IsVirtual != nil {
		updates["is_virtual"] = *req.IsVirtual
	}
	if req.MeetingLink != nil {
		updates["meeting_link"] = *req.MeetingLink
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return appointment, nil
	}

	updated, err := s.appointmentRepo.UpdateAppointment(appointmentID, updates)
	if err != nil {
		log.Printf("UpdateAppointment error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return updated, nil
}

// authorizeParty checks the caller is one of the two parties on the
// appointment. Admins pass unconditionally.
func (s *appointmentService) authorizeParty(userID, role string, appointment *models.Appointment) *apiError.Error {
	if role == models.RoleAdmin {
		return nil
	}
	if role == models.RoleProvider {
		provider, err := s.profileRepo.GetProviderProfileByUserID(userID)
		if err != nil || provider.ID != appointment.ProviderID {
			return apiError.New("appointment does not belong to you", http.StatusForbidden)
		}
		return nil
	}
	patient, err := s.profileRepo.GetPatientProfileByUserID(userID)
	if err != nil || patient.ID != appointment.PatientID {
		return apiError.New("appointment does not belong to you", http.StatusForbidden)
	}
	return nil
}
