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

type JournalService interface {
	CreateEntry(patientUserID string, req *models.CreateJournalEntryRequest) (*models.HealthJournalEntry, *apiError.Error)
	GetEntries(patientUserID string, limit int) ([]models.HealthJournalEntry, *apiError.Error)
}

type journalService struct {
	journalRepo db.JournalRepository
	profileRepo db.ProfileRepository
}

func NewJournalService(journalRepo db.JournalRepository, profileRepo db.ProfileRepository) JournalService {
	return &journalService{
		journalRepo: journalRepo,
		profileRepo: profileRepo,
	}
}

func (s *journalService) CreateEntry(patientUserID string, req *models.CreateJournalEntryRequest) (*models.HealthJournalEntry, *apiError.Error) {
	patient, err := s.profileRepo.GetPatientProfileByUserID(patientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("patient profile not found", http.StatusNotFound)
		}
		log.Printf("CreateEntry patient lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	entry := &models.HealthJournalEntry{
		PatientID:              patient.ID,
		EntryDate:              req.EntryDate,
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		BloodGlucose:           req.BloodGlucose,
		Weight:                 req.Weight,
		WeightUnit:             req.WeightUnit,
		Mood:                   req.Mood,
		SleepHours:             req.SleepHours,
		SleepQuality:           req.SleepQuality,
		PhysicalActivity:       req.PhysicalActivity,
		TraditionalPractices:   req.TraditionalPractices,
		CommunityConnection:    req.CommunityConnection,
		Notes:                  req.Notes,
	}
	if entry.WeightUnit == "" {
		entry.WeightUnit = "lbs"
	}

	created, err := s.journalRepo.CreateEntry(entry)
	if err != nil {
		log.Printf("CreateEntry error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (s *journalService) GetEntries(patientUserID string, limit int) ([]models.HealthJournalEntry, *apiError.Error) {
	patient, err := s.profileRepo.GetPatientProfileByUserID(patientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("patient profile not found", http.StatusNotFound)
		}
		log.Printf("GetEntries patient lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	entries, err := s.journalRepo.GetEntriesByPatient(patient.ID, limit)
	if err != nil {
		log.Printf("GetEntries error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return entries, nil
}
