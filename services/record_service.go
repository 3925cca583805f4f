package services

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/jxeer/Harmonia/db"
	apiError "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"gorm.io/gorm"
)

type RecordService interface {
	CreateRecord(userID, role string, req *models.CreateMedicalRecordRequest, fileHeader *multipart.FileHeader) (*models.MedicalRecord, *apiError.Error)
	GetRecords(patientUserID string) ([]models.MedicalRecord, *apiError.Error)
}

type recordService struct {
	recordRepo  db.RecordRepository
	profileRepo db.ProfileRepository
	media       MediaService
}

func NewRecordService(recordRepo db.RecordRepository, profileRepo db.ProfileRepository, media MediaService) RecordService {
	return &recordService{
		recordRepo:  recordRepo,
		profileRepo: profileRepo,
		media:       media,
	}
}

// CreateRecord stores a medical record. Patients create records against
// their own profile; providers must name the patient explicitly and are
// stamped as the record's provider.
func (s *recordService) CreateRecord(userID, role string, req *models.CreateMedicalRecordRequest, fileHeader *multipart.FileHeader) (*models.MedicalRecord, *apiError.Error) {
	record := &models.MedicalRecord{
		Title:       req.Title,
		Description: req.Description,
		RecordType:  req.RecordType,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		RecordDate:  req.RecordDate,
	}

	switch role {
	case models.RoleProvider:
		if req.PatientID == "" {
			return nil, apiError.New("patient_id is required", http.StatusBadRequest)
		}
		provider, err := s.profileRepo.GetProviderProfileByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.New("provider profile not found", http.StatusNotFound)
			}
			log.Printf("CreateRecord provider lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		record.PatientID = req.PatientID
		record.ProviderID = &provider.ID
	default:
		patient, err := s.profileRepo.GetPatientProfileByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.New("patient profile not found", http.StatusNotFound)
			}
			log.Printf("CreateRecord patient lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		record.PatientID = patient.ID
	}

	if fileHeader != nil {
		fileURL, err := s.media.UploadRecordFile(fileHeader, record.PatientID)
		if err != nil {
			log.Printf("CreateRecord upload error: %v", err)
			return nil, apiError.New("failed to upload record file", http.StatusBadRequest)
		}
		record.FileURL = fileURL
		record.FileName = fileHeader.Filename
		record.FileSize = fileHeader.Size
	}

	created, err := s.recordRepo.CreateRecord(record)
	if err != nil {
		log.Printf("CreateRecord error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (s *recordService) GetRecords(patientUserID string) ([]models.MedicalRecord, *apiError.Error) {
	patient, err := s.profileRepo.GetPatientProfileByUserID(patientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("patient profile not found", http.StatusNotFound)
		}
		log.Printf("GetRecords patient lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	records, err := s.recordRepo.GetRecordsByPatient(patient.ID)
	if err != nil {
		log.Printf("GetRecords error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return records, nil
}
