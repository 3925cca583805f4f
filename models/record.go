package models

import "time"

const (
	RecordTypeLabResult        = "lab_result"
	RecordTypePrescription     = "prescription"
	RecordTypeImaging          = "imaging"
	RecordTypeConsultationNote = "consultation_note"
	RecordTypeOther            = "other"
)

// MedicalRecord is metadata about an uploaded document. The file itself
// lives in object storage; FileURL points at it.
type MedicalRecord struct {
	Model
	PatientID   string           `json:"patient_id" gorm:"type:varchar(36);not null;index"`
	Patient     PatientProfile   `json:"-" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	ProviderID  *string          `json:"provider_id,omitempty" gorm:"type:varchar(36)"`
	Provider    *ProviderProfile `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Title       string           `json:"title" gorm:"not null"`
	Description string           `json:"description" gorm:"type:text"`
	RecordType  string           `json:"record_type" gorm:"not null"`
	FileURL     string           `json:"file_url"`
	FileName    string           `json:"file_name"`
	FileSize    int64            `json:"file_size"`
	RecordDate  time.Time        `json:"record_date" gorm:"not null"`
}

type CreateMedicalRecordRequest struct {
	PatientID   string    `json:"patient_id"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	RecordType  string    `json:"record_type" binding:"required,oneof=lab_result prescription imaging consultation_note other"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	RecordDate  time.Time `json:"record_date" binding:"required"`
}
