package models

import "time"

const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	Model
	PatientID       string          `json:"patient_id" gorm:"type:varchar(36);not null;index"`
	Patient         PatientProfile  `json:"patient" gorm:"foreignKey:PatientID"`
	ProviderID      string          `json:"provider_id" gorm:"type:varchar(36);not null;index"`
	Provider        ProviderProfile `json:"provider" gorm:"foreignKey:ProviderID"`
	AppointmentDate time.Time       `json:"appointment_date" gorm:"not null"`
	Duration        int             `json:"duration" gorm:"default:30"`
	Type            string          `json:"type" gorm:"not null"`
	Status          string          `json:"status" gorm:"default:scheduled"`
	IsVirtual       bool            `json:"is_virtual" gorm:"default:false"`
	MeetingLink     string          `json:"meeting_link"`
	Notes           string          `json:"notes"`
}

type CreateAppointmentRequest struct {
	ProviderID      string    `json:"provider_id" binding:"required"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Duration        int       `json:"duration"`
	Type            string    `json:"type" binding:"required"`
	IsVirtual       bool      `json:"is_virtual"`
	MeetingLink     string    `json:"meeting_link"`
	Notes           string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	Duration        *int       `json:"duration"`
	Status          *string    `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled"`
	IsVirtual       *bool      `json:"is_virtual"`
	MeetingLink     *string    `json:"meeting_link"`
	Notes           *string    `json:"notes"`
}
