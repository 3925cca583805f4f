package models

import "time"

// PatientProfile carries the onboarding data a patient fills in once and
// edits later. List-valued fields are stored as JSON columns.
type PatientProfile struct {
	Model
	UserID                string     `json:"user_id" gorm:"type:varchar(36);not null;index"`
	User                  User       `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	Gender                string     `json:"gender"`
	CulturalBackground    string     `json:"cultural_background"`
	PrimaryLanguage       string     `json:"primary_language"`
	SecondaryLanguages    []string   `json:"secondary_languages" gorm:"serializer:json"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
	MedicalConditions     []string   `json:"medical_conditions" gorm:"serializer:json"`
	Medications           []string   `json:"medications" gorm:"serializer:json"`
	Allergies             []string   `json:"allergies" gorm:"serializer:json"`
	CulturalPractices     string     `json:"cultural_practices"`
	DietaryRestrictions   string     `json:"dietary_restrictions"`
	InsuranceProvider     string     `json:"insurance_provider"`
	InsurancePolicyNumber string     `json:"insurance_policy_number"`
}
