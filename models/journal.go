package models

import "time"

// HealthJournalEntry is a patient's self-reported daily log. Vitals are
// optional; absent values are stored as NULL rather than zero.
type HealthJournalEntry struct {
	Model
	PatientID              string         `json:"patient_id" gorm:"type:varchar(36);not null;index"`
	Patient                PatientProfile `json:"-" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	EntryDate              time.Time      `json:"entry_date" gorm:"not null"`
	BloodPressureSystolic  *int           `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int           `json:"blood_pressure_diastolic"`
	BloodGlucose           *int           `json:"blood_glucose"`
	Weight                 *float64       `json:"weight" gorm:"type:decimal(5,2)"`
	WeightUnit             string         `json:"weight_unit" gorm:"default:lbs"`
	Mood                   string         `json:"mood"`
	SleepHours             *float64       `json:"sleep_hours" gorm:"type:decimal(3,1)"`
	SleepQuality           string         `json:"sleep_quality"`
	PhysicalActivity       string         `json:"physical_activity"`
	TraditionalPractices   string         `json:"traditional_practices"`
	CommunityConnection    string         `json:"community_connection"`
	Notes                  string         `json:"notes" gorm:"type:text"`
}

type CreateJournalEntryRequest struct {
	EntryDate              time.Time `json:"entry_date" binding:"required"`
	BloodPressureSystolic  *int      `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int      `json:"blood_pressure_diastolic"`
	BloodGlucose           *int      `json:"blood_glucose"`
	Weight                 *float64  `json:"weight"`
	WeightUnit             string    `json:"weight_unit"`
	Mood                   string    `json:"mood"`
	SleepHours             *float64  `json:"sleep_hours"`
	SleepQuality           string    `json:"sleep_quality"`
	PhysicalActivity       string    `json:"physical_activity"`
	TraditionalPractices   string    `json:"traditional_practices"`
	CommunityConnection    string    `json:"community_connection"`
	Notes                  string    `json:"notes"`
}
