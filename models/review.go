package models

// ProviderReview is patient feedback on a provider. Saving one triggers
// recomputation of the provider's aggregate Rating and ReviewCount.
type ProviderReview struct {
	Model
	PatientID                string          `json:"patient_id" gorm:"type:varchar(36);not null;index"`
	Patient                  PatientProfile  `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	ProviderID               string          `json:"provider_id" gorm:"type:varchar(36);not null;index"`
	Provider                 ProviderProfile `json:"-" gorm:"foreignKey:ProviderID"`
	AppointmentID            *string         `json:"appointment_id,omitempty" gorm:"type:varchar(36)"`
	Rating                   int             `json:"rating" gorm:"not null"`
	CulturalCompetencyRating int             `json:"cultural_competency_rating" gorm:"not null"`
	Comment                  string          `json:"comment" gorm:"type:text"`
	IsAnonymous              bool            `json:"is_anonymous" gorm:"default:false"`
}

type CreateReviewRequest struct {
	ProviderID               string  `json:"provider_id" binding:"required"`
	AppointmentID            *string `json:"appointment_id"`
	Rating                   int     `json:"rating" binding:"required,min=1,max=5"`
	CulturalCompetencyRating int     `json:"cultural_competency_rating" binding:"required,min=1,max=5"`
	Comment                  string  `json:"comment"`
	IsAnonymous              bool    `json:"is_anonymous"`
}
