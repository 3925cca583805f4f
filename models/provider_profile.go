package models

// ProviderProfile is the searchable face of a provider. Rating and
// ReviewCount are aggregates recomputed whenever a review lands.
type ProviderProfile struct {
	Model
	UserID                      string   `json:"user_id" gorm:"type:varchar(36);not null;index"`
	User                        User     `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Specialty                   string   `json:"specialty" gorm:"not null" binding:"required"`
	CulturalBackgrounds         []string `json:"cultural_backgrounds" gorm:"serializer:json"`
	LanguagesSpoken             []string `json:"languages_spoken" gorm:"serializer:json"`
	LicenseNumber               string   `json:"license_number"`
	YearsOfExperience           int      `json:"years_of_experience"`
	Education                   string   `json:"education"`
	Certifications              []string `json:"certifications" gorm:"serializer:json"`
	Bio                         string   `json:"bio"`
	CulturalCompetencyStatement string   `json:"cultural_competency_statement"`
	Telehealth                  bool     `json:"telehealth" gorm:"default:false"`
	InPerson                    bool     `json:"in_person" gorm:"default:false"`
	AcceptsInsurance            bool     `json:"accepts_insurance" gorm:"default:false"`
	Location                    string   `json:"location"`
	Rating                      float64  `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReviewCount                 int      `json:"review_count" gorm:"default:0"`
	SubscriptionTier            string   `json:"subscription_tier" gorm:"default:basic"`
	IsVerified                  bool     `json:"is_verified" gorm:"default:false"`
}

// ProviderSearchFilters are the query parameters accepted by the provider
// search endpoint. Empty fields are not applied.
type ProviderSearchFilters struct {
	Specialty          string
	CulturalBackground string
	Language           string
	Location           string
}
