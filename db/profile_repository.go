package db

import (
	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	CreatePatientProfile(profile *models.PatientProfile) (*models.PatientProfile, error)
	GetPatientProfileByUserID(userID string) (*models.PatientProfile, error)
	UpdatePatientProfile(userID string, updates map[string]interface{}) (*models.PatientProfile, error)
	CreateProviderProfile(profile *models.ProviderProfile) (*models.ProviderProfile, error)
	GetProviderProfileByUserID(userID string) (*models.ProviderProfile, error)
	GetProviderProfileByID(id string) (*models.ProviderProfile, error)
	UpdateProviderProfile(userID string, updates map[string]interface{}) (*models.ProviderProfile, error)
	SearchProviders(filters models.ProviderSearchFilters) ([]models.ProviderProfile, error)
	CountPatients() (int64, error)
	CountProviders() (int64, error)
}

type profileRepo struct {
	DB *gorm.DB
}

func NewProfileRepo(db *GormDB) ProfileRepository {
	return &profileRepo{db.DB}
}

func (p *profileRepo) CreatePatientProfile(profile *models.PatientProfile) (*models.PatientProfile, error) {
	if err := p.DB.Create(profile).Error; err != nil {
		return nil, errors.Wrap(err, "could not create patient profile")
	}
	return profile, nil
}

func (p *profileRepo) GetPatientProfileByUserID(userID string) (*models.PatientProfile, error) {
	profile := &models.PatientProfile{}
	err := p.DB.Where("user_id = ?", userID).First(profile).Error
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *profileRepo) UpdatePatientProfile(userID string, updates map[string]interface{}) (*models.PatientProfile, error) {
	result := p.DB.Model(&models.PatientProfile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "could not update patient profile")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return p.GetPatientProfileByUserID(userID)
}

func (p *profileRepo) CreateProviderProfile(profile *models.ProviderProfile) (*models.ProviderProfile, error) {
	if err := p.DB.Create(profile).Error; err != nil {
		return nil, errors.Wrap(err, "could not create provider profile")
	}
	return profile, nil
}

func (p *profileRepo) GetProviderProfileByUserID(userID string) (*models.ProviderProfile, error) {
	profile := &models.ProviderProfile{}
	err := p.DB.Where("user_id = ?", userID).First(profile).Error
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *profileRepo) GetProviderProfileByID(id string) (*models.ProviderProfile, error) {
	profile := &models.ProviderProfile{}
	err := p.DB.Where("id = ?", id).First(profile).Error
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *profileRepo) UpdateProviderProfile(userID string, updates map[string]interface{}) (*models.ProviderProfile, error) {
	result := p.DB.Model(&models.ProviderProfile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "could not update provider profile")
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return p.GetProviderProfileByUserID(userID)
}

// SearchProviders returns verified providers matching the supplied
// filters, best-rated first. Capped at 50 rows like the dashboard expects.
func (p *profileRepo) SearchProviders(filters models.ProviderSearchFilters) ([]models.ProviderProfile, error) {
	query := p.DB.Model(&models.ProviderProfile{}).
		Preload("User").
		Where("is_verified = ?", true)

	if filters.Specialty != "" {
		query = query.Where("specialty ILIKE ?", "%"+filters.Specialty+"%")
	}
	if filters.CulturalBackground != "" {
		query = query.Where("cultural_backgrounds LIKE ?", "%"+filters.CulturalBackground+"%")
	}
	if filters.Language != "" {
		query = query.Where("languages_spoken LIKE ?", "%"+filters.Language+"%")
	}
	if filters.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filters.Location+"%")
	}

	var providers []models.ProviderProfile
	err := query.
		Order("rating DESC").
		Order("review_count DESC").
		Limit(50).
		Find(&providers).Error
	if err != nil {
		return nil, errors.Wrap(err, "provider search failed")
	}
	return providers, nil
}

func (p *profileRepo) CountPatients() (int64, error) {
	var count int64
	err := p.DB.Model(&models.PatientProfile{}).Count(&count).Error
	return count, err
}

func (p *profileRepo) CountProviders() (int64, error) {
	var count int64
	err := p.DB.Model(&models.ProviderProfile{}).Count(&count).Error
	return count, err
}
