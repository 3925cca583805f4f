package db

import (
	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateReview(review *models.ProviderReview) (*models.ProviderReview, error)
	GetReviewsByProvider(providerID string) ([]models.ProviderReview, error)
	RecomputeProviderRating(providerID string) error
}

type reviewRepo struct {
	DB *gorm.DB
}

func NewReviewRepo(db *GormDB) ReviewRepository {
	return &reviewRepo{db.DB}
}

func (r *reviewRepo) CreateReview(review *models.ProviderReview) (*models.ProviderReview, error) {
	if err := r.DB.Create(review).Error; err != nil {
		return nil, errors.Wrap(err, "could not create review")
	}
	if err := r.RecomputeProviderRating(review.ProviderID); err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepo) GetReviewsByProvider(providerID string) ([]models.ProviderReview, error) {
	var reviews []models.ProviderReview
	err := r.DB.
		Preload("Patient.User").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list reviews")
	}
	return reviews, nil
}

// RecomputeProviderRating refreshes the provider's aggregate rating and
// review count from the review rows. Runs after every review insert.
func (r *reviewRepo) RecomputeProviderRating(providerID string) error {
	var agg struct {
		AvgRating float64
		Count     int64
	}
	err := r.DB.Model(&models.ProviderReview{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&agg).Error
	if err != nil {
		return errors.Wrap(err, "could not aggregate reviews")
	}

	return r.DB.Model(&models.ProviderProfile{}).
		Where("id = ?", providerID).
		Updates(map[string]interface{}{
			"rating":       agg.AvgRating,
			"review_count": agg.Count,
		}).Error
}
