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

type ReviewService interface {
	CreateReview(patientUserID string, req *models.CreateReviewRequest) (*models.ProviderReview, *apiError.Error)
	GetProviderReviews(providerID string) ([]models.ProviderReview, *apiError.Error)
}

type reviewService struct {
	reviewRepo  db.ReviewRepository
	profileRepo db.ProfileRepository
}

func NewReviewService(reviewRepo db.ReviewRepository, profileRepo db.ProfileRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
	}
}

func (s *reviewService) CreateReview(patientUserID string, req *models.CreateReviewRequest) (*models.ProviderReview, *apiError.Error) {
	patient, err := s.profileRepo.GetPatientProfileByUserID(patientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("patient profile not found", http.StatusNotFound)
		}
		log.Printf("CreateReview patient lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if _, err := s.profileRepo.GetProviderProfileByID(req.ProviderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("provider not found", http.StatusNotFound)
		}
		log.Printf("CreateReview provider lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	review := &models.ProviderReview{
		PatientID:                patient.ID,
		ProviderID:               req.ProviderID,
		AppointmentID:            req.AppointmentID,
		Rating:                   req.Rating,
		CulturalCompetencyRating: req.CulturalCompetencyRating,
		Comment:                  req.Comment,
		IsAnonymous:              req.IsAnonymous,
	}

	created, err := s.reviewRepo.CreateReview(review)
	if err != nil {
		log.Printf("CreateReview error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (s *reviewService) GetProviderReviews(providerID string) ([]models.ProviderReview, *apiError.Error) {
	reviews, err := s.reviewRepo.GetReviewsByProvider(providerID)
	if err != nil {
		log.Printf("GetProviderReviews error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return reviews, nil
}
