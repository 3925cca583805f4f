package services

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jxeer/Harmonia/db"
	apiError "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"gorm.io/gorm"
)

type AnalyticsService interface {
	GetProviderAnalytics(providerUserID string) (*models.ProviderAnalytics, *apiError.Error)
	GetPlatformStats() (*models.PlatformStats, *apiError.Error)
}

type analyticsService struct {
	appointmentRepo db.AppointmentRepository
	profileRepo     db.ProfileRepository
	authRepo        db.AuthRepository
}

func NewAnalyticsService(appointmentRepo db.AppointmentRepository, profileRepo db.ProfileRepository, authRepo db.AuthRepository) AnalyticsService {
	return &analyticsService{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
		authRepo:        authRepo,
	}
}

// GetProviderAnalytics assembles the provider dashboard: patient and
// appointment totals, the current aggregate rating, and a 6-month
// appointment-per-month series.
func (s *analyticsService) GetProviderAnalytics(providerUserID string) (*models.ProviderAnalytics, *apiError.Error) {
	provider, err := s.profileRepo.GetProviderProfileByUserID(providerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("provider profile not found", http.StatusNotFound)
		}
		log.Printf("GetProviderAnalytics provider lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	totalPatients, err := s.appointmentRepo.CountDistinctPatientsByProvider(provider.ID)
	if err != nil {
		log.Printf("GetProviderAnalytics patient count error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	totalAppointments, err := s.appointmentRepo.CountAppointmentsByProvider(provider.ID)
	if err != nil {
		log.Printf("GetProviderAnalytics appointment count error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	since := time.Now().AddDate(0, -6, 0)
	monthly, err := s.appointmentRepo.MonthlyAppointmentCounts(provider.ID, since)
	if err != nil {
		log.Printf("GetProviderAnalytics monthly counts error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.ProviderAnalytics{
		TotalPatients:       totalPatients,
		TotalAppointments:   totalAppointments,
		AvgRating:           provider.Rating,
		ReviewCount:         provider.ReviewCount,
		MonthlyAppointments: monthly,
	}, nil
}

func (s *analyticsService) GetPlatformStats() (*models.PlatformStats, *apiError.Error) {
	totalUsers, err := s.authRepo.CountUsers()
	if err != nil {
		log.Printf("GetPlatformStats user count error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	totalPatients, err := s.profileRepo.CountPatients()
	if err != nil {
		log.Printf("GetPlatformStats patient count error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	totalProviders, err := s.profileRepo.CountProviders()
	if err != nil {
		log.Printf("GetPlatformStats provider count error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	totalAppointments, err := s.appointmentRepo.CountAppointments()
	if err != nil {
		log.Printf("GetPlatformStats appointment count error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.PlatformStats{
		TotalUsers:        totalUsers,
		TotalPatients:     totalPatients,
		TotalProviders:    totalProviders,
		TotalAppointments: totalAppointments,
	}, nil
}
