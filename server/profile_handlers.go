package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	errs "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
	"gorm.io/gorm"
)

func (s *Server) handlePatientOnboarding() gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile models.PatientProfile
		if err := decode(c, &profile); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		created, apiErr := s.ProfileService.OnboardPatient(currentUserID(c), &profile)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "patient onboarding complete", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleProviderOnboarding() gin.HandlerFunc {
	return func(c *gin.Context) {
		var profile models.ProviderProfile
		if err := decode(c, &profile); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		created, apiErr := s.ProfileService.OnboardProvider(currentUserID(c), &profile)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "provider onboarding complete", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleGetPatientProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := s.ProfileService.GetPatientProfile(currentUserID(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.JSON(c, "", http.StatusNotFound, nil, errs.New("patient profile not found", http.StatusNotFound))
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "patient profile retrieved", http.StatusOK, profile, nil)
	}
}

var patientProfileFields = map[string]string{
	"date_of_birth":           "date_of_birth",
	"gender":                  "gender",
	"cultural_background":     "cultural_background",
	"primary_language":        "primary_language",
	"secondary_languages":     "secondary_languages",
	"emergency_contact_name":  "emergency_contact_name",
	"emergency_contact_phone": "emergency_contact_phone",
	"medical_conditions":      "medical_conditions",
	"medications":             "medications",
	"allergies":               "allergies",
	"cultural_practices":      "cultural_practices",
	"dietary_restrictions":    "dietary_restrictions",
	"insurance_provider":      "insurance_provider",
	"insurance_policy_number": "insurance_policy_number",
}

var providerProfileFields = map[string]string{
	"specialty":                     "specialty",
	"cultural_backgrounds":          "cultural_backgrounds",
	"languages_spoken":              "languages_spoken",
	"license_number":                "license_number",
	"years_of_experience":           "years_of_experience",
	"education":                     "education",
	"certifications":                "certifications",
	"bio":                           "bio",
	"cultural_competency_statement": "cultural_competency_statement",
	"telehealth":                    "telehealth",
	"in_person":                     "in_person",
	"accepts_insurance":             "accepts_insurance",
	"location":                      "location",
}

// filterUpdates keeps only whitelisted columns from the request body.
func filterUpdates(body map[string]interface{}, allowed map[string]string) map[string]interface{} {
	updates := map[string]interface{}{}
	for key, value := range body {
		if column, ok := allowed[key]; ok {
			updates[column] = value
		}
	}
	return updates
}

func (s *Server) handleUpdatePatientProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		updates := filterUpdates(body, patientProfileFields)
		profile, apiErr := s.ProfileService.UpdatePatientProfile(currentUserID(c), updates)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "patient profile updated", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleGetProviderProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := s.ProfileService.GetProviderProfile(currentUserID(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.JSON(c, "", http.StatusNotFound, nil, errs.New("provider profile not found", http.StatusNotFound))
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "provider profile retrieved", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleUpdateProviderProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		updates := filterUpdates(body, providerProfileFields)
		profile, apiErr := s.ProfileService.UpdateProviderProfile(currentUserID(c), updates)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "provider profile updated", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleSearchProviders() gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := models.ProviderSearchFilters{
			Specialty:          c.Query("specialty"),
			Location:           c.Query("location"),
			CulturalBackground: c.Query("cultural_background"),
			Language:           c.Query("language"),
		}

		providers, err := s.ProfileService.SearchProviders(filters)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "providers retrieved", http.StatusOK, providers, nil)
	}
}

func (s *Server) handleUpdateUserImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("profile_image")
		if err != nil {
			response.JSON(c, "profile_image file is required", http.StatusBadRequest, nil, err)
			return
		}

		userID := currentUserID(c)
		imageURL, thumbnailURL, err := s.MediaService.UploadProfileImage(fileHeader, userID)
		if err != nil {
			status := http.StatusInternalServerError
			if strings.Contains(err.Error(), "invalid file type") || strings.Contains(err.Error(), "exceeds limit") {
				status = http.StatusBadRequest
			}
			response.JSON(c, "", status, nil, err)
			return
		}

		if err := s.AuthRepository.UpsertUserImage(userID, imageURL, thumbnailURL); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "profile image updated", http.StatusOK, gin.H{
			"profile_image_url": imageURL,
			"thumbnail_url":     thumbnailURL,
		}, nil)
	}
}
