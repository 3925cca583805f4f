package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
)

func (s *Server) handleProviderAnalytics() gin.HandlerFunc {
	return func(c *gin.Context) {
		analytics, apiErr := s.AnalyticsService.GetProviderAnalytics(currentUserID(c))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "provider analytics retrieved", http.StatusOK, analytics, nil)
	}
}

func (s *Server) handleAdminStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, apiErr := s.AnalyticsService.GetPlatformStats()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "platform stats retrieved", http.StatusOK, stats, nil)
	}
}

func (s *Server) handleGetAllUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.AuthService.GetAllUsers()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		out := make([]models.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, users[i].Response())
		}
		response.JSON(c, "users retrieved", http.StatusOK, out, nil)
	}
}
