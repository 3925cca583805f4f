package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
)

func (s *Server) handleCreateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.CreateReviewRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		review, apiErr := s.ReviewService.CreateReview(currentUserID(c), &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "review created", http.StatusCreated, review, nil)
	}
}

func (s *Server) handleGetProviderReviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID := c.Param("providerID")
		reviews, apiErr := s.ReviewService.GetProviderReviews(providerID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "reviews retrieved", http.StatusOK, reviews, nil)
	}
}
