package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
)

func (s *Server) handleBookAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.CreateAppointmentRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		appointment, apiErr := s.AppointmentService.BookAppointment(currentUserID(c), &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "appointment booked", http.StatusCreated, appointment, nil)
	}
}

func (s *Server) handleGetAppointments() gin.HandlerFunc {
	return func(c *gin.Context) {
		appointments, apiErr := s.AppointmentService.GetAppointments(currentUserID(c), currentUserRole(c))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "appointments retrieved", http.StatusOK, appointments, nil)
	}
}

func (s *Server) handleUpdateAppointment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.UpdateAppointmentRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		appointmentID := c.Param("appointmentID")
		appointment, apiErr := s.AppointmentService.UpdateAppointment(currentUserID(c), currentUserRole(c), appointmentID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "appointment updated", http.StatusOK, appointment, nil)
	}
}
