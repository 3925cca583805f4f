package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
)

func (s *Server) handleCreateJournalEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.CreateJournalEntryRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		entry, apiErr := s.JournalService.CreateEntry(currentUserID(c), &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "journal entry created", http.StatusCreated, entry, nil)
	}
}

func (s *Server) handleGetJournalEntries() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		entries, apiErr := s.JournalService.GetEntries(currentUserID(c), limit)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "journal entries retrieved", http.StatusOK, entries, nil)
	}
}
