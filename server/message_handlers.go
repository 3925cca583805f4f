package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/server/response"
)

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.CreateMessageRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		senderID := currentUserID(c)
		if request.ReceiverID == senderID {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("cannot message yourself", http.StatusBadRequest))
			return
		}

		message, apiErr := s.MessageService.SendMessage(senderID, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "message sent", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleGetThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		otherUserID := c.Param("otherUserID")
		messages, apiErr := s.MessageService.GetThread(currentUserID(c), otherUserID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "messages retrieved", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleGetRecentMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, apiErr := s.MessageService.GetRecentMessages(currentUserID(c))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "recent messages retrieved", http.StatusOK, messages, nil)
	}
}
