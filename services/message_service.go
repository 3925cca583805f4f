package services

import (
	"log"
	"net/http"

	"github.com/jxeer/Harmonia/db"
	apiError "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/realtime"
)

type MessageService interface {
	SendMessage(senderID string, req *models.CreateMessageRequest) (*models.Message, *apiError.Error)
	GetThread(userID, otherUserID string) ([]models.Message, *apiError.Error)
	GetRecentMessages(userID string) ([]models.Message, *apiError.Error)
}

type messageService struct {
	messageRepo db.MessageRepository
	authRepo    db.AuthRepository
	bridge      *realtime.Bridge
}

func NewMessageService(messageRepo db.MessageRepository, authRepo db.AuthRepository, bridge *realtime.Bridge) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		authRepo:    authRepo,
		bridge:      bridge,
	}
}

// SendMessage persists the message first, then pushes it to any live
// websocket connections of either party. Delivery is best effort; a
// failed or absent connection never fails the request.
func (s *messageService) SendMessage(senderID string, req *models.CreateMessageRequest) (*models.Message, *apiError.Error) {
	if _, err := s.authRepo.FindUserByID(req.ReceiverID); err != nil {
		return nil, apiError.New("receiver not found", http.StatusNotFound)
	}

	message := &models.Message{
		SenderID:      senderID,
		ReceiverID:    req.ReceiverID,
		AppointmentID: req.AppointmentID,
		Content:       req.Content,
		Status:        models.MessageStatusSent,
	}
	if err := s.messageRepo.SaveMessage(message); err != nil {
		log.Printf("SendMessage save error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	s.bridge.Notify(message)
	return message, nil
}

// GetThread returns the full conversation between the caller and the
// other user, oldest first, and marks the caller's unread messages from
// that user as read.
func (s *messageService) GetThread(userID, otherUserID string) ([]models.Message, *apiError.Error) {
	messages, err := s.messageRepo.GetThread(userID, otherUserID)
	if err != nil {
		log.Printf("GetThread error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if err := s.messageRepo.MarkMessagesAsRead(userID, otherUserID); err != nil {
		log.Printf("GetThread mark-read error: %v", err)
	}
	return messages, nil
}

func (s *messageService) GetRecentMessages(userID string) ([]models.Message, *apiError.Error) {
	messages, err := s.messageRepo.GetRecentMessages(userID)
	if err != nil {
		log.Printf("GetRecentMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return messages, nil
}
