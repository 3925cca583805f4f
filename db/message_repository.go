package db

import (
	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepository interface {
	SaveMessage(message *models.Message) error
	GetThread(userID1, userID2 string) ([]models.Message, error)
	GetRecentMessages(userID string) ([]models.Message, error)
	MarkMessagesAsRead(receiverID, senderID string) error
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func (m *messageRepo) SaveMessage(message *models.Message) error {
	if err := m.DB.Create(message).Error; err != nil {
		return errors.Wrap(err, "could not save message")
	}
	return nil
}

// GetThread returns the full pairwise conversation between two users in
// insertion order.
func (m *messageRepo) GetThread(userID1, userID2 string) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.
		Preload("Sender").
		Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not load message thread")
	}
	return messages, nil
}

func (m *messageRepo) GetRecentMessages(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(20).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not load recent messages")
	}
	return messages, nil
}

func (m *messageRepo) MarkMessagesAsRead(receiverID, senderID string) error {
	return m.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Updates(map[string]interface{}{"is_read": true, "status": models.MessageStatusRead}).Error
}
