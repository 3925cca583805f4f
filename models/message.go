package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// Message is a persisted chat message between two users. The realtime
// bridge only reads SenderID and ReceiverID for routing and forwards the
// whole record as an opaque payload.
type Message struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SenderID      string    `json:"sender_id" gorm:"type:varchar(36);not null;index"`
	Sender        User      `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	ReceiverID    string    `json:"receiver_id" gorm:"type:varchar(36);not null;index"`
	Receiver      User      `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	AppointmentID *string   `json:"appointment_id,omitempty" gorm:"type:varchar(36)"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	Status        string    `json:"status" gorm:"default:sent"`
	IsRead        bool      `json:"is_read" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type CreateMessageRequest struct {
	ReceiverID    string  `json:"receiver_id" binding:"required"`
	Content       string  `json:"content" binding:"required"`
	AppointmentID *string `json:"appointment_id"`
}
