package realtime

import (
	"encoding/json"

	"github.com/jxeer/Harmonia/models"
	"github.com/pkg/errors"
)

const (
	frameTypeAuth       = "auth"
	frameTypeNewMessage = "new_message"
)

// ControlFrame is the only inbound frame shape the bridge understands.
// Anything that does not decode to {type:"auth", userId} is discarded.
type ControlFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// NotificationEvent is the outbound envelope wrapping a persisted message.
// It is never stored; it exists only for the duration of a fan-out.
type NotificationEvent struct {
	Type string          `json:"type"`
	Data *models.Message `json:"data"`
}

func decodeControlFrame(raw []byte) (*ControlFrame, error) {
	var frame ControlFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, errors.Wrap(err, "malformed control frame")
	}
	if frame.Type != frameTypeAuth {
		return nil, errors.Errorf("unknown frame type %q", frame.Type)
	}
	if frame.UserID == "" {
		return nil, errors.New("auth frame missing userId")
	}
	return &frame, nil
}

func encodeNotification(message *models.Message) ([]byte, error) {
	return json.Marshal(NotificationEvent{
		Type: frameTypeNewMessage,
		Data: message,
	})
}
