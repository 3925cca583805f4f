package services

import (
	"net/http"
	"testing"

	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/realtime"
	"gorm.io/gorm"
)

type fakeMessageRepo struct {
	saved      []*models.Message
	markedRead [][2]string
	thread     []models.Message
}

func (f *fakeMessageRepo) SaveMessage(message *models.Message) error {
	message.ID = "generated-id"
	f.saved = append(f.saved, message)
	return nil
}

func (f *fakeMessageRepo) GetThread(userID1, userID2 string) ([]models.Message, error) {
	return f.thread, nil
}

func (f *fakeMessageRepo) GetRecentMessages(userID string) ([]models.Message, error) {
	return f.thread, nil
}

func (f *fakeMessageRepo) MarkMessagesAsRead(receiverID, senderID string) error {
	f.markedRead = append(f.markedRead, [2]string{receiverID, senderID})
	return nil
}

type fakeAuthRepo struct {
	users map[string]*models.User
}

func (f *fakeAuthRepo) CreateUser(user *models.User) (*models.User, error) { return user, nil }
func (f *fakeAuthRepo) IsEmailExist(email string) error                    { return nil }
func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAuthRepo) FindUserByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}
func (f *fakeAuthRepo) UpdateUser(user *models.User) error                          { return nil }
func (f *fakeAuthRepo) MarkUserOnboarded(userID, role string) error                 { return nil }
func (f *fakeAuthRepo) UpsertUserImage(userID, imageURL, thumbnailURL string) error { return nil }
func (f *fakeAuthRepo) UpdatePassword(password string, email string) error          { return nil }
func (f *fakeAuthRepo) AddToBlackList(blacklist *models.Blacklist) error            { return nil }
func (f *fakeAuthRepo) IsTokenInBlacklist(token string) bool                        { return false }
func (f *fakeAuthRepo) GetAllUsers() ([]models.User, error)                         { return nil, nil }
func (f *fakeAuthRepo) CountUsers() (int64, error)                                  { return 0, nil }

func TestSendMessagePersistsBeforeNotify(t *testing.T) {
	repo := &fakeMessageRepo{}
	auth := &fakeAuthRepo{users: map[string]*models.User{
		"u2": {Model: models.Model{ID: "u2"}, Email: "u2@example.com"},
	}}
	svc := NewMessageService(repo, auth, realtime.NewBridge())

	message, apiErr := svc.SendMessage("u1", &models.CreateMessageRequest{
		ReceiverID: "u2",
		Content:    "hello",
	})
	if apiErr != nil {
		t.Fatalf("SendMessage error: %v", apiErr)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d messages, want 1", len(repo.saved))
	}
	if message.ID != "generated-id" {
		t.Errorf("message.ID = %q, want the persisted id", message.ID)
	}
	if message.SenderID != "u1" || message.ReceiverID != "u2" {
		t.Errorf("message parties = %s -> %s, want u1 -> u2", message.SenderID, message.ReceiverID)
	}
	if message.Status != models.MessageStatusSent {
		t.Errorf("message.Status = %q, want %q", message.Status, models.MessageStatusSent)
	}
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	repo := &fakeMessageRepo{}
	auth := &fakeAuthRepo{users: map[string]*models.User{}}
	svc := NewMessageService(repo, auth, realtime.NewBridge())

	_, apiErr := svc.SendMessage("u1", &models.CreateMessageRequest{
		ReceiverID: "missing",
		Content:    "hello",
	})
	if apiErr == nil {
		t.Fatal("expected error for unknown receiver")
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusNotFound)
	}
	if len(repo.saved) != 0 {
		t.Errorf("saved %d messages, want 0", len(repo.saved))
	}
}

func TestGetThreadMarksMessagesRead(t *testing.T) {
	repo := &fakeMessageRepo{thread: []models.Message{{ID: "m1"}}}
	auth := &fakeAuthRepo{users: map[string]*models.User{}}
	svc := NewMessageService(repo, auth, realtime.NewBridge())

	messages, apiErr := svc.GetThread("u1", "u2")
	if apiErr != nil {
		t.Fatalf("GetThread error: %v", apiErr)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if len(repo.markedRead) != 1 || repo.markedRead[0] != [2]string{"u1", "u2"} {
		t.Errorf("markedRead = %v, want [[u1 u2]]", repo.markedRead)
	}
}
