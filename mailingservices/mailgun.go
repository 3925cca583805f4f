package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailer is what the server depends on; satisfied by Mailgun.
type Mailer interface {
	SendWelcomeMessage(recipient, subject string) (string, error)
	SendResetPasswordMessage(recipient, resetLink string) (string, error)
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	domain := os.Getenv("HARMONIA_MG_DOMAIN")
	apiKey := os.Getenv("HARMONIA_MG_PUBLIC_API_KEY")
	m.Client = mailgun.NewMailgun(domain, apiKey)
	m.From = os.Getenv("HARMONIA_EMAIL_FROM")
	log.Println("Mailgun client initialized")
}

func (m *Mailgun) SendWelcomeMessage(recipient, subject string) (string, error) {
	body := "Welcome to Harmonia! Complete your profile to get matched with culturally competent providers near you."
	return m.send(recipient, subject, body)
}

func (m *Mailgun) SendResetPasswordMessage(recipient, resetLink string) (string, error) {
	subject := "Reset your Harmonia password"
	body := fmt.Sprintf("We received a request to reset your password. Follow this link within the next hour to choose a new one: %s\n\nIf you didn't request this, you can ignore this email.", resetLink)
	return m.send(recipient, subject, body)
}

func (m *Mailgun) send(recipient, subject, body string) (string, error) {
	message := m.Client.NewMessage(m.From, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("mailgun send error: %v", err)
		return "", err
	}
	return id, nil
}
