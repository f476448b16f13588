package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ContactMessage is a contact-form submission forwarded to the mail relay.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type subscribeRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Mailer forwards outbound mail and newsletter subscriptions to external
// relay endpoints. Nothing in the request flow depends on delivery
// succeeding; callers fire and forget.
type Mailer struct {
	ContactURL    string
	NewsletterURL string

	client *http.Client
}

func NewMailerFromEnv() *Mailer {
	return &Mailer{
		ContactURL:    os.Getenv("MAILER_URL"),
		NewsletterURL: os.Getenv("NEWSLETTER_URL"),
		client:        &http.Client{Timeout: 10 * time.Second},
	}
}

// SendContact posts the contact message to the configured mail relay.
func (m *Mailer) SendContact(msg ContactMessage) error {
	if m.ContactURL == "" {
		return fmt.Errorf("MAILER_URL is not configured")
	}
	return m.post(m.ContactURL, msg)
}

// Subscribe registers an email address with the newsletter list.
func (m *Mailer) Subscribe(email string) error {
	if m.NewsletterURL == "" {
		return fmt.Errorf("NEWSLETTER_URL is not configured")
	}
	return m.post(m.NewsletterURL, subscribeRequest{Email: email, Status: "subscribed"})
}

func (m *Mailer) post(url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := m.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	return nil
}
