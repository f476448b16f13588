package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newRelay(t *testing.T, status int, captured *map[string]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.WriteHeader(status)
	}))
}

func TestSendContactPostsToRelay(t *testing.T) {
	var got map[string]string
	relay := newRelay(t, http.StatusOK, &got)
	defer relay.Close()

	m := &Mailer{
		ContactURL: relay.URL,
		client:     &http.Client{Timeout: time.Second},
	}

	err := m.SendContact(ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Testing",
	})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", got["email"])
	require.Equal(t, "Hello", got["subject"])
}

func TestSubscribeSendsSubscribedStatus(t *testing.T) {
	var got map[string]string
	relay := newRelay(t, http.StatusCreated, &got)
	defer relay.Close()

	m := &Mailer{
		NewsletterURL: relay.URL,
		client:        &http.Client{Timeout: time.Second},
	}

	require.NoError(t, m.Subscribe("ada@example.com"))
	require.Equal(t, "ada@example.com", got["email"])
	require.Equal(t, "subscribed", got["status"])
}

func TestRelayFailuresSurfaceAsErrors(t *testing.T) {
	relay := newRelay(t, http.StatusBadGateway, nil)
	defer relay.Close()

	m := &Mailer{
		ContactURL:    relay.URL,
		NewsletterURL: relay.URL,
		client:        &http.Client{Timeout: time.Second},
	}

	require.Error(t, m.SendContact(ContactMessage{Email: "ada@example.com"}))
	require.Error(t, m.Subscribe("ada@example.com"))
}

func TestUnconfiguredRelayIsAnError(t *testing.T) {
	m := &Mailer{client: &http.Client{Timeout: time.Second}}

	require.Error(t, m.SendContact(ContactMessage{Email: "ada@example.com"}))
	require.Error(t, m.Subscribe("ada@example.com"))
}
