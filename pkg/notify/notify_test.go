package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSendGridPrepareBuildsPlainTextMail(t *testing.T) {
	s := NewSendGridSender("key", "Lingua Center", "no-reply@example.com")

	body := sgmail.GetRequestBody(s.prepare(Message{To: "student@example.com", Subject: "Welcome", Body: "Hello"}))

	var decoded struct {
		From struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"from"`
		Personalizations []struct {
			To      []struct{ Email string } `json:"to"`
			Subject string                   `json:"subject"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "no-reply@example.com", decoded.From.Email)
	require.Len(t, decoded.Personalizations, 1)
	assert.Equal(t, "Welcome", decoded.Personalizations[0].Subject)
	assert.Equal(t, "student@example.com", decoded.Personalizations[0].To[0].Email)
	require.Len(t, decoded.Content, 1)
	assert.Equal(t, "text/plain", decoded.Content[0].Type)
	assert.Equal(t, "Hello", decoded.Content[0].Value)
}

func TestLogSenderKeepsRecentMessages(t *testing.T) {
	s := NewLogSender("SMS", zap.NewNop())
	for i := 0; i < 105; i++ {
		require.NoError(t, s.Send(context.Background(), Message{To: "+100", Body: "hi"}))
	}
	assert.Len(t, s.Sent(), 100)
}

func TestSendGridSenderSend(t *testing.T) {
	var (
		gotPath string
		gotAuth string
	)
	status := http.StatusAccepted
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(status)
	}))
	defer srv.Close()

	s := NewSendGridSender("sg-key", "Lingua Center", "no-reply@example.com")
	s.host = srv.URL
	msg := Message{To: "student@example.com", Subject: "Welcome", Body: "Hello"}

	require.NoError(t, s.Send(context.Background(), msg))
	assert.Equal(t, sendGridEndpoint, gotPath)
	assert.Equal(t, "Bearer sg-key", gotAuth)

	status = http.StatusBadRequest
	err := s.Send(context.Background(), msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, msg), context.Canceled)
}
