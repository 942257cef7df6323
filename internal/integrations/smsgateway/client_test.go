package smsgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Send_OK(t *testing.T) {
	var got SendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"message_id":"m-1","status":"queued"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "token-1", "SALON", time.Second, nopLogger{})
	resp, err := client.Send(context.Background(), "+919800000000", "hello", "ref-1")
	require.NoError(t, err)

	assert.Equal(t, "m-1", resp.MessageID)
	assert.Equal(t, SendRequest{To: "+919800000000", From: "SALON", Text: "hello", Reference: "ref-1"}, got)
}

func TestClient_Send_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"bad number", http.StatusBadRequest, `{"code":400,"message":"invalid msisdn"}`, ErrInvalidRecipient},
		{"bad token", http.StatusUnauthorized, ``, ErrUnauthorized},
		{"gateway down", http.StatusBadGateway, `oops`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "", "", time.Second, nopLogger{})
			_, err := client.Send(context.Background(), "+919800000000", "hello", "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_Send_EmptyRecipient(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", "", time.Second, nopLogger{})
	_, err := client.Send(context.Background(), " ", "hello", "")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestClient_Send_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", "", 100*time.Millisecond, nopLogger{})
	_, err := client.Send(context.Background(), "+919800000000", "hello", "")
	assert.ErrorIs(t, err, ErrInternal)
}
