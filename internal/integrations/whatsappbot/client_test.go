package whatsappbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haderrenteria13/ronald-barber/pkg/logger"
)

func TestClient_SendConfirmation(t *testing.T) {
	var got SendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/enviar-mensaje", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second, logger.NewNop())

	err := client.SendConfirmation(context.Background(), Confirmation{
		ClientName:  "Ana",
		ClientPhone: "(300) 123-4567",
		ServiceName: "Corte clásico",
		StartTime:   time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "3001234567", got.Phone)
	assert.Equal(t,
		"Hola Ana, tu cita para *Corte clásico* en Ronald Barber está confirmada para el *10/03/2026* a las *09:45*. ¡Te esperamos! 💈",
		got.Message)
}

func TestClient_SendConfirmation_BotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"whatsapp session closed"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())

	err := client.SendConfirmation(context.Background(), Confirmation{ClientPhone: "3001234567"})
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.Contains(t, err.Error(), "whatsapp session closed")
}

func TestClient_SendMessage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, time.Second, logger.NewNop()).SendMessage(context.Background(), "3001234567", "hola")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_SendMessage_InvalidPhone(t *testing.T) {
	err := NewClient("http://localhost", time.Second, logger.NewNop()).SendMessage(context.Background(), "n/a", "hola")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******4567", maskPhone("300-123-4567"))
	assert.Equal(t, "****", maskPhone("12"))
}
