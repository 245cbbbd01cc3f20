package whatsappbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
)

const (
	sendMessagePath = "/enviar-mensaje"

	confirmationDateFormat = "02/01/2006"
	confirmationTimeFormat = "15:04"

	maxErrorBodySize = 1024
)

// Client клиент HTTP бота, отправляющего сообщения в WhatsApp
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента бота
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendMessage отправляет сообщение на номер phone (из номера остаются только цифры)
func (c *Client) SendMessage(ctx context.Context, phone, message string) error {
	digits := DigitsOnly(phone)
	if digits == "" {
		return ErrInvalidPhone
	}

	body, err := json.Marshal(SendMessageRequest{Phone: digits, Message: message})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendMessagePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

		var botErr ErrorResponse
		if json.Unmarshal(raw, &botErr) == nil && botErr.Error != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, botErr.Error)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	return nil
}

// SendConfirmation отправляет клиенту подтверждение записи.
// Любая ошибка доставки возвращается как ErrServiceDegraded: вызывающий код логирует ее и продолжает.
func (c *Client) SendConfirmation(ctx context.Context, confirmation Confirmation) error {
	message := ConfirmationMessage(confirmation)

	if err := c.SendMessage(ctx, confirmation.ClientPhone, message); err != nil {
		c.log.Error("WhatsApp confirmation failed for phone=%s: %v", maskPhone(confirmation.ClientPhone), err)
		return fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("WhatsApp confirmation sent to phone=%s", maskPhone(confirmation.ClientPhone))
	return nil
}

// ConfirmationMessage текст подтверждения записи
func ConfirmationMessage(c Confirmation) string {
	return fmt.Sprintf(
		"Hola %s, tu cita para *%s* en Ronald Barber está confirmada para el *%s* a las *%s*. ¡Te esperamos! 💈",
		c.ClientName,
		c.ServiceName,
		c.StartTime.Format(confirmationDateFormat),
		c.StartTime.Format(confirmationTimeFormat),
	)
}

// DigitsOnly убирает из строки все символы, кроме цифр
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func maskPhone(phone string) string {
	digits := DigitsOnly(phone)
	if len(digits) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
