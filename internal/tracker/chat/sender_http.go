package chat

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// HTTPSender delivers outgoing messages to the chat transport service
// over HTTP. The transport owns the actual chat platform connection.
type HTTPSender struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSender(baseURL string, httpClient *http.Client) *HTTPSender {
	return &HTTPSender{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type sendMessageRequest struct {
	ChatID   int64          `json:"chatId"`
	Text     string         `json:"text"`
	Keyboard InlineKeyboard `json:"keyboard,omitempty"`
}

type sendPhotoRequest struct {
	ChatID  int64  `json:"chatId"`
	Photo   string `json:"photo"`
	Caption string `json:"caption,omitempty"`
}

func (s *HTTPSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	return s.post(ctx, "/messages", sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	})
}

func (s *HTTPSender) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard InlineKeyboard) error {
	return s.post(ctx, "/messages", sendMessageRequest{
		ChatID:   chatID,
		Text:     text,
		Keyboard: keyboard,
	})
}

func (s *HTTPSender) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) error {
	return s.post(ctx, "/photos", sendPhotoRequest{
		ChatID:  chatID,
		Photo:   base64.StdEncoding.EncodeToString(photo),
		Caption: caption,
	})
}

func (s *HTTPSender) post(ctx context.Context, path string, payload any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sender.post")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("path", path))

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("transport returned %d: %s", resp.StatusCode, string(respBytes))
	}
	return nil
}
