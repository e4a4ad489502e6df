package chat

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	log "github.com/sirupsen/logrus"
)

// Handler is the webhook HTTP surface: the chat transport forwards
// incoming messages and button taps here.
type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{
		bot: bot,
	}
}

func (handler *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.webhook.message")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		log.Tracef("webhook message, unmarshal json params: %s", err)
		http.Error(w, "invalid message payload", http.StatusBadRequest)
		return
	}
	if msg.UserID == 0 || msg.ChatID == 0 {
		http.Error(w, "error, user id or chat id empty", http.StatusBadRequest)
		return
	}

	if err := handler.bot.HandleMessage(ctx, msg); err != nil {
		log.Errorf("failed to handle message from user %d: %s", msg.UserID, err)
		http.Error(w, "error, failed to handle message", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"processed":true}`)
}

func (handler *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.webhook.callback")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var cb Callback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		log.Tracef("webhook callback, unmarshal json params: %s", err)
		http.Error(w, "invalid callback payload", http.StatusBadRequest)
		return
	}
	if cb.UserID == 0 || cb.ChatID == 0 || cb.Data == "" {
		http.Error(w, "error, user id, chat id or data empty", http.StatusBadRequest)
		return
	}

	if err := handler.bot.HandleCallback(ctx, cb); err != nil {
		log.Errorf("failed to handle callback from user %d: %s", cb.UserID, err)
		http.Error(w, "error, failed to handle callback", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"processed":true}`)
}

func (handler *Handler) HandleCommands(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.webhook.commands")
	defer span.End()

	commandsJson, err := json.Marshal(BotCommands())
	if err != nil {
		log.Errorf("failed to marshal bot commands: %s", err)
		http.Error(w, "error, failed to get commands", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, commandsJson)
}
