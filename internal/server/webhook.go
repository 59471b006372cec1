package server

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-telegram/bot/models"

	"github.com/idnt/idntbot/internal/logger"
)

// SecretHeader carries the webhook secret set through setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Response bodies.
const (
	bodyOK         = "ok"
	bodyError      = "error"
	bodyBadSecret  = "bad secret"
	bodyUsePOST    = "Use POST"
	defaultMaxBody = 1 << 20
)

var errNotAnObject = errors.New("update body is not a JSON object")

// UpdateFunc processes one decoded update. A returned error yields a 500.
type UpdateFunc func(ctx context.Context, update *models.Update) error

// WebhookConfig configures the webhook handler.
type WebhookConfig struct {
	// Secret, when non-empty, must match the SecretHeader of every update.
	Secret       string
	MaxBodyBytes int64
}

// NewWebhookHandler returns the bot HTTP surface: GET /health, POST / for
// updates and 405 for everything else.
func NewWebhookHandler(cfg WebhookConfig, handle UpdateFunc, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBody
	}

	w := &webhook{
		cfg:    cfg,
		handle: handle,
		logger: log.With("component", "webhook"),
	}

	r := chi.NewRouter()
	r.Use(logger.Middleware(log))

	r.Get("/health", handleHealth)
	r.Post("/", w.ServeHTTP)

	r.NotFound(handleMethodNotAllowed)
	r.MethodNotAllowed(handleMethodNotAllowed)

	return r
}

type webhook struct {
	cfg    WebhookConfig
	handle UpdateFunc
	logger *slog.Logger
}

func (h *webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Secret != "" && !validSecret(r.Header.Get(SecretHeader), h.cfg.Secret) {
		h.logger.WarnContext(r.Context(), "Rejected update with invalid secret", "remote_addr", r.RemoteAddr)
		writeText(w, http.StatusUnauthorized, bodyBadSecret)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.ErrorContext(r.Context(), "Panic while handling update", "panic", rec)
			writeText(w, http.StatusInternalServerError, bodyError)
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to read update body", "error", err)
		writeText(w, http.StatusInternalServerError, bodyError)
		return
	}

	update, err := decodeUpdate(body)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode update", "error", err)
		writeText(w, http.StatusInternalServerError, bodyError)
		return
	}

	if err := h.handle(r.Context(), update); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to handle update", "update_id", update.ID, "error", err)
		writeText(w, http.StatusInternalServerError, bodyError)
		return
	}

	writeText(w, http.StatusOK, bodyOK)
}

// decodeUpdate parses body as exactly one JSON object. Trailing data and
// non-object values such as null are rejected.
func decodeUpdate(body []byte) (*models.Update, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotAnObject
	}

	var update models.Update
	if err := json.Unmarshal(trimmed, &update); err != nil {
		return nil, fmt.Errorf("invalid update JSON: %w", err)
	}
	return &update, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, bodyOK)
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusMethodNotAllowed, bodyUsePOST)
}

// validSecret compares the header against the secret in constant time.
func validSecret(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
