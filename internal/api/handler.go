package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chatblack/internal/assistant"
	"chatblack/internal/palette"
	"chatblack/internal/styleconf"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// themeCSSMaxAge is how long clients may cache the rendered stylesheet.
// Short enough that a style config edit propagates without a hard refresh.
const themeCSSMaxAge = "public, max-age=300"

// StyleSource supplies the current style snapshot. Satisfied by
// *styleconf.Holder; tests substitute fixed snapshots.
type StyleSource interface {
	Current() styleconf.Snapshot
}

// Handler wires the responder and style source into HTTP handlers.
type Handler struct {
	responder assistant.Responder
	styles    StyleSource

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(responder assistant.Responder, styles StyleSource, opts ...HandlerOption) *Handler {
	h := &Handler{
		responder: responder,
		styles:    styles,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGreeting(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, resultResponse{Result: h.responder.Greeting()})
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	answer, err := h.responder.Reply(req.Question)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyQuestion):
			writeError(w, http.StatusBadRequest, "Invalid question", err.Error())
		case errors.Is(err, assistant.ErrQuestionTooLong):
			writeError(w, http.StatusUnprocessableEntity, "Question too long", err.Error(),
				"shorten the question and ask again")
		default:
			writeInternalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Result: answer})
}

func (h *Handler) handleStyles(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap := h.styles.Current()
	resp := stylesResponse{
		Config:   snap.Config,
		LoadedAt: snap.LoadedAt,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePalette(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap := h.styles.Current()
	resp := paletteResponse{
		Palette:  snap.Palette,
		LoadedAt: snap.LoadedAt,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", themeCSSMaxAge)
	_, _ = w.Write([]byte(h.styles.Current().CSS()))
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type askRequest struct {
	Question string `json:"question"`
}

type resultResponse struct {
	Result string `json:"result"`
}

type stylesResponse struct {
	Config   styleconf.Config `json:"config"`
	LoadedAt time.Time        `json:"loadedAt"`
}

type paletteResponse struct {
	Palette  palette.Palette `json:"palette"`
	LoadedAt time.Time       `json:"loadedAt"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
