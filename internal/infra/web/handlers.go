package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"patriot-buddy/internal/domain"
)

const (
	maxBodyBytes   = 4096
	defaultHistory = 20
	maxHistory     = 200
)

type Asker interface {
	Ask(ctx context.Context, text string) (domain.Exchange, error)
}

type ModeStore interface {
	Get() domain.Mode
	Set(domain.Mode)
}

type APIStore interface {
	All() map[string]domain.APISettings
	Update(id string, patch domain.APIPatch) (domain.APISettings, error)
}

type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]domain.Exchange, error)
}

type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

// Mounter is anything that can serve extra routes, such as the HTTP audio source.
type Mounter interface {
	Mount(pattern string, handler http.Handler)
}

// Handler serves the control surface: mode override, typed questions,
// API settings and exchange history.
type Handler struct {
	asker    Asker
	mode     ModeStore
	apis     APIStore
	history  HistoryReader
	notifier Notifier
	logger   *slog.Logger
}

func NewHandler(asker Asker, mode ModeStore, apis APIStore, history HistoryReader, notifier Notifier, logger *slog.Logger) *Handler {
	return &Handler{
		asker:    asker,
		mode:     mode,
		apis:     apis,
		history:  history,
		notifier: notifier,
		logger:   logger,
	}
}

// Register mounts the routes. limit wraps routes that trigger generation
// and may be nil.
func (h *Handler) Register(m Mounter, limit func(http.HandlerFunc) http.HandlerFunc) {
	if limit == nil {
		limit = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	m.Mount("GET /mode", http.HandlerFunc(h.GetMode))
	m.Mount("PUT /mode", http.HandlerFunc(h.SetMode))
	m.Mount("POST /ask", limit(h.Ask))
	m.Mount("GET /apis", http.HandlerFunc(h.ListAPIs))
	m.Mount("PUT /apis/{id}", http.HandlerFunc(h.UpdateAPI))
	m.Mount("GET /history", http.HandlerFunc(h.History))
}

type modeResponse struct {
	Mode   domain.Mode `json:"mode"`
	Label  string      `json:"label"`
	Status string      `json:"status"`
}

func newModeResponse(m domain.Mode) modeResponse {
	return modeResponse{Mode: m, Label: m.Label(), Status: m.Status()}
}

func (h *Handler) GetMode(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newModeResponse(h.mode.Get()))
}

func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid body")
		return
	}

	m, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mode.Set(m)
	h.logger.Info("mode changed", "mode", m.Label())

	resp := newModeResponse(m)
	h.publish(r.Context(), domain.Event{Kind: domain.EventMode, Text: resp.Status})
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeJSONError(w, http.StatusBadRequest, "empty text")
		return
	}

	h.publish(r.Context(), domain.Event{Kind: domain.EventUserInput, Text: text})

	ex, err := h.asker.Ask(r.Context(), text)
	switch {
	case errors.Is(err, domain.ErrQueueFull):
		writeJSONError(w, http.StatusServiceUnavailable, "busy, try again")
		return
	case err != nil:
		h.logger.Warn("ask abandoned", "error", err)
		writeJSONError(w, http.StatusGatewayTimeout, "no response")
		return
	}

	h.publish(r.Context(), domain.Event{Kind: domain.EventResponse, Text: ex.Response, Exchange: &ex})
	writeJSON(w, http.StatusOK, ex)
}

func (h *Handler) ListAPIs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"apis": h.apis.All()})
}

func (h *Handler) UpdateAPI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch domain.APIPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid body")
		return
	}

	updated, err := h.apis.Update(id, patch)
	switch {
	case errors.Is(err, domain.ErrUnknownAPI):
		writeJSONError(w, http.StatusNotFound, "unknown api "+id)
		return
	case err != nil:
		h.logger.Error("saving api settings", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "could not save settings")
		return
	}

	h.logger.Info("api settings updated", "id", id, "enabled", updated.Enabled)
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", defaultHistory)
	if limit <= 0 || limit > maxHistory {
		limit = defaultHistory
	}

	rows, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("reading history", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "could not read history")
		return
	}
	if rows == nil {
		rows = []domain.Exchange{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"exchanges": rows})
}

func (h *Handler) publish(ctx context.Context, ev domain.Event) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Notify(ctx, ev); err != nil {
		h.logger.Error("notifying", "kind", ev.Kind, "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func parseIntQuery(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
