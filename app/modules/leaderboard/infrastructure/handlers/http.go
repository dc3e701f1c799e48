package leaderboardhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	leaderboardservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/leaderboard/application"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
)

// Handlers exposes the leaderboard module over HTTP.
type Handlers struct {
	service *leaderboardservice.LeaderboardService
	logger  *slog.Logger
}

func NewHandlers(service *leaderboardservice.LeaderboardService, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// RegisterRoutes mounts the leaderboard routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/trips/{tripID}/leaderboard", h.GetLeaderboard)
	r.Get("/trips/{tripID}/leaderboard/chart", h.GetChart)
}

func (h *Handlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	board, err := h.service.Standings(r.Context(), tripID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to compute leaderboard", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(board)
}

func (h *Handlers) GetChart(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	png, err := h.service.RenderStandingsChart(r.Context(), tripID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render standings chart", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		http.Error(w, "invalid "+param, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
