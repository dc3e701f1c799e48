package triphandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	tripservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/application"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
)

// Handlers exposes the trip module over HTTP.
type Handlers struct {
	service tripservice.Service
	logger  *slog.Logger
}

func NewHandlers(service tripservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// RegisterRoutes mounts the trip routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/trips", func(r chi.Router) {
		r.Post("/", h.CreateTrip)
		r.Get("/", h.ListTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", h.GetTrip)
			r.Put("/", h.UpdateTrip)
			r.Put("/policy", h.UpdatePolicy)
			r.Get("/roster", h.GetRoster)
			r.Post("/teams", h.CreateTeam)
			r.Post("/players", h.AddPlayer)
			r.Put("/players/{playerID}/team", h.AssignPlayerToTeam)
			r.Put("/players/{playerID}/handicap", h.UpdatePlayerHandicap)
			r.Delete("/players/{playerID}", h.RemovePlayer)
		})
	})
}

type createTripRequest struct {
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (h *Handlers) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CreateTrip(r.Context(), tripservice.CreateTripInput{
		Name:      req.Name,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create trip", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

func (h *Handlers) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.service.ListTrips(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

func (h *Handlers) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := h.service.GetTrip(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, tripdb.ErrNotFound) {
			http.Error(w, "trip not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

func (h *Handlers) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.UpdateTrip(r.Context(), tripservice.UpdateTripInput{
		TripID:    tripID,
		Name:      req.Name,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to update trip", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	var policy game.HandicapPolicy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.UpdateHandicapPolicy(r.Context(), tripID, policy)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) GetRoster(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	roster, err := h.service.GetRoster(r.Context(), tripID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

type createTeamRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CreateTeam(r.Context(), tripID, req.Name, req.Color)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

type addPlayerRequest struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	HandicapIndex float64    `json:"handicapIndex"`
	TeamID        *uuid.UUID `json:"teamId"`
}

func (h *Handlers) AddPlayer(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.AddPlayer(r.Context(), tripservice.AddPlayerInput{
		TripID:        tripID,
		Name:          req.Name,
		Email:         req.Email,
		HandicapIndex: req.HandicapIndex,
		TeamID:        req.TeamID,
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

type assignTeamRequest struct {
	TeamID *uuid.UUID `json:"teamId"`
}

func (h *Handlers) AssignPlayerToTeam(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	playerID, ok := parseID(w, r, "playerID")
	if !ok {
		return
	}
	var req assignTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.AssignPlayerToTeam(r.Context(), tripID, playerID, req.TeamID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusNotFound, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

type updateHandicapRequest struct {
	HandicapIndex float64 `json:"handicapIndex"`
}

func (h *Handlers) UpdatePlayerHandicap(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	playerID, ok := parseID(w, r, "playerID")
	if !ok {
		return
	}
	var req updateHandicapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.UpdatePlayerHandicapIndex(r.Context(), tripID, playerID, req.HandicapIndex)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

func (h *Handlers) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	playerID, ok := parseID(w, r, "playerID")
	if !ok {
		return
	}
	if err := h.service.RemovePlayer(r.Context(), tripID, playerID); err != nil {
		if errors.Is(err, tripdb.ErrNoRowsAffected) {
			http.Error(w, "player not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		http.Error(w, "invalid "+param, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
