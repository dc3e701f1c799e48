package roundhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	roundservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/application"
	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/game"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
)

// Handlers exposes the round module over HTTP.
type Handlers struct {
	service roundservice.Service
	logger  *slog.Logger
}

func NewHandlers(service roundservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// RegisterRoutes mounts the round routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/rounds", func(r chi.Router) {
		r.Post("/", h.CreateRound)
		r.Route("/{roundID}", func(r chi.Router) {
			r.Get("/", h.GetRound)
			r.Post("/finalize", h.FinalizeRound)
			r.Put("/teesheet", h.DefineTeeSheet)
			r.Get("/teesheet", h.GetTeeSheet)
			r.Post("/matches", h.CreateMatch)
			r.Get("/matches", h.ListMatches)
			r.Put("/scores", h.RecordScore)
			r.Get("/results", h.GetResults)
		})
	})
	r.Get("/trips/{tripID}/rounds", h.ListRounds)
}

type createRoundRequest struct {
	TripID             uuid.UUID  `json:"tripId"`
	CourseName         string     `json:"courseName"`
	CourseSlope        int        `json:"courseSlope"`
	CourseRating       float64    `json:"courseRating"`
	TeeTime            *time.Time `json:"teeTime"`
	TeeTimeText        string     `json:"teeTimeText"`
	Format             string     `json:"format"`
	SkinsEntryFeeCents int64      `json:"skinsEntryFeeCents"`
	TiltEntryFeeCents  int64      `json:"tiltEntryFeeCents"`
	MaxScoreOverPar    *int       `json:"maxScoreOverPar"`
	SkinsTeamRule      string     `json:"skinsTeamRule"`
}

func (h *Handlers) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req createRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CreateRound(r.Context(), roundservice.CreateRoundInput{
		TripID:             req.TripID,
		CourseName:         req.CourseName,
		CourseSlope:        req.CourseSlope,
		CourseRating:       req.CourseRating,
		TeeTime:            req.TeeTime,
		TeeTimeText:        req.TeeTimeText,
		Format:             game.Format(req.Format),
		SkinsEntryFeeCents: req.SkinsEntryFeeCents,
		TiltEntryFeeCents:  req.TiltEntryFeeCents,
		MaxScoreOverPar:    req.MaxScoreOverPar,
		SkinsTeamRule:      req.SkinsTeamRule,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create round", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

func (h *Handlers) GetRound(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	round, err := h.service.GetRound(r.Context(), roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			http.Error(w, "round not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (h *Handlers) ListRounds(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	rounds, err := h.service.ListRounds(r.Context(), tripID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rounds)
}

func (h *Handlers) FinalizeRound(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	result, err := h.service.FinalizeRound(r.Context(), roundID)
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

func (h *Handlers) DefineTeeSheet(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	var holes []game.Hole
	if err := json.NewDecoder(r.Body).Decode(&holes); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.DefineTeeSheet(r.Context(), roundID, holes)
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

func (h *Handlers) GetTeeSheet(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	holes, err := h.service.GetTeeSheet(r.Context(), roundID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, holes)
}

type createMatchRequest struct {
	Side1Players []uuid.UUID `json:"side1Players"`
	Side2Players []uuid.UUID `json:"side2Players"`
}

func (h *Handlers) CreateMatch(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CreateMatch(r.Context(), roundservice.CreateMatchInput{
		RoundID:      roundID,
		Side1Players: req.Side1Players,
		Side2Players: req.Side2Players,
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

func (h *Handlers) ListMatches(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	matches, err := h.service.ListMatches(r.Context(), roundID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

type recordScoreRequest struct {
	PlayerID     uuid.UUID `json:"playerId"`
	HoleNumber   int       `json:"holeNumber"`
	GrossStrokes int       `json:"grossStrokes"`
}

func (h *Handlers) RecordScore(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	var req recordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.RecordHoleScore(r.Context(), roundservice.RecordScoreInput{
		RoundID:      roundID,
		PlayerID:     req.PlayerID,
		HoleNumber:   req.HoleNumber,
		GrossStrokes: req.GrossStrokes,
	})
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

func (h *Handlers) GetResults(w http.ResponseWriter, r *http.Request) {
	roundID, ok := parseID(w, r, "roundID")
	if !ok {
		return
	}
	results, err := h.service.ComputeResults(r.Context(), roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			http.Error(w, "round not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, game.ErrInvalidHoleSet) || errors.Is(err, game.ErrIncompleteHoleSequence) || errors.Is(err, game.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to compute round results", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, results)
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
