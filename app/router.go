package app

import (
	"encoding/json"
	"log/slog"
	"net/http"

	leaderboardhandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/leaderboard/infrastructure/handlers"
	roundhandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/handlers"
	triphandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/handlers"
	wallethandlers "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/infrastructure/handlers"
	"github.com/Broken-Tee-Society/trip-tracker/config"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// routerDeps bundles everything NewRouter needs so App stays the only caller
// that knows construction order.
type routerDeps struct {
	cfg         *config.Config
	logger      *slog.Logger
	tokens      jwt.Service
	trip        *triphandlers.Handlers
	round       *roundhandlers.Handlers
	wallet      *wallethandlers.Handlers
	leaderboard *leaderboardhandlers.Handlers
}

// NewRouter assembles the HTTP API. Everything under /api/v1 requires a
// bearer token scoped to a trip; /healthz and the development token endpoint
// are public.
func NewRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(CorrelationIDMiddleware)
	if deps.cfg.HTTP.RateLimitPerSecond > 0 {
		limiter := NewIPRateLimiter(rate.Limit(deps.cfg.HTTP.RateLimitPerSecond), deps.cfg.HTTP.RateLimitBurst)
		r.Use(RateLimitMiddleware(limiter))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Development-only token minting. In production players sign in through
	// magic links issued by their organizer.
	if deps.cfg.Observability.Environment == "development" {
		r.Post("/auth/dev-token", devTokenHandler(deps.tokens, deps.logger))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(deps.tokens))

		deps.trip.RegisterRoutes(r)
		deps.round.RegisterRoutes(r)
		deps.wallet.RegisterRoutes(r)
		deps.leaderboard.RegisterRoutes(r)

		r.Post("/auth/magic-link", magicLinkHandler(deps.tokens, deps.logger))
	})

	return r
}

type tokenRequest struct {
	PlayerID string `json:"playerId"`
	TripID   string `json:"tripId"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type magicLinkResponse struct {
	URL string `json:"url"`
}

func devTokenHandler(tokens jwt.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" || req.TripID == "" {
			http.Error(w, "playerId and tripId are required", http.StatusBadRequest)
			return
		}
		role := jwt.Role(req.Role)
		if role == "" {
			role = jwt.RolePlayer
		}

		token, err := tokens.GenerateToken(req.PlayerID, req.TripID, role, 0)
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to generate token", attr.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{Token: token})
	}
}

// magicLinkHandler lets an organizer mint a short-lived sign-in link for a
// player on their own trip.
func magicLinkHandler(tokens jwt.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.Role != string(jwt.RoleOrganizer) {
			http.Error(w, "organizer role required", http.StatusForbidden)
			return
		}

		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "playerId is required", http.StatusBadRequest)
			return
		}
		if req.TripID != "" && req.TripID != claims.Trip {
			http.Error(w, "token is not scoped to that trip", http.StatusForbidden)
			return
		}
		role := jwt.Role(req.Role)
		if role == "" {
			role = jwt.RolePlayer
		}
		if role == jwt.RoleOrganizer {
			http.Error(w, "magic links cannot grant the organizer role", http.StatusForbidden)
			return
		}

		url, err := tokens.GenerateMagicLink(req.PlayerID, claims.Trip, role)
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to generate magic link", attr.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(magicLinkResponse{URL: url})
	}
}
