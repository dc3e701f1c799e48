package wallethandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	walletservice "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/application"
	walletdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
)

// Handlers exposes the wallet module over HTTP.
type Handlers struct {
	service walletservice.Service
	logger  *slog.Logger
}

func NewHandlers(service walletservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// RegisterRoutes mounts the wallet routes. Method routes are registered with
// full paths so the wallet subtree can coexist with the trip module's router
// under the same /trips prefix.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/trips/{tripID}/wallet/expenses", h.RecordExpense)
	r.Get("/trips/{tripID}/wallet/expenses", h.ListExpenses)
	r.Delete("/trips/{tripID}/wallet/expenses/{expenseID}", h.DeleteExpense)
	r.Post("/trips/{tripID}/wallet/payments", h.RecordPayment)
	r.Get("/trips/{tripID}/wallet/payments", h.ListPayments)
	r.Get("/trips/{tripID}/wallet/balances", h.Balances)
	r.Get("/trips/{tripID}/wallet/export", h.Export)
}

type recordExpenseRequest struct {
	PaidBy      uuid.UUID   `json:"paidBy"`
	AmountCents int64       `json:"amountCents"`
	Description string      `json:"description"`
	SplitAmong  []uuid.UUID `json:"splitAmong"`
}

func (h *Handlers) RecordExpense(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	var req recordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.RecordExpense(r.Context(), walletservice.RecordExpenseInput{
		TripID:      tripID,
		PaidBy:      req.PaidBy,
		AmountCents: req.AmountCents,
		Description: req.Description,
		SplitAmong:  req.SplitAmong,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to record expense", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	writeJSON(w, http.StatusCreated, result.Success)
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	expenses, err := h.service.ListExpenses(r.Context(), tripID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, ok := parseID(w, r, "expenseID")
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(r.Context(), expenseID); err != nil {
		if errors.Is(err, walletdb.ErrNoRowsAffected) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type recordPaymentRequest struct {
	FromPlayer  uuid.UUID `json:"fromPlayer"`
	ToPlayer    uuid.UUID `json:"toPlayer"`
	AmountCents int64     `json:"amountCents"`
	Note        string    `json:"note"`
}

func (h *Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), walletservice.RecordPaymentInput{
		TripID:      tripID,
		FromPlayer:  req.FromPlayer,
		ToPlayer:    req.ToPlayer,
		AmountCents: req.AmountCents,
		Note:        req.Note,
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

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	payments, err := h.service.ListPayments(r.Context(), tripID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handlers) Balances(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	balances, err := h.service.Balances(r.Context(), tripID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseID(w, r, "tripID")
	if !ok {
		return
	}
	report, err := h.service.ExportSettlementReport(r.Context(), tripID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to export settlement report", attr.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="settlement.xlsx"`)
	_, _ = w.Write(report)
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
