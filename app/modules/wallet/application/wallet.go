package walletservice

import (
	"context"
	"sort"

	"github.com/google/uuid"

	walletevents "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/domain/events"
	walletdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// RecordExpense ledgers a shared expense.
func (s *WalletService) RecordExpense(ctx context.Context, input RecordExpenseInput) (ExpenseOperationResult, error) {
	return withTelemetry(s, ctx, "RecordExpense", func(ctx context.Context) (ExpenseOperationResult, error) {
		if input.AmountCents <= 0 {
			return results.Failure[walletdb.Expense, OperationFailure](&OperationFailure{Reason: "amount must be positive"}), nil
		}
		if input.Description == "" {
			return results.Failure[walletdb.Expense, OperationFailure](&OperationFailure{Reason: "description is required"}), nil
		}
		if len(input.SplitAmong) == 0 {
			return results.Failure[walletdb.Expense, OperationFailure](&OperationFailure{Reason: "expense must be split among at least one player"}), nil
		}
		seen := make(map[uuid.UUID]bool, len(input.SplitAmong))
		for _, playerID := range input.SplitAmong {
			if seen[playerID] {
				return results.Failure[walletdb.Expense, OperationFailure](&OperationFailure{Reason: "player " + playerID.String() + " listed twice in split"}), nil
			}
			seen[playerID] = true
		}

		expense := &walletdb.Expense{
			TripID:      input.TripID,
			PaidBy:      input.PaidBy,
			AmountCents: input.AmountCents,
			Description: input.Description,
			SplitAmong:  input.SplitAmong,
		}
		if err := s.repo.CreateExpense(ctx, expense); err != nil {
			s.logger.ErrorContext(ctx, "Failed to record expense",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			return ExpenseOperationResult{}, err
		}

		s.publishWalletEvent(ctx, walletevents.ExpenseRecordedTopic, input.TripID, walletevents.ExpenseRecordedPayloadV1{
			TripID:    input.TripID,
			ExpenseID: expense.ID,
		})
		return results.Success[walletdb.Expense, OperationFailure](expense), nil
	})
}

// ListExpenses lists a trip's expenses, oldest first.
func (s *WalletService) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]walletdb.Expense, error) {
	return s.repo.ListExpenses(ctx, tripID)
}

// DeleteExpense removes a mis-entered expense.
func (s *WalletService) DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, expenseID)
}

// RecordPayment ledgers a settlement between two players.
func (s *WalletService) RecordPayment(ctx context.Context, input RecordPaymentInput) (PaymentOperationResult, error) {
	return withTelemetry(s, ctx, "RecordPayment", func(ctx context.Context) (PaymentOperationResult, error) {
		if input.AmountCents <= 0 {
			return results.Failure[walletdb.Payment, OperationFailure](&OperationFailure{Reason: "amount must be positive"}), nil
		}
		if input.FromPlayer == input.ToPlayer {
			return results.Failure[walletdb.Payment, OperationFailure](&OperationFailure{Reason: "a player cannot pay themselves"}), nil
		}

		payment := &walletdb.Payment{
			TripID:      input.TripID,
			FromPlayer:  input.FromPlayer,
			ToPlayer:    input.ToPlayer,
			AmountCents: input.AmountCents,
			Note:        input.Note,
		}
		if err := s.repo.CreatePayment(ctx, payment); err != nil {
			return PaymentOperationResult{}, err
		}

		s.publishWalletEvent(ctx, walletevents.PaymentRecordedTopic, input.TripID, walletevents.PaymentRecordedPayloadV1{
			TripID:    input.TripID,
			PaymentID: payment.ID,
		})
		return results.Success[walletdb.Payment, OperationFailure](payment), nil
	})
}

// ListPayments lists a trip's payments, oldest first.
func (s *WalletService) ListPayments(ctx context.Context, tripID uuid.UUID) ([]walletdb.Payment, error) {
	return s.repo.ListPayments(ctx, tripID)
}

// Balances derives every player's ledger position from the full expense and
// payment history. Shares split evenly in integer cents; remainder cents land
// on the earliest listed participants, so the shares of every expense sum
// exactly to its amount.
func (s *WalletService) Balances(ctx context.Context, tripID uuid.UUID) ([]PlayerBalance, error) {
	expenses, err := s.repo.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, tripID)
	if err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]*PlayerBalance)
	at := func(playerID uuid.UUID) *PlayerBalance {
		if b, ok := balances[playerID]; ok {
			return b
		}
		b := &PlayerBalance{PlayerID: playerID}
		balances[playerID] = b
		return b
	}

	for _, expense := range expenses {
		at(expense.PaidBy).PaidCents += expense.AmountCents
		shares := splitEvenly(expense.AmountCents, len(expense.SplitAmong))
		for i, playerID := range expense.SplitAmong {
			at(playerID).OwedShareCents += shares[i]
		}
	}
	for _, payment := range payments {
		at(payment.FromPlayer).PaymentsSentCents += payment.AmountCents
		at(payment.ToPlayer).PaymentsReceivedCents += payment.AmountCents
	}

	out := make([]PlayerBalance, 0, len(balances))
	for _, b := range balances {
		b.NetCents = b.PaidCents - b.OwedShareCents + b.PaymentsSentCents - b.PaymentsReceivedCents
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NetCents != out[j].NetCents {
			return out[i].NetCents > out[j].NetCents
		}
		return out[i].PlayerID.String() < out[j].PlayerID.String()
	})
	return out, nil
}

// splitEvenly divides cents across n shares, front-loading the remainder.
func splitEvenly(amountCents int64, n int) []int64 {
	shares := make([]int64, n)
	base := amountCents / int64(n)
	remainder := amountCents % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
