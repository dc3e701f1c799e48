package walletservice

import (
	"context"

	"github.com/google/uuid"

	walletdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// RecordExpenseInput is a shared expense to ledger. SplitAmong lists the
// players sharing the cost; the payer may or may not be among them.
type RecordExpenseInput struct {
	TripID      uuid.UUID
	PaidBy      uuid.UUID
	AmountCents int64
	Description string
	SplitAmong  []uuid.UUID
}

// RecordPaymentInput is a settlement between two players.
type RecordPaymentInput struct {
	TripID      uuid.UUID
	FromPlayer  uuid.UUID
	ToPlayer    uuid.UUID
	AmountCents int64
	Note        string
}

// PlayerBalance is one player's position in the trip ledger. NetCents
// positive means the trip owes the player money.
type PlayerBalance struct {
	PlayerID              uuid.UUID `json:"playerId"`
	PaidCents             int64     `json:"paidCents"`
	OwedShareCents        int64     `json:"owedShareCents"`
	PaymentsSentCents     int64     `json:"paymentsSentCents"`
	PaymentsReceivedCents int64     `json:"paymentsReceivedCents"`
	NetCents              int64     `json:"netCents"`
}

// OperationFailure is the generic business-failure payload for wallet
// operations.
type OperationFailure struct {
	Reason string `json:"reason"`
}

// ExpenseOperationResult carries an expense or a handled business failure.
type ExpenseOperationResult = results.OperationResult[walletdb.Expense, OperationFailure]

// PaymentOperationResult carries a payment or a handled business failure.
type PaymentOperationResult = results.OperationResult[walletdb.Payment, OperationFailure]

// Service is the wallet module's application boundary.
type Service interface {
	RecordExpense(ctx context.Context, input RecordExpenseInput) (ExpenseOperationResult, error)
	ListExpenses(ctx context.Context, tripID uuid.UUID) ([]walletdb.Expense, error)
	DeleteExpense(ctx context.Context, expenseID uuid.UUID) error

	RecordPayment(ctx context.Context, input RecordPaymentInput) (PaymentOperationResult, error)
	ListPayments(ctx context.Context, tripID uuid.UUID) ([]walletdb.Payment, error)

	Balances(ctx context.Context, tripID uuid.UUID) ([]PlayerBalance, error)
	ExportSettlementReport(ctx context.Context, tripID uuid.UUID) ([]byte, error)
}

var _ Service = (*WalletService)(nil)
