package walletdb

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the wallet module's persistence boundary.
type Repository interface {
	CreateExpense(ctx context.Context, expense *Expense) error
	ListExpenses(ctx context.Context, tripID uuid.UUID) ([]Expense, error)
	DeleteExpense(ctx context.Context, expenseID uuid.UUID) error

	CreatePayment(ctx context.Context, payment *Payment) error
	ListPayments(ctx context.Context, tripID uuid.UUID) ([]Payment, error)
}
