package walletdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WalletDBImpl implements Repository on bun.
type WalletDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*WalletDBImpl)(nil)

func (db *WalletDBImpl) CreateExpense(ctx context.Context, expense *Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if _, err := db.DB.NewInsert().Model(expense).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (db *WalletDBImpl) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]Expense, error) {
	var expenses []Expense
	err := db.DB.NewSelect().
		Model(&expenses).
		Where("e.trip_id = ?", tripID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for trip %s: %w", tripID, err)
	}
	return expenses, nil
}

func (db *WalletDBImpl) DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	res, err := db.DB.NewDelete().
		Model((*Expense)(nil)).
		Where("id = ?", expenseID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	return requireRowsAffected(res)
}

func (db *WalletDBImpl) CreatePayment(ctx context.Context, payment *Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if _, err := db.DB.NewInsert().Model(payment).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (db *WalletDBImpl) ListPayments(ctx context.Context, tripID uuid.UUID) ([]Payment, error) {
	var payments []Payment
	err := db.DB.NewSelect().
		Model(&payments).
		Where("pm.trip_id = ?", tripID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for trip %s: %w", tripID, err)
	}
	return payments, nil
}

func requireRowsAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
