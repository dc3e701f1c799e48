package walletservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportSettlementReport renders the trip ledger as an xlsx workbook: one
// sheet of balances, one of raw expenses, one of payments. Amounts export in
// dollars since the sheet is for humans settling up.
func (s *WalletService) ExportSettlementReport(ctx context.Context, tripID uuid.UUID) ([]byte, error) {
	balances, err := s.Balances(ctx, tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPayments(ctx, tripID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const balanceSheet = "Balances"
	if err := f.SetSheetName("Sheet1", balanceSheet); err != nil {
		return nil, fmt.Errorf("failed to name balance sheet: %w", err)
	}
	headers := []string{"Player", "Paid", "Share Owed", "Payments Sent", "Payments Received", "Net"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(balanceSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write balance header: %w", err)
		}
	}
	for row, b := range balances {
		values := []any{
			b.PlayerID.String(),
			dollars(b.PaidCents),
			dollars(b.OwedShareCents),
			dollars(b.PaymentsSentCents),
			dollars(b.PaymentsReceivedCents),
			dollars(b.NetCents),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(balanceSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write balance row: %w", err)
			}
		}
	}

	const expenseSheet = "Expenses"
	if _, err := f.NewSheet(expenseSheet); err != nil {
		return nil, fmt.Errorf("failed to create expense sheet: %w", err)
	}
	expenseHeaders := []string{"Description", "Paid By", "Amount", "Split Among"}
	for col, header := range expenseHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(expenseSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write expense header: %w", err)
		}
	}
	for row, e := range expenses {
		values := []any{e.Description, e.PaidBy.String(), dollars(e.AmountCents), len(e.SplitAmong)}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(expenseSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write expense row: %w", err)
			}
		}
	}

	const paymentSheet = "Payments"
	if _, err := f.NewSheet(paymentSheet); err != nil {
		return nil, fmt.Errorf("failed to create payment sheet: %w", err)
	}
	paymentHeaders := []string{"From", "To", "Amount", "Note"}
	for col, header := range paymentHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(paymentSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write payment header: %w", err)
		}
	}
	for row, p := range payments {
		values := []any{p.FromPlayer.String(), p.ToPlayer.String(), dollars(p.AmountCents), p.Note}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(paymentSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write payment row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render settlement report: %w", err)
	}
	return buf.Bytes(), nil
}

func dollars(cents int64) float64 {
	return float64(cents) / 100
}
