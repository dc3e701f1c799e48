package walletservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"

	walletdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/wallet/infrastructure/repositories"
	eventbusmocks "github.com/Broken-Tee-Society/trip-tracker/eventbus/mocks"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability"
)

// FakeWalletRepository provides a programmable stub for walletdb.Repository.
type FakeWalletRepository struct {
	expenses []walletdb.Expense
	payments []walletdb.Payment

	CreateExpenseFunc func(ctx context.Context, expense *walletdb.Expense) error
	CreatePaymentFunc func(ctx context.Context, payment *walletdb.Payment) error
	DeleteExpenseFunc func(ctx context.Context, expenseID uuid.UUID) error
}

var _ walletdb.Repository = (*FakeWalletRepository)(nil)

func (f *FakeWalletRepository) CreateExpense(ctx context.Context, expense *walletdb.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if f.CreateExpenseFunc != nil {
		return f.CreateExpenseFunc(ctx, expense)
	}
	f.expenses = append(f.expenses, *expense)
	return nil
}

func (f *FakeWalletRepository) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]walletdb.Expense, error) {
	return f.expenses, nil
}

func (f *FakeWalletRepository) DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	if f.DeleteExpenseFunc != nil {
		return f.DeleteExpenseFunc(ctx, expenseID)
	}
	return nil
}

func (f *FakeWalletRepository) CreatePayment(ctx context.Context, payment *walletdb.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if f.CreatePaymentFunc != nil {
		return f.CreatePaymentFunc(ctx, payment)
	}
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *FakeWalletRepository) ListPayments(ctx context.Context, tripID uuid.UUID) ([]walletdb.Payment, error) {
	return f.payments, nil
}

func newTestService(t *testing.T, repo walletdb.Repository) (*WalletService, *eventbusmocks.MockEventBus) {
	t.Helper()
	ctrl := gomock.NewController(t)
	bus := eventbusmocks.NewMockEventBus(ctrl)
	tracer := noop.NewTracerProvider().Tracer("test")
	svc := NewWalletService(repo, bus, observability.NoOpLogger, observability.NoOpMetrics{}, tracer)
	return svc, bus
}

func TestWalletService_RecordExpense(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()
	payer := uuid.New()

	tests := []struct {
		name        string
		input       RecordExpenseInput
		wantFailure string
	}{
		{
			name: "records a split expense",
			input: RecordExpenseInput{
				TripID:      tripID,
				PaidBy:      payer,
				AmountCents: 12000,
				Description: "greens fees",
				SplitAmong:  []uuid.UUID{payer, uuid.New(), uuid.New()},
			},
		},
		{
			name:        "rejects zero amount",
			input:       RecordExpenseInput{TripID: tripID, PaidBy: payer, Description: "x", SplitAmong: []uuid.UUID{payer}},
			wantFailure: "amount must be positive",
		},
		{
			name:        "rejects empty split",
			input:       RecordExpenseInput{TripID: tripID, PaidBy: payer, AmountCents: 100, Description: "x"},
			wantFailure: "expense must be split among at least one player",
		},
		{
			name:        "rejects missing description",
			input:       RecordExpenseInput{TripID: tripID, PaidBy: payer, AmountCents: 100, SplitAmong: []uuid.UUID{payer}},
			wantFailure: "description is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &FakeWalletRepository{}
			svc, bus := newTestService(t, repo)
			if tc.wantFailure == "" {
				bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			}

			result, err := svc.RecordExpense(ctx, tc.input)
			require.NoError(t, err)
			if tc.wantFailure != "" {
				require.NotNil(t, result.Failure)
				assert.Equal(t, tc.wantFailure, result.Failure.Reason)
				return
			}
			require.NotNil(t, result.Success)
			assert.NotEqual(t, uuid.Nil, result.Success.ID)
		})
	}
}

// TestWalletService_Balances walks a small trip ledger: two expenses with an
// uneven three-way split and one settlement payment. Every expense's shares
// sum exactly to its amount, so the net positions sum to zero.
func TestWalletService_Balances(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()
	alice := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	cara := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	repo := &FakeWalletRepository{
		expenses: []walletdb.Expense{
			{
				TripID:      tripID,
				PaidBy:      alice,
				AmountCents: 10000,
				Description: "house deposit",
				SplitAmong:  []uuid.UUID{alice, bob, cara},
			},
			{
				TripID:      tripID,
				PaidBy:      bob,
				AmountCents: 2500,
				Description: "range balls",
				SplitAmong:  []uuid.UUID{bob, cara},
			},
		},
		payments: []walletdb.Payment{
			{TripID: tripID, FromPlayer: cara, ToPlayer: alice, AmountCents: 2000},
		},
	}
	svc, _ := newTestService(t, repo)

	balances, err := svc.Balances(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	byID := map[uuid.UUID]PlayerBalance{}
	var netSum int64
	for _, b := range balances {
		byID[b.PlayerID] = b
		netSum += b.NetCents
	}
	assert.Zero(t, netSum)

	// 10000 over three: 3334 + 3333 + 3333.
	assert.Equal(t, int64(3334), byID[alice].OwedShareCents)
	assert.Equal(t, int64(10000), byID[alice].PaidCents)
	assert.Equal(t, int64(10000-3334-2000), byID[alice].NetCents)

	assert.Equal(t, int64(3333+1250), byID[bob].OwedShareCents)
	assert.Equal(t, int64(2500-3333-1250), byID[bob].NetCents)

	assert.Equal(t, int64(3333+1250), byID[cara].OwedShareCents)
	assert.Equal(t, int64(2000-3333-1250), byID[cara].NetCents)

	// Sorted by net position, the trip's creditor leads.
	assert.Equal(t, alice, balances[0].PlayerID)
}

func TestWalletService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()
	from := uuid.New()
	to := uuid.New()

	t.Run("records a payment", func(t *testing.T) {
		repo := &FakeWalletRepository{}
		svc, bus := newTestService(t, repo)
		bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.RecordPayment(ctx, RecordPaymentInput{
			TripID:      tripID,
			FromPlayer:  from,
			ToPlayer:    to,
			AmountCents: 4500,
			Note:        "skins debt",
		})
		require.NoError(t, err)
		require.NotNil(t, result.Success)
	})

	t.Run("rejects self payment", func(t *testing.T) {
		svc, _ := newTestService(t, &FakeWalletRepository{})
		result, err := svc.RecordPayment(ctx, RecordPaymentInput{
			TripID:      tripID,
			FromPlayer:  from,
			ToPlayer:    from,
			AmountCents: 100,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Failure)
	})
}

func TestWalletService_ExportSettlementReport(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	repo := &FakeWalletRepository{
		expenses: []walletdb.Expense{
			{TripID: tripID, PaidBy: alice, AmountCents: 5000, Description: "carts", SplitAmong: []uuid.UUID{alice, bob}},
		},
		payments: []walletdb.Payment{
			{TripID: tripID, FromPlayer: bob, ToPlayer: alice, AmountCents: 2500},
		},
	}
	svc, _ := newTestService(t, repo)

	report, err := svc.ExportSettlementReport(ctx, tripID)
	require.NoError(t, err)
	// xlsx is a zip container.
	require.Greater(t, len(report), 4)
	assert.Equal(t, []byte{'P', 'K'}, report[:2])
}
