package walletevents

import "github.com/google/uuid"

// Stream and topic names for wallet events. Topics carry a trailing trip-id
// segment when published (see eventbus.PublishWithTripScope).
const (
	StreamName = "wallet"

	ExpenseRecordedTopic = "wallet.expense.recorded.v1"
	PaymentRecordedTopic = "wallet.payment.recorded.v1"
)

// ExpenseRecordedPayloadV1 announces a new shared expense. Clients re-fetch
// balances.
type ExpenseRecordedPayloadV1 struct {
	TripID    uuid.UUID `json:"trip_id"`
	ExpenseID uuid.UUID `json:"expense_id"`
}

// PaymentRecordedPayloadV1 announces a settlement between two players.
type PaymentRecordedPayloadV1 struct {
	TripID    uuid.UUID `json:"trip_id"`
	PaymentID uuid.UUID `json:"payment_id"`
}
