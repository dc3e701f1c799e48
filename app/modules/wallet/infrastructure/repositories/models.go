package walletdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Expense is money one player fronted for a group: greens fees, the beer run,
// the house. AmountCents splits evenly across SplitAmong, remainder cents to
// the earliest listed participants.
type Expense struct {
	bun.BaseModel `bun:"table:expenses,alias:e"`

	ID          uuid.UUID   `bun:"id,pk,type:uuid"`
	TripID      uuid.UUID   `bun:"trip_id,notnull,type:uuid"`
	PaidBy      uuid.UUID   `bun:"paid_by,notnull,type:uuid"`
	AmountCents int64       `bun:"amount_cents,notnull"`
	Description string      `bun:"description,notnull"`
	SplitAmong  []uuid.UUID `bun:"split_among,array,type:uuid[]"`
	CreatedAt   time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Payment is a settlement between two players. The ledger records it; no
// money moves through the system.
type Payment struct {
	bun.BaseModel `bun:"table:payments,alias:pm"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	TripID      uuid.UUID `bun:"trip_id,notnull,type:uuid"`
	FromPlayer  uuid.UUID `bun:"from_player,notnull,type:uuid"`
	ToPlayer    uuid.UUID `bun:"to_player,notnull,type:uuid"`
	AmountCents int64     `bun:"amount_cents,notnull"`
	Note        string    `bun:"note"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
