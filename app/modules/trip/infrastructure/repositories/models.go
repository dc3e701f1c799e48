package tripdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Broken-Tee-Society/trip-tracker/game"
)

// Trip is a multi-day golf trip: the aggregate everything else hangs off.
// HandicapConfig is the trip's handicap policy stored as a JSONB blob and
// threaded into every engine call as an immutable value.
type Trip struct {
	bun.BaseModel `bun:"table:trips,alias:t"`

	ID             uuid.UUID           `bun:"id,pk,type:uuid"`
	Name           string              `bun:"name,notnull"`
	Location       string              `bun:"location"`
	StartDate      time.Time           `bun:"start_date,notnull"`
	EndDate        time.Time           `bun:"end_date,notnull"`
	HandicapConfig game.HandicapPolicy `bun:"handicap_config,type:jsonb"`
	CreatedAt      time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Team is one side of the trip-long competition.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`

	ID     uuid.UUID `bun:"id,pk,type:uuid"`
	TripID uuid.UUID `bun:"trip_id,notnull,type:uuid"`
	Name   string    `bun:"name,notnull"`
	Color  string    `bun:"color"`
}

// Player is a trip participant. HandicapIndex is the raw index the handicap
// engine scales per round; TeamID is nil until the draft.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid"`
	TripID        uuid.UUID  `bun:"trip_id,notnull,type:uuid"`
	TeamID        *uuid.UUID `bun:"team_id,type:uuid"`
	Name          string     `bun:"name,notnull"`
	Email         string     `bun:"email"`
	HandicapIndex float64    `bun:"handicap_index,notnull"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
