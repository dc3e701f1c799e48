package rounddb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Broken-Tee-Society/trip-tracker/game"
)

// Round statuses.
const (
	RoundStatusScheduled  = "SCHEDULED"
	RoundStatusInProgress = "IN_PROGRESS"
	RoundStatusFinalized  = "FINALIZED"
)

// Skins team-entry rules for team formats.
const (
	SkinsTeamRuleBestBall    = "BEST_BALL"
	SkinsTeamRuleCombinedNet = "COMBINED_NET"
)

// Round is one day of play on one course. Entry fees are cents; a nil
// MaxScoreOverPar means gross scores are uncapped.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID              uuid.UUID   `bun:"id,pk,type:uuid"`
	TripID          uuid.UUID   `bun:"trip_id,notnull,type:uuid"`
	CourseName      string      `bun:"course_name,notnull"`
	CourseSlope     int         `bun:"course_slope,notnull,default:113"`
	CourseRating    float64     `bun:"course_rating,notnull,default:72"`
	TeeTime         time.Time   `bun:"tee_time,notnull"`
	Format          game.Format `bun:"format,notnull"`
	SkinsEntryFee   int64       `bun:"skins_entry_fee,notnull,default:0"`
	TiltEntryFee    int64       `bun:"tilt_entry_fee,notnull,default:0"`
	MaxScoreOverPar *int        `bun:"max_score_over_par"`
	SkinsTeamRule   string      `bun:"skins_team_rule,notnull,default:'BEST_BALL'"`
	Status          string      `bun:"status,notnull,default:'SCHEDULED'"`
	CreatedAt       time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// TeeHole is one row of a round's tee sheet. The 18 rows for a round are
// replaced atomically on every tee-sheet write.
type TeeHole struct {
	bun.BaseModel `bun:"table:tee_holes,alias:th"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	RoundID     uuid.UUID `bun:"round_id,notnull,type:uuid"`
	HoleNumber  int       `bun:"hole_number,notnull"`
	Par         int       `bun:"par,notnull"`
	StrokeIndex int       `bun:"stroke_index,notnull"`
}

// Match pairs two sides within a round. Side player lists hold one ID for
// singles and two for team formats. Stroke-play rounds carry a single match
// grouping every player on side 1.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID           uuid.UUID   `bun:"id,pk,type:uuid"`
	RoundID      uuid.UUID   `bun:"round_id,notnull,type:uuid"`
	Side1Players []uuid.UUID `bun:"side1_players,array,type:uuid[]"`
	Side2Players []uuid.UUID `bun:"side2_players,array,type:uuid[]"`
	CreatedAt    time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// HoleScore is the immutable source of truth: one gross score per player per
// hole. Corrections upsert the same (round, player, hole) row; everything
// derived from it is recomputed, never stored.
type HoleScore struct {
	bun.BaseModel `bun:"table:hole_scores,alias:hs"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	RoundID      uuid.UUID `bun:"round_id,notnull,type:uuid"`
	PlayerID     uuid.UUID `bun:"player_id,notnull,type:uuid"`
	HoleNumber   int       `bun:"hole_number,notnull"`
	GrossStrokes int       `bun:"gross_strokes,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
