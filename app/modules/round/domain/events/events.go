package roundevents

import "github.com/google/uuid"

// Stream and topic names for round events. Topics carry a trailing trip-id
// segment when published (see eventbus.PublishWithTripScope).
const (
	StreamName = "round"

	RoundCreatedTopic   = "round.created.v1"
	ScoresUpdatedTopic  = "round.scores.updated.v1"
	RoundFinalizedTopic = "round.finalized.v1"
)

// RoundCreatedPayloadV1 announces a new round on the trip schedule.
type RoundCreatedPayloadV1 struct {
	TripID  uuid.UUID `json:"trip_id"`
	RoundID uuid.UUID `json:"round_id"`
}

// ScoresUpdatedPayloadV1 signals that a gross score was written. Derived
// results are never stored; clients re-fetch the round results, which
// recompute from the full score history.
type ScoresUpdatedPayloadV1 struct {
	TripID     uuid.UUID `json:"trip_id"`
	RoundID    uuid.UUID `json:"round_id"`
	PlayerID   uuid.UUID `json:"player_id"`
	HoleNumber int       `json:"hole_number"`
}

// RoundFinalizedPayloadV1 announces that a round's results are locked in.
type RoundFinalizedPayloadV1 struct {
	TripID  uuid.UUID `json:"trip_id"`
	RoundID uuid.UUID `json:"round_id"`
}
