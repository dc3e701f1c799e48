package tripevents

import "github.com/google/uuid"

// Stream and topic names for trip events. Topics carry a trailing trip-id
// segment when published (see eventbus.PublishWithTripScope).
const (
	StreamName = "trip"

	TripCreatedTopic   = "trip.created.v1"
	RosterUpdatedTopic = "trip.roster.updated.v1"
	PolicyUpdatedTopic = "trip.policy.updated.v1"
)

// TripCreatedPayloadV1 announces a new trip.
type TripCreatedPayloadV1 struct {
	TripID uuid.UUID `json:"trip_id"`
	Name   string    `json:"name"`
}

// RosterUpdatedPayloadV1 announces any roster change: player added, removed,
// or moved between teams. Clients re-fetch the roster.
type RosterUpdatedPayloadV1 struct {
	TripID uuid.UUID `json:"trip_id"`
}

// PolicyUpdatedPayloadV1 announces a handicap-policy change. Derived results
// are never stored, so no recalculation fan-out is needed; clients simply
// re-fetch, and the next recompute uses the new policy.
type PolicyUpdatedPayloadV1 struct {
	TripID uuid.UUID `json:"trip_id"`
}
