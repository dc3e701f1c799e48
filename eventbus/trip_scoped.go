package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishWithTripScope publishes an event with a trip_id suffix so clients
// can subscribe per trip.
//
// Example:
//   - baseTopic: "round.scores.updated.v1"
//   - tripID: "b2f7..."
//   - result: "round.scores.updated.v1.b2f7..."
//
// Wildcard subscriptions catch all trips: "round.scores.updated.v1.*".
func PublishWithTripScope(bus EventBus, baseTopic string, tripID string, msg *message.Message) error {
	if tripID == "" {
		return fmt.Errorf("tripID cannot be empty for trip-scoped publish")
	}
	return bus.Publish(FormatTripScopedTopic(baseTopic, tripID), msg)
}

// FormatTripScopedTopic formats a topic with a trip_id suffix without
// publishing. Useful for generating subscription patterns.
func FormatTripScopedTopic(baseTopic string, tripID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, tripID)
}
