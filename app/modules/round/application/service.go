package roundservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	rounddb "github.com/Broken-Tee-Society/trip-tracker/app/modules/round/infrastructure/repositories"
	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/eventbus"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// RoundService implements the Service interface. It reads the trip repository
// for the roster and handicap policy that drive every recompute.
type RoundService struct {
	repo     rounddb.Repository
	trips    tripdb.Repository
	EventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  observability.OperationMetrics
	tracer   trace.Tracer
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.Repository,
	trips tripdb.Repository,
	bus eventbus.EventBus,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *RoundService {
	return &RoundService{
		repo:     repo,
		trips:    trips,
		EventBus: bus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func withTelemetry[S any, F any](
	s *RoundService,
	ctx context.Context,
	operationName string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "Panic in "+operationName,
				attr.Any("panic", r),
				attr.ExtractCorrelationID(ctx),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			err = fmt.Errorf("panic in %s: %v", operationName, r)
		}
	}()

	result, err = op(ctx)
	switch {
	case err != nil:
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(err)
	case result.Succeeded():
		s.metrics.RecordOperationSuccess(ctx, operationName)
	default:
		s.metrics.RecordOperationFailure(ctx, operationName)
	}
	return result, err
}

// publishRoundEvent marshals and publishes a trip-scoped round event. Publish
// failures are logged and swallowed: the write already committed, and clients
// recover on their next fetch.
func (s *RoundService) publishRoundEvent(ctx context.Context, topic string, tripID uuid.UUID, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal event payload",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	msg := message.NewMessage(uuid.NewString(), body)
	if err := eventbus.PublishWithTripScope(s.EventBus, topic, tripID.String(), msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
