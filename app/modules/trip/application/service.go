package tripservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	tripdb "github.com/Broken-Tee-Society/trip-tracker/app/modules/trip/infrastructure/repositories"
	"github.com/Broken-Tee-Society/trip-tracker/eventbus"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability"
	"github.com/Broken-Tee-Society/trip-tracker/internal/observability/attr"
	"github.com/Broken-Tee-Society/trip-tracker/internal/results"
)

// TripService implements the Service interface.
type TripService struct {
	repo     tripdb.Repository
	EventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  observability.OperationMetrics
	tracer   trace.Tracer
}

// NewTripService creates a new TripService.
func NewTripService(
	repo tripdb.Repository,
	bus eventbus.EventBus,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *TripService {
	return &TripService{
		repo:     repo,
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
	s *TripService,
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
