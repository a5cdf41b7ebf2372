// Package operations wraps service operations with tracing, metrics, logging and a
// database transaction.
package operations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/alliance-bot/pkg/apperrors"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/metrics"
	"github.com/Black-And-White-Club/alliance-bot/pkg/utils/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// errRollback aborts a transaction whose operation returned a failure result.
var errRollback = errors.New("operation returned failure result")

// Runner carries the dependencies shared by every operation of one service.
type Runner struct {
	Service string
	Logger  *slog.Logger
	Metrics metrics.OperationMetrics
	Tracer  trace.Tracer
	DB      *bun.DB
}

// NewRunner fills in defaults for nil dependencies.
func NewRunner(service string, logger *slog.Logger, m metrics.OperationMetrics, tracer trace.Tracer, db *bun.DB) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NewNoop()
	}
	return &Runner{
		Service: service,
		Logger:  logger,
		Metrics: m,
		Tracer:  tracer,
		DB:      db,
	}
}

// OperationFunc is the signature of a wrapped operation.
type OperationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// TxFunc is an operation body that runs against a transaction handle.
type TxFunc[S any, F any] func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error)

// WithTelemetry wraps op with a span, metrics, logging and panic recovery.
func WithTelemetry[S any, F any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	op OperationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if r.Tracer != nil {
		ctx, span = r.Tracer.Start(ctx, r.Service+"."+operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	r.Metrics.RecordOperationAttempt(ctx, operationName, r.Service)

	startTime := time.Now()
	defer func() {
		r.Metrics.RecordOperationDuration(ctx, operationName, r.Service, time.Since(startTime))
	}()

	r.Logger.InfoContext(ctx, "Operation triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.String("identifier", identifier),
	)

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, rec)
			r.Logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		r.Logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, "operation failed")
		return result, wrappedErr
	}

	if result.IsFailure() {
		r.Logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
		if failErr, ok := any(*result.Failure).(error); ok {
			if kind, ok := apperrors.KindOf(failErr); ok {
				r.Metrics.RecordDomainFailure(ctx, operationName, r.Service, string(kind))
				span.SetAttributes(attribute.String("failure_kind", string(kind)))
			}
		}
	}

	if result.IsSuccess() {
		r.Logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	r.Metrics.RecordOperationSuccess(ctx, operationName, r.Service)

	return result, nil
}

// RunInTx runs fn inside a transaction. The transaction commits only when fn
// returns a success result; an error or a failure result rolls everything back.
func RunInTx[S any, F any](
	r *Runner,
	ctx context.Context,
	fn TxFunc[S, F],
) (results.OperationResult[S, F], error) {
	if r.DB == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr != nil {
			return txErr
		}
		if result.IsFailure() {
			return errRollback
		}
		return nil
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}

	return result, err
}

// Execute runs fn transactionally under telemetry and unwraps the result: a
// failure result comes back as its error.
func Execute[S any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	fn TxFunc[S, error],
) (S, error) {
	var zero S

	result, err := WithTelemetry(r, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return RunInTx(r, ctx, fn)
	})
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, fmt.Errorf("%s: operation returned no result", operationName)
	}
	return *result.Success, nil
}

// Fail is shorthand for a failure result carrying err.
func Fail[S any](err error) (results.OperationResult[S, error], error) {
	return results.FailureResult[S, error](err), nil
}

// Succeed is shorthand for a success result carrying s.
func Succeed[S any](s S) (results.OperationResult[S, error], error) {
	return results.SuccessResult[S, error](s), nil
}

// Abort is shorthand for an infrastructure error.
func Abort[S any](err error) (results.OperationResult[S, error], error) {
	return results.OperationResult[S, error]{}, err
}

// Classify turns err into a failure result when it carries a domain kind, and
// into an infrastructure error otherwise.
func Classify[S any](err error) (results.OperationResult[S, error], error) {
	if _, ok := apperrors.KindOf(err); ok {
		return Fail[S](err)
	}
	return Abort[S](err)
}
