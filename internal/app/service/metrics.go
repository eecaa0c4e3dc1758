package service

import (
	"context"
	"errors"

	"github.com/mrops-br/saree-catalog-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultFailure  = "failure"
)

// resultOf classifies err for the "result" metric attribute
func resultOf(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, domain.ErrNotFound):
		return resultNotFound
	case errors.Is(err, domain.ErrInvalidID), errors.As(err, &verr):
		return resultInvalid
	default:
		return resultFailure
	}
}

func recordOperation(ctx context.Context, counter metric.Int64Counter, operation string, err error) {
	counter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", resultOf(err)),
		),
	)
}
