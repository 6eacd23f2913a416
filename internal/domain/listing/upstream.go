package listing

import (
	"context"
	"fmt"
	"time"
)

// UpstreamKind classifies a failed call to the prediction service.
type UpstreamKind string

const (
	// UpstreamValidation is a 422 with a structured detail list.
	UpstreamValidation UpstreamKind = "validation"
	// UpstreamStatus is any other non-2xx status.
	UpstreamStatus UpstreamKind = "status"
	// UpstreamUnreachable means no connection could be established.
	UpstreamUnreachable UpstreamKind = "unreachable"
	// UpstreamNetwork covers transport failures after the connection.
	UpstreamNetwork UpstreamKind = "network"
	// UpstreamMalformed is a 2xx whose body could not be decoded.
	UpstreamMalformed UpstreamKind = "malformed"
)

// UpstreamError is returned by PredictionClient implementations.
// Detail is already phrased for display.
type UpstreamError struct {
	Kind       UpstreamKind
	StatusCode int
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("prediction service %s", e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PredictionClient issues the single prediction call.
type PredictionClient interface {
	Predict(ctx context.Context, apiURL string, payload APIPayload) (PredictionResponse, error)
}

// EnumClient fetches an enumeration published by the prediction service.
type EnumClient interface {
	Enums(ctx context.Context, baseURL string, kind EnumKind) ([]string, error)
}

// EnumStore caches enumeration lists.
type EnumStore interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Save(ctx context.Context, key string, values []string, ttl time.Duration) error
}
