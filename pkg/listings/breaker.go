package listings

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/logger"
	"property-dashboard/pkg/metrics"
)

// BreakerSettings configures BreakerSource.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// BreakerSource stops calling a failing provider for a cool-down period.
// Validation errors, malformed bodies and provider 4xx responses are treated
// as successful calls for the purpose of tripping.
type BreakerSource struct {
	next Source
	cb   *gobreaker.CircuitBreaker[*models.ListingsResponse]
	name string
}

// NewBreakerSource wraps next with a circuit breaker.
func NewBreakerSource(next Source, settings BreakerSettings) *BreakerSource {
	name := settings.Name
	if name == "" {
		name = "listings-api"
	}
	threshold := settings.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.ListingsResponse](gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.GlobalLogger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsClientSide(err) || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerSource{next: next, cb: cb, name: name}
}

func (b *BreakerSource) FetchListings(ctx context.Context, query models.SearchRequest) (*models.ListingsResponse, error) {
	result, err := b.cb.Execute(func() (*models.ListingsResponse, error) {
		return b.next.FetchListings(ctx, query)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.UpstreamRequestsTotal.WithLabelValues(b.name, "rejected").Inc()
		return nil, &UpstreamError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "listings provider temporarily unavailable",
			Err:        err,
		}
	}
	return result, err
}

// State exposes the breaker state for health reporting.
func (b *BreakerSource) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
