package listings

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"property-dashboard/internal/models"
)

type stubSource struct {
	calls int
	err   error
}

func (s *stubSource) FetchListings(ctx context.Context, query models.SearchRequest) (*models.ListingsResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.ListingsResponse{Results: []models.RawListing{}}, nil
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubSource{err: &UpstreamError{StatusCode: http.StatusInternalServerError, Message: "boom"}}
	breaker := NewBreakerSource(stub, BreakerSettings{Name: "test-open", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 2})
	query := models.SearchRequest{Suburb: "Belmont North"}

	for i := 0; i < 2; i++ {
		if _, err := breaker.FetchListings(context.Background(), query); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if breaker.State() != gobreaker.StateOpen {
		t.Fatalf("State: got %v, want open", breaker.State())
	}

	_, err := breaker.FetchListings(context.Background(), query)
	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("got %v, want 503 UpstreamError", err)
	}
	if stub.calls != 2 {
		t.Errorf("calls: got %d, want 2", stub.calls)
	}
}

func TestBreakerIgnoresClientSideErrors(t *testing.T) {
	stub := &stubSource{err: &MalformedResponseError{Err: errors.New("bad json")}}
	breaker := NewBreakerSource(stub, BreakerSettings{Name: "test-client", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 1})
	query := models.SearchRequest{Suburb: "Belmont North"}

	for i := 0; i < 3; i++ {
		_, _ = breaker.FetchListings(context.Background(), query)
	}
	if breaker.State() != gobreaker.StateClosed {
		t.Errorf("State: got %v, want closed", breaker.State())
	}
	if stub.calls != 3 {
		t.Errorf("calls: got %d, want 3", stub.calls)
	}
}

func TestBreakerPassesResults(t *testing.T) {
	stub := &stubSource{}
	breaker := NewBreakerSource(stub, BreakerSettings{})
	resp, err := breaker.FetchListings(context.Background(), models.SearchRequest{Suburb: "Belmont North"})
	if err != nil {
		t.Fatalf("FetchListings: %v", err)
	}
	if resp == nil || resp.Results == nil {
		t.Error("expected a non-nil result set")
	}
}
