package listings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"property-dashboard/internal/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClientFetchListings(t *testing.T) {
	srv, hits := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization: got %q, want Bearer secret", got)
		}
		if got := r.URL.Query().Get("suburb"); got != "Belmont North" {
			t.Errorf("suburb: got %q", got)
		}
		if got := r.URL.Query().Get("property_type"); got != "house" {
			t.Errorf("property_type: got %q, want house", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"price":599000,"attributes":{"land_size":NaN}},{"price":NaN}]}`))
	})

	client := NewClient(srv.URL, "secret", time.Second)
	resp, err := client.FetchListings(context.Background(), models.SearchRequest{Suburb: "  Belmont North "})
	if err != nil {
		t.Fatalf("FetchListings: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("results: got %d, want 2", len(resp.Results))
	}
	if resp.Results[1].Price != nil {
		t.Errorf("price: got %v, want nil", resp.Results[1].Price)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Errorf("upstream hits: got %d, want 1", atomic.LoadInt32(hits))
	}
}

func TestClientEmptySuburbSkipsNetwork(t *testing.T) {
	srv, hits := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	client := NewClient(srv.URL, "secret", time.Second)
	_, err := client.FetchListings(context.Background(), models.SearchRequest{Suburb: "   ", PropertyType: "unit"})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("upstream hits: got %d, want 0", atomic.LoadInt32(hits))
	}
}

func TestClientUpstreamStatus(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"bad token"}`))
	})

	client := NewClient(srv.URL, "wrong", time.Second)
	_, err := client.FetchListings(context.Background(), models.SearchRequest{Suburb: "Belmont North", PropertyType: "house"})

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("got %v, want UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode: got %d, want 401", upstreamErr.StatusCode)
	}
	if upstreamErr.Details != `{"detail":"bad token"}` {
		t.Errorf("Details: got %q", upstreamErr.Details)
	}
	if !IsClientSide(err) {
		t.Error("IsClientSide: got false for a 4xx response")
	}
}

func TestClientMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	client := NewClient(srv.URL, "secret", time.Second)
	_, err := client.FetchListings(context.Background(), models.SearchRequest{Suburb: "Belmont North"})

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedResponseError", err)
	}
}

func TestClientTimeout(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	client := NewClient(srv.URL, "secret", 20*time.Millisecond)
	_, err := client.FetchListings(context.Background(), models.SearchRequest{Suburb: "Belmont North"})

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("got %v, want UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("StatusCode: got %d, want 504", upstreamErr.StatusCode)
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, "secret", time.Second)
	_, err := client.FetchListings(context.Background(), models.SearchRequest{Suburb: "Belmont North"})

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("got %v, want UpstreamError", err)
	}
	if upstreamErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode: got %d, want 502", upstreamErr.StatusCode)
	}
}
