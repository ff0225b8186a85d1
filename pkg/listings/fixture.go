package listings

import (
	"context"
	"fmt"
	"os"
	"time"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/logger"
	"property-dashboard/pkg/metrics"
)

// FixtureSource serves a provider-shaped JSON document from disk, for offline
// runs and demos. The document goes through the same sanitize/decode path as
// live responses; the query only has to be valid.
type FixtureSource struct {
	path string
}

// NewFixtureSource creates a FixtureSource reading path on every call.
func NewFixtureSource(path string) *FixtureSource {
	return &FixtureSource{path: path}
}

func (f *FixtureSource) FetchListings(ctx context.Context, query models.SearchRequest) (*models.ListingsResponse, error) {
	query, err := prepareQuery(query)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := os.ReadFile(f.path)
	if err != nil {
		metrics.RecordUpstream("fixture", "read_error", start)
		logger.GlobalLogger.Errorf("Failed to read listings fixture: path=%s, error=%v", f.path, err)
		return nil, fmt.Errorf("failed to read listings fixture %s: %w", f.path, err)
	}

	result, err := Decode(data)
	if err != nil {
		metrics.RecordUpstream("fixture", "malformed", start)
		return nil, err
	}

	metrics.RecordUpstream("fixture", "success", start)
	logger.GlobalLogger.Debugf("Served %d fixture properties for suburb: %s, type: %s", len(result.Results), query.Suburb, query.PropertyType)
	return result, nil
}
