// Package listings fetches suburb listings from the external provider and
// turns its loosely formed JSON into models.ListingsResponse.
package listings

import (
	"context"
	"strings"

	"property-dashboard/internal/models"
)

// DefaultPropertyType is used when the query leaves the type blank.
const DefaultPropertyType = "house"

// Source is anything that can answer a suburb/property-type query.
type Source interface {
	FetchListings(ctx context.Context, query models.SearchRequest) (*models.ListingsResponse, error)
}

// prepareQuery trims the query, applies the default type and rejects an empty suburb.
func prepareQuery(query models.SearchRequest) (models.SearchRequest, error) {
	query.Suburb = strings.TrimSpace(query.Suburb)
	query.PropertyType = strings.TrimSpace(query.PropertyType)
	if query.Suburb == "" {
		return query, &ValidationError{Field: "suburb", Message: "suburb parameter is required"}
	}
	if query.PropertyType == "" {
		query.PropertyType = DefaultPropertyType
	}
	return query, nil
}
