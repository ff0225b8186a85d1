package services

import (
	"context"
	"fmt"

	"property-dashboard/internal/models"
	"property-dashboard/internal/validators"
	"property-dashboard/pkg/listings"
	"property-dashboard/pkg/logger"
)

// ListingService validates a search and forwards it to the listings source.
type ListingService struct {
	source    listings.Source
	validator validators.SearchValidator
}

func NewListingService(source listings.Source, validator validators.SearchValidator) *ListingService {
	return &ListingService{
		source:    source,
		validator: validator,
	}
}

// Search returns the sanitized provider response. req is normalized in place.
func (s *ListingService) Search(ctx context.Context, req *models.SearchRequest) (*models.ListingsResponse, error) {
	if err := s.validator.ValidateSearch(req); err != nil {
		logger.GlobalLogger.Printf("Invalid search: suburb=%q, property_type=%q, error=%v", req.Suburb, req.PropertyType, err)
		return nil, err
	}

	resp, err := s.source.FetchListings(ctx, *req)
	if err != nil {
		return nil, fmt.Errorf("fetch listings for %s: %w", req.Suburb, err)
	}

	logger.GlobalLogger.Printf("Search completed: suburb=%s, property_type=%s, results=%d", req.Suburb, req.PropertyType, len(resp.Results))
	return resp, nil
}
