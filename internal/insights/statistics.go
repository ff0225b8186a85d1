// Package insights derives market statistics and chart series from
// normalized listings. Every function is pure; callers recompute on each render.
package insights

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"property-dashboard/internal/models"
)

// ErrNoResults short-circuits statistics for an empty result set, or one where
// no listing carries a usable price.
var ErrNoResults = errors.New("no results")

// ComputeStatistics aggregates over the current listing set. Means skip
// listings that lack the value rather than counting them as zero.
func ComputeStatistics(listings []models.NormalizedListing) (*models.AggregateStatistics, error) {
	if len(listings) == 0 {
		return nil, ErrNoResults
	}

	prices := Prices(listings)
	if len(prices) == 0 {
		return nil, ErrNoResults
	}

	result := &models.AggregateStatistics{
		Count:       len(listings),
		PricedCount: len(prices),
	}

	var err error
	if result.MeanPrice, err = stats.Mean(prices); err != nil {
		return nil, fmt.Errorf("mean price: %w", err)
	}
	if result.MedianPrice, err = stats.Median(prices); err != nil {
		return nil, fmt.Errorf("median price: %w", err)
	}
	if result.MinPrice, err = stats.Min(prices); err != nil {
		return nil, fmt.Errorf("min price: %w", err)
	}
	if result.MaxPrice, err = stats.Max(prices); err != nil {
		return nil, fmt.Errorf("max price: %w", err)
	}

	landSizes := collect(listings, func(l models.NormalizedListing) *float64 { return l.LandSize })
	result.LandSizeCount = len(landSizes)
	if mean, err := stats.Mean(landSizes); err == nil {
		result.MeanLandSize = &mean
	}

	perArea := collect(listings, func(l models.NormalizedListing) *float64 { return l.PricePerArea })
	result.PricePerAreaCount = len(perArea)
	if mean, err := stats.Mean(perArea); err == nil {
		result.MeanPricePerArea = &mean
	}

	return result, nil
}

// Prices returns the valid prices in listing order.
func Prices(listings []models.NormalizedListing) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(listings))
	for _, l := range listings {
		if l.HasPrice() {
			out = append(out, *l.Price)
		}
	}
	return out
}

// PricesPerArea returns the defined price-per-area values in listing order.
func PricesPerArea(listings []models.NormalizedListing) stats.Float64Data {
	return collect(listings, func(l models.NormalizedListing) *float64 { return l.PricePerArea })
}

func collect(listings []models.NormalizedListing, field func(models.NormalizedListing) *float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(listings))
	for _, l := range listings {
		if v := field(l); v != nil {
			out = append(out, *v)
		}
	}
	return out
}
