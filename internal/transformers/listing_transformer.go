package transformers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/metrics"
)

var (
	// landSizeStrip removes everything that is not a digit or a decimal point
	landSizeStrip = regexp.MustCompile(`[^0-9.]`)
	// priceStrip removes currency symbols, thousands separators and spaces
	priceStrip = regexp.MustCompile(`[$,\s]`)

	sentinels = map[string]struct{}{
		"none": {},
		"nan":  {},
		"null": {},
	}

	dateLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"02/01/2006",
	}
)

type listingTransformer struct{}

func NewListingTransformer() ListingTransformer {
	return &listingTransformer{}
}

// NormalizeAll keeps insertion order; each output depends only on its own input.
func (t *listingTransformer) NormalizeAll(raw []models.RawListing) []models.NormalizedListing {
	out := make([]models.NormalizedListing, len(raw))
	for i, r := range raw {
		out[i] = t.Normalize(i, r)
	}
	metrics.ListingsNormalizedTotal.Add(float64(len(raw)))
	return out
}

// Normalize never fails: a malformed field degrades to nil, not to an error.
func (t *listingTransformer) Normalize(index int, raw models.RawListing) models.NormalizedListing {
	price := ParsePrice(raw.Price)
	landSize := ParseLandSize(raw.Attributes.LandSize)

	listing := models.NormalizedListing{
		Index:          index,
		Price:          price,
		LandSize:       landSize,
		PricePerArea:   PricePerArea(price, landSize),
		Bedrooms:       toFloat(raw.Attributes.Bedrooms),
		Bathrooms:      toFloat(raw.Attributes.Bathrooms),
		GarageSpaces:   toFloat(raw.Attributes.GarageSpaces),
		ListingDate:    ParseListingDate(string(raw.ListingDate)),
		RawListingDate: strings.TrimSpace(string(raw.ListingDate)),
		AreaName:       strings.TrimSpace(string(raw.AreaName)),
		Description:    strings.TrimSpace(string(raw.Attributes.Description)),
		PropertyType:   strings.TrimSpace(string(raw.PropertyType)),
		Coordinates:    parseCoordinates(raw.Coordinates),
	}
	if raw.Address != nil {
		listing.Suburb = strings.TrimSpace(string(raw.Address.Sal))
		listing.Street = strings.TrimSpace(string(raw.Address.Street))
	}
	return listing
}

// ParseLandSize accepts a number or free text such as "650 m²" or "1,200 sqm".
// Sentinels, empty strings and unparseable text yield nil, never zero.
func ParseLandSize(v interface{}) *float64 {
	switch t := v.(type) {
	case string:
		if isSentinel(t) {
			return nil
		}
		digits := landSizeStrip.ReplaceAllString(t, "")
		if digits == "" {
			return nil
		}
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return nil
		}
		return finite(f)
	default:
		return toFloat(v)
	}
}

// ParsePrice returns nil unless the value is a finite, strictly positive amount.
func ParsePrice(v interface{}) *float64 {
	var p *float64
	switch t := v.(type) {
	case string:
		if isSentinel(t) {
			return nil
		}
		f, err := strconv.ParseFloat(priceStrip.ReplaceAllString(t, ""), 64)
		if err != nil {
			return nil
		}
		p = finite(f)
	default:
		p = toFloat(v)
	}
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}

// PricePerArea is defined only when both inputs are defined and land size is positive.
func PricePerArea(price, landSize *float64) *float64 {
	if price == nil || landSize == nil || *landSize <= 0 {
		return nil
	}
	v := *price / *landSize
	return finite(v)
}

// ParseListingDate returns nil for anything it cannot read; nil is the
// "unknown date" sentinel used by sorting and display.
func ParseListingDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || isSentinel(s) {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

func parseCoordinates(c *models.RawCoordinates) *models.Coordinates {
	if c == nil {
		return nil
	}
	lat, lng := toFloat(c.Latitude), toFloat(c.Longitude)
	if lat == nil || lng == nil {
		return nil
	}
	return &models.Coordinates{Latitude: *lat, Longitude: *lng}
}

// toFloat passes numeric attributes through; numeric text is accepted too.
func toFloat(v interface{}) *float64 {
	switch t := v.(type) {
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return finite(float64(t))
	case int64:
		return finite(float64(t))
	case string:
		if isSentinel(t) {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		return finite(f)
	default:
		return nil
	}
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func isSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
