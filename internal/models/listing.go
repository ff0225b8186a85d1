package models

import (
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// SearchRequest is the suburb/property-type query forwarded to the provider.
type SearchRequest struct {
	Suburb       string `json:"suburb" form:"suburb" validate:"required,max=100"`
	PropertyType string `json:"property_type" form:"property_type" validate:"required,max=40,token"`
}

// FlexString accepts any JSON scalar and keeps its textual form.
// Provider fields documented as text occasionally arrive as numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = FlexString(t)
	case float64:
		*s = FlexString(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*s = FlexString(strconv.FormatBool(t))
	default:
		*s = ""
	}
	return nil
}

// Address as supplied by the provider.
type Address struct {
	Sal    FlexString `json:"sal,omitempty"`
	State  FlexString `json:"state,omitempty"`
	Street FlexString `json:"street,omitempty"`
}

// RawCoordinates keeps latitude/longitude untyped; they may be null or text.
type RawCoordinates struct {
	Latitude  interface{} `json:"latitude"`
	Longitude interface{} `json:"longitude"`
}

// RawAttributes is the provider's free-form attribute block.
type RawAttributes struct {
	Bedrooms     interface{} `json:"bedrooms"`
	Bathrooms    interface{} `json:"bathrooms"`
	GarageSpaces interface{} `json:"garage_spaces"`
	LandSize     interface{} `json:"land_size"`
	BuildingSize interface{} `json:"building_size,omitempty"`
	Description  FlexString  `json:"description,omitempty"`
}

// RawListing is one provider record. Numeric fields stay untyped because the
// provider mixes numbers, sentinel strings ("None", "nan") and unit suffixes.
type RawListing struct {
	AreaName     FlexString      `json:"area_name,omitempty"`
	AreaLevel    FlexString      `json:"area_level,omitempty"`
	Address      *Address        `json:"address,omitempty"`
	Attributes   RawAttributes   `json:"attributes"`
	Coordinates  *RawCoordinates `json:"coordinates,omitempty"`
	GnafPID      FlexString      `json:"gnaf_pid,omitempty"`
	ListingDate  FlexString      `json:"listing_date,omitempty"`
	Price        interface{}     `json:"price"`
	PropertyType FlexString      `json:"property_type,omitempty"`
}

// ListingsResponse is a decoded provider response. Results feed the dashboard;
// Document keeps the whole sanitized provider body, which is what
// GET /api/properties serves.
type ListingsResponse struct {
	Results  []RawListing `json:"results"`
	Document []byte       `json:"-"`
}

// MarshalJSON writes the provider document unchanged when there is one, so
// keys outside RawListing survive the proxy.
func (r ListingsResponse) MarshalJSON() ([]byte, error) {
	if len(r.Document) > 0 {
		return r.Document, nil
	}
	type plain ListingsResponse
	return json.Marshal(plain(r))
}

// Coordinates is a parsed latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NormalizedListing is derived from exactly one RawListing and never persisted.
type NormalizedListing struct {
	Index          int          `json:"index"`
	Price          *float64     `json:"price"`
	LandSize       *float64     `json:"land_size"`
	PricePerArea   *float64     `json:"price_per_area"`
	Bedrooms       *float64     `json:"bedrooms"`
	Bathrooms      *float64     `json:"bathrooms"`
	GarageSpaces   *float64     `json:"garage_spaces"`
	ListingDate    *time.Time   `json:"listing_date"`
	RawListingDate string       `json:"listing_date_raw,omitempty"`
	AreaName       string       `json:"area_name"`
	Suburb         string       `json:"suburb,omitempty"`
	Street         string       `json:"street,omitempty"`
	Description    string       `json:"description"`
	PropertyType   string       `json:"property_type"`
	Coordinates    *Coordinates `json:"coordinates"`
}

// HasPrice reports whether the listing takes part in price aggregates.
func (l NormalizedListing) HasPrice() bool {
	return l.Price != nil && !math.IsNaN(*l.Price) && !math.IsInf(*l.Price, 0)
}
