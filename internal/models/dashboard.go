package models

// AggregateStatistics is recomputed from the current listing set on every render.
type AggregateStatistics struct {
	Count             int      `json:"count"`
	PricedCount       int      `json:"priced_count"`
	MeanPrice         float64  `json:"mean_price"`
	MedianPrice       float64  `json:"median_price"`
	MinPrice          float64  `json:"min_price"`
	MaxPrice          float64  `json:"max_price"`
	MeanLandSize      *float64 `json:"mean_land_size"`
	LandSizeCount     int      `json:"land_size_count"`
	MeanPricePerArea  *float64 `json:"mean_price_per_area"`
	PricePerAreaCount int      `json:"price_per_area_count"`
}

type HistogramBin struct {
	Index int     `json:"index"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
	Label string  `json:"label"`
}

type Histogram struct {
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
	BinWidth float64        `json:"bin_width"`
	Total    int            `json:"total"`
	Bins     []HistogramBin `json:"bins"`
}

// BedroomGroup is one bar of the bedrooms vs. average price chart.
// Bedrooms is nil for the "Unknown" bucket.
type BedroomGroup struct {
	Label     string   `json:"label"`
	Bedrooms  *float64 `json:"bedrooms"`
	Count     int      `json:"count"`
	MeanPrice float64  `json:"mean_price"`
}

type ScatterPoint struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type TimelinePoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type Timeline struct {
	Points  []TimelinePoint `json:"points"`
	Unknown int             `json:"unknown"`
}

// ChartSeries is the content of one chart slot; exactly one payload field is set.
type ChartSeries struct {
	Slot      string         `json:"slot"`
	Kind      string         `json:"kind"`
	Title     string         `json:"title"`
	Histogram *Histogram     `json:"histogram,omitempty"`
	Groups    []BedroomGroup `json:"groups,omitempty"`
	Points    []ScatterPoint `json:"points,omitempty"`
	Timeline  *Timeline      `json:"timeline,omitempty"`
}

type SortDescriptor struct {
	Field     string `json:"field,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// TableRow carries display strings; missing values render as "Not available".
type TableRow struct {
	Index        int            `json:"index"`
	AreaName     string         `json:"area_name"`
	PropertyType string         `json:"property_type"`
	Price        string         `json:"price"`
	LandSize     string         `json:"land_size"`
	PricePerArea string         `json:"price_per_area"`
	Bedrooms     string         `json:"bedrooms"`
	Bathrooms    string         `json:"bathrooms"`
	GarageSpaces string         `json:"garage_spaces"`
	ListingDate  string         `json:"listing_date"`
	Expanded     bool           `json:"expanded"`
	Detail       *ListingDetail `json:"detail,omitempty"`
}

type Table struct {
	Sort SortDescriptor `json:"sort"`
	Rows []TableRow     `json:"rows"`
}

// ListingDetail is the expandable per-listing view.
type ListingDetail struct {
	Listing     NormalizedListing `json:"listing"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Location    string            `json:"location"`
	ListingDate string            `json:"listing_date"`
}

// DashboardView is everything the presentation layer needs for one render.
type DashboardView struct {
	Status     string                  `json:"status"`
	Generation uint64                  `json:"generation"`
	Query      *SearchRequest          `json:"query,omitempty"`
	Message    string                  `json:"message,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Statistics *AggregateStatistics    `json:"statistics"`
	Charts     map[string]*ChartSeries `json:"charts"`
	Table      Table                   `json:"table"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
