// Package dashboard holds per-session dashboard state: the current listing
// set, its sort order, expanded detail rows and chart slots.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"property-dashboard/internal/format"
	"property-dashboard/internal/insights"
	"property-dashboard/internal/models"
	"property-dashboard/pkg/metrics"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

const (
	MessageIdle    = "Enter a suburb to search for properties"
	MessageLoading = "Loading properties..."
	MessageEmpty   = "No properties found"
)

var (
	// ErrStaleResult is returned when a search completes after a newer one was issued.
	ErrStaleResult     = errors.New("search superseded by a newer search")
	ErrListingNotFound = errors.New("listing not found")
)

// View is one dashboard session. All methods are safe for concurrent use.
type View struct {
	mu sync.Mutex

	generation uint64
	status     Status
	query      *models.SearchRequest
	message    string

	listings []models.NormalizedListing
	order    []int
	sort     SortState
	expanded map[int]bool
	charts   *chartSurface
}

func NewView() *View {
	return &View{
		status:   StatusIdle,
		expanded: make(map[int]bool),
		charts:   newChartSurface(),
	}
}

// BeginSearch issues a new generation token and enters the loading state.
// Only the latest token may complete the view.
func (v *View) BeginSearch(query models.SearchRequest) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	v.status = StatusLoading
	v.query = &query
	v.message = ""
	return v.generation
}

// Complete replaces the listing set with a search result and resets sort and
// expansion state.
func (v *View) Complete(token uint64, items []models.NormalizedListing) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if token != v.generation {
		metrics.StaleSearchesTotal.Inc()
		return ErrStaleResult
	}

	v.listings = items
	v.sort = SortState{}
	v.order = DisplayOrder(items, v.sort)
	v.expanded = make(map[int]bool)
	v.message = ""
	if len(items) == 0 {
		v.status = StatusEmpty
	} else {
		v.status = StatusReady
	}
	return nil
}

// Fail records a failed search. message is shown to the user as-is.
func (v *View) Fail(token uint64, message string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if token != v.generation {
		metrics.StaleSearchesTotal.Inc()
		return ErrStaleResult
	}

	v.listings = nil
	v.order = nil
	v.sort = SortState{}
	v.expanded = make(map[int]bool)
	v.status = StatusError
	v.message = message
	return nil
}

// Sort applies a column selection and recomputes the display order.
func (v *View) Sort(field SortField) SortState {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sort.Select(field)
	v.order = DisplayOrder(v.listings, v.sort)
	return v.sort
}

// SortBy sets the sort state directly.
func (v *View) SortBy(field SortField, direction Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sort = SortState{Field: field, Direction: direction}
	v.order = DisplayOrder(v.listings, v.sort)
}

// ToggleDetail flips the expanded state of the listing at insertion index.
func (v *View) ToggleDetail(index int) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.listings) {
		return false, fmt.Errorf("%w: index %d", ErrListingNotFound, index)
	}
	v.expanded[index] = !v.expanded[index]
	if !v.expanded[index] {
		delete(v.expanded, index)
	}
	return v.expanded[index], nil
}

func (v *View) Detail(index int) (*models.ListingDetail, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if index < 0 || index >= len(v.listings) {
		return nil, fmt.Errorf("%w: index %d", ErrListingNotFound, index)
	}
	return buildDetail(v.listings[index]), nil
}

func (v *View) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *View) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generation
}

// Render recomputes statistics and chart series from the current listing set.
func (v *View) Render() models.DashboardView {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := models.DashboardView{
		Status:     string(v.status),
		Generation: v.generation,
		Query:      v.query,
		Table:      models.Table{Sort: v.sort.Descriptor(), Rows: []models.TableRow{}},
	}

	switch v.status {
	case StatusIdle:
		out.Message = MessageIdle
	case StatusLoading:
		out.Message = MessageLoading
	case StatusEmpty:
		out.Message = MessageEmpty
	case StatusError:
		out.Error = v.message
	}

	if v.status != StatusReady {
		v.charts.releaseAll()
		out.Charts = v.charts.snapshot()
		return out
	}

	// A listing set with no usable price still renders its table.
	if stats, err := insights.ComputeStatistics(v.listings); err == nil {
		out.Statistics = stats
	}

	for _, series := range buildCharts(v.listings) {
		v.charts.install(series)
	}
	out.Charts = v.charts.snapshot()

	out.Table.Rows = make([]models.TableRow, 0, len(v.order))
	for _, i := range v.order {
		l := v.listings[i]
		row := buildRow(l)
		if v.expanded[i] {
			row.Expanded = true
			row.Detail = buildDetail(l)
		}
		out.Table.Rows = append(out.Table.Rows, row)
	}
	return out
}

func buildCharts(items []models.NormalizedListing) []*models.ChartSeries {
	price := insights.PriceDistribution(items)
	perArea := insights.PricePerAreaDistribution(items)
	timeline := insights.ListingTimeline(items)

	return []*models.ChartSeries{
		{Slot: SlotPriceDistribution, Kind: "histogram", Title: "Price Distribution", Histogram: &price},
		{Slot: SlotPricePerAreaDistribution, Kind: "histogram", Title: "Price per m² Distribution", Histogram: &perArea},
		{Slot: SlotBedroomsVsPrice, Kind: "bar", Title: "Bedrooms vs Average Price", Groups: insights.BedroomPriceGroups(items)},
		{Slot: SlotLandSizeVsPrice, Kind: "scatter", Title: "Land Size vs Price", Points: insights.LandSizePriceSeries(items)},
		{Slot: SlotListingTimeline, Kind: "line", Title: "Listings by Month", Timeline: &timeline},
	}
}

func buildRow(l models.NormalizedListing) models.TableRow {
	return models.TableRow{
		Index:        l.Index,
		AreaName:     format.Text(l.AreaName),
		PropertyType: format.Text(l.PropertyType),
		Price:        format.CurrencyPtr(l.Price),
		LandSize:     format.Area(l.LandSize),
		PricePerArea: format.PerArea(l.PricePerArea),
		Bedrooms:     format.Count(l.Bedrooms),
		Bathrooms:    format.Count(l.Bathrooms),
		GarageSpaces: format.Count(l.GarageSpaces),
		ListingDate:  format.Date(l.ListingDate),
	}
}

func buildDetail(l models.NormalizedListing) *models.ListingDetail {
	detail := &models.ListingDetail{
		Listing:     l,
		Description: format.Text(l.Description),
		Address:     format.Text(address(l)),
		Location:    format.NotAvailable,
		ListingDate: format.Date(l.ListingDate),
	}
	if l.Coordinates != nil {
		detail.Location = fmt.Sprintf("%.5f, %.5f", l.Coordinates.Latitude, l.Coordinates.Longitude)
	}
	return detail
}

func address(l models.NormalizedListing) string {
	var parts []string
	for _, p := range []string{l.Street, l.Suburb} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return l.AreaName
	}
	return strings.Join(parts, ", ")
}
