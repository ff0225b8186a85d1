package dashboard

import "property-dashboard/internal/models"

const (
	SlotPriceDistribution        = "price_distribution"
	SlotPricePerAreaDistribution = "price_per_area_distribution"
	SlotBedroomsVsPrice          = "bedrooms_vs_price"
	SlotLandSizeVsPrice          = "land_size_vs_price"
	SlotListingTimeline          = "listing_timeline"
)

// Slots lists every chart slot in render order.
var Slots = []string{
	SlotPriceDistribution,
	SlotPricePerAreaDistribution,
	SlotBedroomsVsPrice,
	SlotLandSizeVsPrice,
	SlotListingTimeline,
}

// chartSurface holds at most one active series per slot.
type chartSurface struct {
	active   map[string]*models.ChartSeries
	released int
}

func newChartSurface() *chartSurface {
	return &chartSurface{active: make(map[string]*models.ChartSeries, len(Slots))}
}

// install releases whatever the slot held before taking the new series.
func (s *chartSurface) install(series *models.ChartSeries) {
	s.release(series.Slot)
	s.active[series.Slot] = series
}

func (s *chartSurface) release(slot string) {
	old, ok := s.active[slot]
	if !ok {
		return
	}
	old.Histogram, old.Groups, old.Points, old.Timeline = nil, nil, nil, nil
	delete(s.active, slot)
	s.released++
}

func (s *chartSurface) releaseAll() {
	for slot := range s.active {
		s.release(slot)
	}
}

// snapshot copies the active series so callers never share slot storage.
func (s *chartSurface) snapshot() map[string]*models.ChartSeries {
	out := make(map[string]*models.ChartSeries, len(s.active))
	for slot, series := range s.active {
		cp := *series
		out[slot] = &cp
	}
	return out
}
