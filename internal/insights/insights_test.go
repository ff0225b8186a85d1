package insights

import (
	"errors"
	"math"
	"testing"
	"time"

	"property-dashboard/internal/models"
)

func ptr(f float64) *float64 { return &f }

func priced(prices ...float64) []models.NormalizedListing {
	out := make([]models.NormalizedListing, len(prices))
	for i, p := range prices {
		out[i] = models.NormalizedListing{Index: i, Price: ptr(p)}
	}
	return out
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		mean   float64
		median float64
		min    float64
		max    float64
	}{
		{"odd count", []float64{599000, 650000, 1800000}, 1016333.3333333334, 650000, 599000, 1800000},
		{"even count", []float64{599000, 650000}, 624500, 624500, 599000, 650000},
		{"four listings", []float64{599000, 1800000, 1100000, 950000}, 1112250, 1025000, 599000, 1800000},
		{"single", []float64{700000}, 700000, 700000, 700000, 700000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStatistics(priced(tt.prices...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Count != len(tt.prices) {
				t.Errorf("Count: got %d, want %d", got.Count, len(tt.prices))
			}
			if math.Abs(got.MeanPrice-tt.mean) > 1e-6 {
				t.Errorf("MeanPrice: got %v, want %v", got.MeanPrice, tt.mean)
			}
			if got.MedianPrice != tt.median {
				t.Errorf("MedianPrice: got %v, want %v", got.MedianPrice, tt.median)
			}
			if got.MinPrice != tt.min || got.MaxPrice != tt.max {
				t.Errorf("range: got %v-%v, want %v-%v", got.MinPrice, got.MaxPrice, tt.min, tt.max)
			}
		})
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	if _, err := ComputeStatistics(nil); !errors.Is(err, ErrNoResults) {
		t.Errorf("nil listings: got %v, want ErrNoResults", err)
	}
	unpriced := []models.NormalizedListing{{Index: 0}, {Index: 1, LandSize: ptr(500)}}
	if _, err := ComputeStatistics(unpriced); !errors.Is(err, ErrNoResults) {
		t.Errorf("unpriced listings: got %v, want ErrNoResults", err)
	}
}

func TestComputeStatisticsSkipsMissingValues(t *testing.T) {
	listings := []models.NormalizedListing{
		{Index: 0, Price: ptr(1000000), LandSize: ptr(500), PricePerArea: ptr(2000)},
		{Index: 1, Price: ptr(600000)},
		{Index: 2, LandSize: ptr(700)},
	}
	got, err := ComputeStatistics(listings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Count != 3 || got.PricedCount != 2 {
		t.Errorf("counts: got %d/%d, want 3/2", got.Count, got.PricedCount)
	}
	if got.MeanPrice != 800000 {
		t.Errorf("MeanPrice: got %v, want 800000", got.MeanPrice)
	}
	if got.MeanLandSize == nil || *got.MeanLandSize != 600 || got.LandSizeCount != 2 {
		t.Errorf("MeanLandSize: got %v (n=%d), want 600 (n=2)", got.MeanLandSize, got.LandSizeCount)
	}
	if got.MeanPricePerArea == nil || *got.MeanPricePerArea != 2000 {
		t.Errorf("MeanPricePerArea: got %v, want 2000", got.MeanPricePerArea)
	}

	noLand, _ := ComputeStatistics(priced(500000))
	if noLand.MeanLandSize != nil || noLand.MeanPricePerArea != nil {
		t.Errorf("expected nil land means, got %v / %v", noLand.MeanLandSize, noLand.MeanPricePerArea)
	}
}

func TestHistogram(t *testing.T) {
	values := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80}
	h := Histogram(values, 8, false)

	if len(h.Bins) != 8 {
		t.Fatalf("bins: got %d, want 8", len(h.Bins))
	}
	if h.BinWidth != 10 {
		t.Errorf("BinWidth: got %v, want 10", h.BinWidth)
	}
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	if total != len(values) || h.Total != len(values) {
		t.Errorf("total: got %d (h.Total=%d), want %d", total, h.Total, len(values))
	}
	// the maximum falls into the last bin rather than a ninth one
	if h.Bins[7].Count != 2 {
		t.Errorf("last bin: got %d, want 2", h.Bins[7].Count)
	}
	if h.Bins[7].Upper != 80 {
		t.Errorf("last bin upper: got %v, want 80", h.Bins[7].Upper)
	}
	if h.Bins[0].Label != "0 - 10" {
		t.Errorf("label: got %q, want %q", h.Bins[0].Label, "0 - 10")
	}
}

func TestHistogramEdgeCases(t *testing.T) {
	if h := Histogram(nil, 8, true); len(h.Bins) != 0 || h.Total != 0 {
		t.Errorf("empty: got %+v, want no bins", h)
	}

	h := Histogram([]float64{500000, 500000, 500000}, 6, true)
	if len(h.Bins) != 6 {
		t.Fatalf("bins: got %d, want 6", len(h.Bins))
	}
	if h.Bins[0].Count != 3 {
		t.Errorf("equal values: bin 0 got %d, want 3", h.Bins[0].Count)
	}
	for _, b := range h.Bins[1:] {
		if b.Count != 0 {
			t.Errorf("equal values: bin %d got %d, want 0", b.Index, b.Count)
		}
	}
}

func TestHistogramValuesOnBinEdges(t *testing.T) {
	want := []int{1, 1, 1, 1, 1, 1, 2}
	for n := 1; n <= 50; n++ {
		min := 0.1 * float64(n)
		max := min + 0.7
		width := (max - min) / 7
		values := make([]float64, 0, 8)
		for i := 0; i < 7; i++ {
			values = append(values, min+float64(i)*width)
		}
		values = append(values, max)

		h := Histogram(values, 7, false)
		for i, b := range h.Bins {
			if b.Count != want[i] {
				t.Errorf("min=%v bin %d: got %d, want %d", min, i, b.Count, want[i])
			}
			if b.Lower != values[i] {
				t.Errorf("min=%v bin %d: Lower %v, want %v", min, i, b.Lower, values[i])
			}
		}
	}
}

func TestHistogramCountsMatchBounds(t *testing.T) {
	values := []float64{0.3, 0.7, 1.1, 1.3, 2.9, 3.3, 4.1, 5.7, 6.1, 7.3, 9.9, 10}
	h := Histogram(values, 9, false)
	for _, v := range values {
		for i, b := range h.Bins {
			last := i == len(h.Bins)-1
			inside := v >= b.Lower && (v < b.Upper || (last && v <= b.Upper))
			if inside && b.Count == 0 {
				t.Errorf("%v falls in bin %d [%v, %v) but the bin is empty", v, i, b.Lower, b.Upper)
			}
		}
	}
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	if total != len(values) {
		t.Errorf("total: got %d, want %d", total, len(values))
	}
}

func TestPriceDistribution(t *testing.T) {
	listings := priced(599000, 650000, 720000, 810000, 950000, 1100000, 1350000, 1800000)
	listings = append(listings, models.NormalizedListing{Index: 8})

	h := PriceDistribution(listings)
	if len(h.Bins) != PriceBins {
		t.Fatalf("bins: got %d, want %d", len(h.Bins), PriceBins)
	}
	if h.Total != 8 {
		t.Errorf("Total: got %d, want 8", h.Total)
	}
	if h.Min != 599000 || h.Max != 1800000 {
		t.Errorf("range: got %v-%v", h.Min, h.Max)
	}
	if h.Bins[0].Label != "$599,000 - $749,125" {
		t.Errorf("label: got %q", h.Bins[0].Label)
	}
}

func TestPricePerAreaDistribution(t *testing.T) {
	listings := []models.NormalizedListing{
		{Index: 0, PricePerArea: ptr(1000)},
		{Index: 1, PricePerArea: ptr(2200)},
		{Index: 2},
	}
	h := PricePerAreaDistribution(listings)
	if len(h.Bins) != PricePerAreaBins || h.Total != 2 {
		t.Errorf("got %d bins, total %d", len(h.Bins), h.Total)
	}
}

func TestBedroomPriceGroups(t *testing.T) {
	listings := []models.NormalizedListing{
		{Index: 0, Price: ptr(900000), Bedrooms: ptr(4)},
		{Index: 1, Price: ptr(600000), Bedrooms: ptr(2)},
		{Index: 2, Price: ptr(1100000), Bedrooms: ptr(4)},
		{Index: 3, Price: ptr(700000)},
		{Index: 4, Bedrooms: ptr(3)},
	}
	groups := BedroomPriceGroups(listings)

	want := []struct {
		label string
		count int
		mean  float64
	}{
		{"2", 1, 600000},
		{"4", 2, 1000000},
		{UnknownLabel, 1, 700000},
	}
	if len(groups) != len(want) {
		t.Fatalf("groups: got %d, want %d (%+v)", len(groups), len(want), groups)
	}
	for i, w := range want {
		g := groups[i]
		if g.Label != w.label || g.Count != w.count || g.MeanPrice != w.mean {
			t.Errorf("group %d: got %s/%d/%v, want %s/%d/%v", i, g.Label, g.Count, g.MeanPrice, w.label, w.count, w.mean)
		}
	}
	if groups[2].Bedrooms != nil {
		t.Errorf("unknown group Bedrooms: got %v, want nil", *groups[2].Bedrooms)
	}
}

func TestLandSizePriceSeries(t *testing.T) {
	listings := []models.NormalizedListing{
		{Index: 0, Price: ptr(900000), LandSize: ptr(450)},
		{Index: 1, Price: ptr(600000)},
		{Index: 2, LandSize: ptr(700)},
		{Index: 3, Price: ptr(1200000), LandSize: ptr(800)},
	}
	points := LandSizePriceSeries(listings)
	if len(points) != 2 {
		t.Fatalf("points: got %d, want 2", len(points))
	}
	if points[1].Index != 3 || points[1].X != 800 || points[1].Y != 1200000 {
		t.Errorf("point: got %+v", points[1])
	}
}

func TestListingTimeline(t *testing.T) {
	date := func(y int, m time.Month, d int) *time.Time {
		ts := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}
	listings := []models.NormalizedListing{
		{Index: 0, ListingDate: date(2025, 8, 19)},
		{Index: 1, ListingDate: date(2025, 6, 2)},
		{Index: 2, ListingDate: date(2025, 8, 1)},
		{Index: 3},
	}
	tl := ListingTimeline(listings)
	if tl.Unknown != 1 {
		t.Errorf("Unknown: got %d, want 1", tl.Unknown)
	}
	want := []models.TimelinePoint{{Month: "2025-06", Count: 1}, {Month: "2025-08", Count: 2}}
	if len(tl.Points) != len(want) {
		t.Fatalf("points: got %+v, want %+v", tl.Points, want)
	}
	for i := range want {
		if tl.Points[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, tl.Points[i], want[i])
		}
	}
}
