package insights

import (
	"math"

	"github.com/montanaflynn/stats"

	"property-dashboard/internal/format"
	"property-dashboard/internal/models"
)

const (
	PriceBins        = 8
	PricePerAreaBins = 6
)

// Histogram buckets values into binCount equal-width bins spanning [min, max].
// Bin i holds min+i·w <= v < min+(i+1)·w; the last bin also holds max.
// When every value is equal the width is zero and all values land in bin 0.
func Histogram(values []float64, binCount int, money bool) models.Histogram {
	h := models.Histogram{Bins: []models.HistogramBin{}}
	if len(values) == 0 || binCount <= 0 {
		return h
	}

	data := stats.Float64Data(values)
	min, _ := data.Min()
	max, _ := data.Max()
	width := (max - min) / float64(binCount)

	h.Min, h.Max, h.BinWidth, h.Total = min, max, width, len(values)
	h.Bins = make([]models.HistogramBin, binCount)
	for i := range h.Bins {
		lower := min + float64(i)*width
		upper := min + float64(i+1)*width
		if i == binCount-1 {
			upper = max
		}
		h.Bins[i] = models.HistogramBin{
			Index: i,
			Lower: lower,
			Upper: upper,
			Label: format.Range(lower, upper, money),
		}
	}

	for _, v := range values {
		h.Bins[placeInBins(h.Bins, v, min, width)].Count++
	}
	return h
}

// placeInBins starts from the arithmetic bin index and corrects it against the
// reported lower bounds, so floating-point rounding in (v-min)/width never puts
// a value in a bin whose range does not contain it.
func placeInBins(bins []models.HistogramBin, v, min, width float64) int {
	idx := binIndex(v, min, width, len(bins))
	if width == 0 {
		return idx
	}
	for idx+1 < len(bins) && v >= bins[idx+1].Lower {
		idx++
	}
	for idx > 0 && v < bins[idx].Lower {
		idx--
	}
	return idx
}

func binIndex(v, min, width float64, binCount int) int {
	if width == 0 {
		return 0
	}
	idx := int(math.Floor((v - min) / width))
	if idx < 0 {
		return 0
	}
	if idx >= binCount {
		return binCount - 1
	}
	return idx
}

// PriceDistribution is the 8-bin histogram of valid prices.
func PriceDistribution(listings []models.NormalizedListing) models.Histogram {
	return Histogram(Prices(listings), PriceBins, true)
}

// PricePerAreaDistribution is the 6-bin histogram of defined price-per-area values.
func PricePerAreaDistribution(listings []models.NormalizedListing) models.Histogram {
	return Histogram(PricesPerArea(listings), PricePerAreaBins, true)
}
