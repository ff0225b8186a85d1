package insights

import (
	"sort"

	"property-dashboard/internal/format"
	"property-dashboard/internal/models"
)

const UnknownLabel = "Unknown"

// BedroomPriceGroups averages price per bedroom count in ascending order, with
// listings lacking a bedroom count collected in a trailing "Unknown" group.
// Listings without a valid price are ignored.
func BedroomPriceGroups(listings []models.NormalizedListing) []models.BedroomGroup {
	type acc struct {
		sum   float64
		count int
	}
	known := make(map[float64]*acc)
	var unknown acc

	for _, l := range listings {
		if !l.HasPrice() {
			continue
		}
		if l.Bedrooms == nil {
			unknown.sum += *l.Price
			unknown.count++
			continue
		}
		a, ok := known[*l.Bedrooms]
		if !ok {
			a = &acc{}
			known[*l.Bedrooms] = a
		}
		a.sum += *l.Price
		a.count++
	}

	keys := make([]float64, 0, len(known))
	for k := range known {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	groups := make([]models.BedroomGroup, 0, len(keys)+1)
	for _, k := range keys {
		bedrooms := k
		a := known[k]
		groups = append(groups, models.BedroomGroup{
			Label:     format.Count(&bedrooms),
			Bedrooms:  &bedrooms,
			Count:     a.count,
			MeanPrice: a.sum / float64(a.count),
		})
	}
	if unknown.count > 0 {
		groups = append(groups, models.BedroomGroup{
			Label:     UnknownLabel,
			Count:     unknown.count,
			MeanPrice: unknown.sum / float64(unknown.count),
		})
	}
	return groups
}

// LandSizePriceSeries is the land size (x) vs. price (y) scatter series.
func LandSizePriceSeries(listings []models.NormalizedListing) []models.ScatterPoint {
	points := make([]models.ScatterPoint, 0, len(listings))
	for _, l := range listings {
		if !l.HasPrice() || l.LandSize == nil {
			continue
		}
		points = append(points, models.ScatterPoint{Index: l.Index, X: *l.LandSize, Y: *l.Price})
	}
	return points
}

// ListingTimeline counts listings per listing month, oldest first.
func ListingTimeline(listings []models.NormalizedListing) models.Timeline {
	counts := make(map[string]int)
	timeline := models.Timeline{Points: []models.TimelinePoint{}}
	for _, l := range listings {
		if l.ListingDate == nil {
			timeline.Unknown++
			continue
		}
		counts[l.ListingDate.Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		timeline.Points = append(timeline.Points, models.TimelinePoint{Month: m, Count: counts[m]})
	}
	return timeline
}
