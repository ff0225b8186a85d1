package dashboard

import (
	"cmp"
	"sort"
	"strings"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/listings"
)

type SortField string

const (
	FieldPrice        SortField = "price"
	FieldLandSize     SortField = "land_size"
	FieldPricePerArea SortField = "price_per_area"
	FieldBedrooms     SortField = "bedrooms"
	FieldBathrooms    SortField = "bathrooms"
	FieldGarageSpaces SortField = "garage_spaces"
	FieldListingDate  SortField = "listing_date"
	FieldAreaName     SortField = "area_name"
	FieldPropertyType SortField = "property_type"
	FieldDescription  SortField = "description"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Comparator orders two listings by one field. Unknown, when set, marks
// listings that always sort after every known value regardless of direction.
type Comparator struct {
	Compare func(a, b *models.NormalizedListing) int
	Unknown func(l *models.NormalizedListing) bool
}

var comparators = map[SortField]Comparator{
	FieldPrice:        numeric(func(l *models.NormalizedListing) *float64 { return l.Price }),
	FieldLandSize:     numeric(func(l *models.NormalizedListing) *float64 { return l.LandSize }),
	FieldPricePerArea: numeric(func(l *models.NormalizedListing) *float64 { return l.PricePerArea }),
	FieldBedrooms:     numeric(func(l *models.NormalizedListing) *float64 { return l.Bedrooms }),
	FieldBathrooms:    numeric(func(l *models.NormalizedListing) *float64 { return l.Bathrooms }),
	FieldGarageSpaces: numeric(func(l *models.NormalizedListing) *float64 { return l.GarageSpaces }),
	FieldListingDate: {
		Compare: func(a, b *models.NormalizedListing) int {
			return a.ListingDate.Compare(*b.ListingDate)
		},
		Unknown: func(l *models.NormalizedListing) bool { return l.ListingDate == nil },
	},
	FieldAreaName:     text(func(l *models.NormalizedListing) string { return l.AreaName }),
	FieldPropertyType: text(func(l *models.NormalizedListing) string { return l.PropertyType }),
	FieldDescription:  text(func(l *models.NormalizedListing) string { return l.Description }),
}

// missing numeric values compare as 0
func numeric(field func(*models.NormalizedListing) *float64) Comparator {
	value := func(l *models.NormalizedListing) float64 {
		if v := field(l); v != nil {
			return *v
		}
		return 0
	}
	return Comparator{
		Compare: func(a, b *models.NormalizedListing) int {
			return cmp.Compare(value(a), value(b))
		},
	}
}

func text(field func(*models.NormalizedListing) string) Comparator {
	return Comparator{
		Compare: func(a, b *models.NormalizedListing) int {
			return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
		},
	}
}

// ParseSortField resolves a field name against the comparator registry.
func ParseSortField(name string) (SortField, error) {
	field := SortField(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := comparators[field]; !ok {
		return "", &listings.ValidationError{Field: "sort", Message: "unknown sort field " + name}
	}
	return field, nil
}

func ParseDirection(name string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(name))) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", &listings.ValidationError{Field: "direction", Message: "must be asc or desc"}
}

// SortState is the table's sort selection. The zero value means insertion order.
type SortState struct {
	Field     SortField
	Direction Direction
}

// Select applies a column click: a new field sorts ascending, the active
// field flips direction.
func (s *SortState) Select(field SortField) {
	if s.Field == field {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return
	}
	s.Field = field
	s.Direction = Ascending
}

func (s SortState) Active() bool {
	return s.Field != ""
}

func (s SortState) Descriptor() models.SortDescriptor {
	if !s.Active() {
		return models.SortDescriptor{}
	}
	return models.SortDescriptor{Field: string(s.Field), Direction: string(s.Direction)}
}

// DisplayOrder returns listing positions in display order. The listings
// themselves are never reordered.
func DisplayOrder(items []models.NormalizedListing, state SortState) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	if !state.Active() {
		return order
	}
	c, ok := comparators[state.Field]
	if !ok {
		return order
	}

	compare := func(a, b *models.NormalizedListing) int {
		if c.Unknown != nil {
			ua, ub := c.Unknown(a), c.Unknown(b)
			switch {
			case ua && ub:
				return 0
			case ua:
				return 1
			case ub:
				return -1
			}
		}
		r := c.Compare(a, b)
		if state.Direction == Descending {
			return -r
		}
		return r
	}
	sort.SliceStable(order, func(i, j int) bool {
		return compare(&items[order[i]], &items[order[j]]) < 0
	})
	return order
}
