package transformers

import (
	"property-dashboard/internal/models"
)

type ListingTransformer interface {
	Normalize(index int, raw models.RawListing) models.NormalizedListing
	NormalizeAll(raw []models.RawListing) []models.NormalizedListing
}
