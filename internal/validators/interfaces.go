package validators

import (
	"property-dashboard/internal/models"
)

type SearchValidator interface {
	ValidateSearch(req *models.SearchRequest) error
}
