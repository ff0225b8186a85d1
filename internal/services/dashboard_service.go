package services

import (
	"context"
	"errors"

	"property-dashboard/internal/dashboard"
	apperrors "property-dashboard/internal/errors"
	"property-dashboard/internal/models"
	"property-dashboard/internal/transformers"
	"property-dashboard/pkg/logger"
)

// DashboardService runs the normalization and presentation pipeline, either
// statelessly per request or against a stored session view.
type DashboardService struct {
	listings    *ListingService
	transformer transformers.ListingTransformer
	store       *dashboard.Store
}

func NewDashboardService(
	listingService *ListingService,
	transformer transformers.ListingTransformer,
	store *dashboard.Store,
) *DashboardService {
	return &DashboardService{
		listings:    listingService,
		transformer: transformer,
		store:       store,
	}
}

// Build fetches, normalizes and renders a one-off dashboard. An empty sortField
// keeps insertion order.
func (s *DashboardService) Build(ctx context.Context, req *models.SearchRequest, sortField, direction string) (*models.DashboardView, error) {
	var (
		field dashboard.SortField
		dir   dashboard.Direction
		err   error
	)
	if sortField != "" {
		if field, err = dashboard.ParseSortField(sortField); err != nil {
			return nil, err
		}
		if dir, err = dashboard.ParseDirection(direction); err != nil {
			return nil, err
		}
	}

	resp, err := s.listings.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	view := dashboard.NewView()
	token := view.BeginSearch(*req)
	if err := view.Complete(token, s.transformer.NormalizeAll(resp.Results)); err != nil {
		return nil, err
	}
	if field != "" {
		view.SortBy(field, dir)
	}

	rendered := view.Render()
	return &rendered, nil
}

func (s *DashboardService) CreateSession() string {
	id, _ := s.store.Create()
	logger.GlobalLogger.Debugf("Created dashboard session %s", id)
	return id
}

func (s *DashboardService) DeleteSession(sessionID string) error {
	return s.store.Delete(sessionID)
}

// Search runs a search inside a session. Invalid queries leave the view as it
// was; provider failures put it into the error state. A result that arrives
// after a newer search on the same session is discarded with
// dashboard.ErrStaleResult.
func (s *DashboardService) Search(ctx context.Context, sessionID string, req *models.SearchRequest) (*models.DashboardView, error) {
	view, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.listings.validator.ValidateSearch(req); err != nil {
		return nil, err
	}

	token := view.BeginSearch(*req)
	resp, err := s.listings.Search(ctx, req)
	if err != nil {
		if failErr := view.Fail(token, apperrors.MapError(err).UserMessage); failErr != nil {
			logger.GlobalLogger.Warnf("Discarded failed search: session=%s, generation=%d", sessionID, token)
			return nil, failErr
		}
		return nil, err
	}

	if err := view.Complete(token, s.transformer.NormalizeAll(resp.Results)); err != nil {
		if errors.Is(err, dashboard.ErrStaleResult) {
			logger.GlobalLogger.Warnf("Discarded stale search: session=%s, generation=%d", sessionID, token)
		}
		return nil, err
	}

	rendered := view.Render()
	return &rendered, nil
}

func (s *DashboardService) View(sessionID string) (*models.DashboardView, error) {
	view, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	rendered := view.Render()
	return &rendered, nil
}

// Sort applies a column selection: a new field sorts ascending, the active
// field flips direction.
func (s *DashboardService) Sort(sessionID, field string) (*models.DashboardView, error) {
	view, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sortField, err := dashboard.ParseSortField(field)
	if err != nil {
		return nil, err
	}
	view.Sort(sortField)
	rendered := view.Render()
	return &rendered, nil
}

func (s *DashboardService) ToggleDetail(sessionID string, index int) (*models.DashboardView, error) {
	view, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := view.ToggleDetail(index); err != nil {
		return nil, err
	}
	rendered := view.Render()
	return &rendered, nil
}

func (s *DashboardService) Detail(sessionID string, index int) (*models.ListingDetail, error) {
	view, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return view.Detail(index)
}
