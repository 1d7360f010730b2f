package application

import (
	"context"
	"fmt"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// SearchService runs fuzzy tire searches with the caller's visibility
// applied and assembles listings with store names and stock lots.
type SearchService struct {
	tires  ports.TireRepository
	dots   ports.TireDotRepository
	stores ports.StoreRepository
	logger zerolog.Logger
}

// NewSearchService creates a new product search service.
func NewSearchService(
	tires ports.TireRepository,
	dots ports.TireDotRepository,
	stores ports.StoreRepository,
	logger zerolog.Logger,
) *SearchService {
	return &SearchService{
		tires:  tires,
		dots:   dots,
		stores: stores,
		logger: logger,
	}
}

// Search returns one page of results for a free-text query. Fetching
// one row past the page size answers "are there more pages" without a
// count query.
func (s *SearchService) Search(ctx context.Context, keyword string, perm domain.Permission, page int) (*domain.SearchResult, error) {
	if page < 1 {
		page = 1
	}

	storeID := ""
	if perm.SeesOwnStore() {
		storeID = perm.StoreID
	}

	filter := ports.TireSearchFilter{
		SizePattern: domain.FuzzySizePattern(domain.NormalizeSize(keyword)),
		Keyword:     keyword,
		StoreID:     storeID,
		Offset:      (page - 1) * domain.SearchPageSize,
		Limit:       domain.SearchPageSize + 1,
	}

	tires, err := s.tires.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search tires: %w", err)
	}

	hasMore := len(tires) > domain.SearchPageSize
	if hasMore {
		tires = tires[:domain.SearchPageSize]
	}

	listings, err := s.assemble(ctx, tires)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResult{
		Keyword:  keyword,
		Page:     page,
		Listings: listings,
		HasMore:  hasMore,
	}, nil
}

// SearchBranches finds shared stock of the same brand and size at other
// stores. Returns domain.ErrNotFound when the reference tire is gone.
func (s *SearchService) SearchBranches(ctx context.Context, tireID string) (*domain.SearchResult, error) {
	tire, err := s.tires.GetByID(ctx, tireID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tire: %w", err)
	}
	if tire == nil {
		return nil, domain.ErrNotFound
	}

	tires, err := s.tires.FindShared(ctx, tire.Brand, tire.Size, tire.ID, domain.SearchPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to find branch stock: %w", err)
	}

	listings, err := s.assemble(ctx, tires)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResult{
		Keyword:  tire.Brand + " " + tire.Size,
		Page:     1,
		Listings: listings,
	}, nil
}

// assemble joins tires with their lots and store names, preserving the
// repository's result order.
func (s *SearchService) assemble(ctx context.Context, tires []*domain.Tire) ([]domain.TireListing, error) {
	if len(tires) == 0 {
		return nil, nil
	}

	tireIDs := make([]string, 0, len(tires))
	storeIDSet := make(map[string]struct{}, len(tires))
	for _, tire := range tires {
		tireIDs = append(tireIDs, tire.ID)
		storeIDSet[tire.StoreID] = struct{}{}
	}
	storeIDs := make([]string, 0, len(storeIDSet))
	for id := range storeIDSet {
		storeIDs = append(storeIDs, id)
	}

	dots, err := s.dots.ListByTireIDs(ctx, tireIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock lots: %w", err)
	}
	dotsByTire := make(map[string][]domain.TireDot, len(tires))
	for _, dot := range dots {
		dotsByTire[dot.TireID] = append(dotsByTire[dot.TireID], *dot)
	}

	stores, err := s.stores.ListByIDs(ctx, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load store names: %w", err)
	}
	storeNames := make(map[string]string, len(stores))
	for _, store := range stores {
		storeNames[store.ID] = store.Name
	}

	listings := make([]domain.TireListing, 0, len(tires))
	for _, tire := range tires {
		listings = append(listings, domain.TireListing{
			Tire:      *tire,
			StoreName: storeNames[tire.StoreID],
			Dots:      dotsByTire[tire.ID],
		})
	}
	return listings, nil
}
