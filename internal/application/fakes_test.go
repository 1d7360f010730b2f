package application

import (
	"context"
	"regexp"
	"strings"
	"time"

	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/ports"
)

// In-memory repository fakes mirroring the mongo query semantics
// closely enough for service-level tests.

type fakeStoreRepo struct {
	stores   []*domain.Store
	listErr  error
	verified []string
}

func (f *fakeStoreRepo) ListWebhookConfigured(ctx context.Context) ([]*domain.Store, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Store
	for _, s := range f.stores {
		if s.LineChannelSecret != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	for _, s := range f.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Store, error) {
	var out []*domain.Store
	for _, s := range f.stores {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) GetByOwner(ctx context.Context, userID string) (*domain.Store, error) {
	for _, s := range f.stores {
		if s.OwnerUserID == userID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) MarkWebhookVerified(ctx context.Context, storeID string) error {
	f.verified = append(f.verified, storeID)
	for _, s := range f.stores {
		if s.ID == storeID {
			s.LineWebhookVerified = true
		}
	}
	return nil
}

type fakeTireRepo struct {
	tires []*domain.Tire
}

func (f *fakeTireRepo) Search(ctx context.Context, filter ports.TireSearchFilter) ([]*domain.Tire, error) {
	var sizeRe *regexp.Regexp
	if filter.SizePattern != "" {
		sizeRe = regexp.MustCompile("(?i)" + filter.SizePattern)
	}
	keyword := strings.ToLower(filter.Keyword)

	var matched []*domain.Tire
	for _, t := range f.tires {
		visible := t.IsShared || (filter.StoreID != "" && t.StoreID == filter.StoreID)
		if !visible {
			continue
		}
		hit := false
		if sizeRe != nil && sizeRe.MatchString(t.Size) {
			hit = true
		}
		if keyword != "" &&
			(strings.Contains(strings.ToLower(t.Brand), keyword) ||
				strings.Contains(strings.ToLower(t.Model), keyword)) {
			hit = true
		}
		if hit {
			matched = append(matched, t)
		}
	}

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (f *fakeTireRepo) GetByID(ctx context.Context, id string) (*domain.Tire, error) {
	for _, t := range f.tires {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTireRepo) FindShared(ctx context.Context, brand, size, excludeTireID string, limit int) ([]*domain.Tire, error) {
	var out []*domain.Tire
	for _, t := range f.tires {
		if t.IsShared && t.Brand == brand && t.Size == size && t.ID != excludeTireID {
			out = append(out, t)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeDotRepo struct {
	dots      map[string]*domain.TireDot
	adjustErr error
}

func (f *fakeDotRepo) ListByTireIDs(ctx context.Context, tireIDs []string) ([]*domain.TireDot, error) {
	var out []*domain.TireDot
	for _, id := range tireIDs {
		for _, d := range f.dots {
			if d.TireID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeDotRepo) GetByID(ctx context.Context, id string) (*domain.TireDot, error) {
	d, ok := f.dots[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}

func (f *fakeDotRepo) AdjustQuantity(ctx context.Context, id string, delta int) (int, int, error) {
	if f.adjustErr != nil {
		return 0, 0, f.adjustErr
	}
	d, ok := f.dots[id]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	before := d.Quantity
	d.Quantity = domain.ClampQuantity(before, delta)
	return before, d.Quantity, nil
}

type fakeLogRepo struct {
	entries   []*domain.StockLog
	createErr error
}

func (f *fakeLogRepo) Create(ctx context.Context, entry *domain.StockLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeProfileRepo struct {
	profiles []*domain.Profile
	linked   map[string]string
}

func (f *fakeProfileRepo) GetByLineUserID(ctx context.Context, lineUserID string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.LineUserID != "" && p.LineUserID == lineUserID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) LinkLineUser(ctx context.Context, userID, lineUserID string) error {
	if f.linked == nil {
		f.linked = make(map[string]string)
	}
	f.linked[userID] = lineUserID
	for _, p := range f.profiles {
		if p.ID == userID {
			p.LineUserID = lineUserID
		}
	}
	return nil
}

type fakeMembershipRepo struct {
	memberships []*domain.StoreMembership
}

func (f *fakeMembershipRepo) GetByUserAndStore(ctx context.Context, userID, storeID string) (*domain.StoreMembership, error) {
	for _, m := range f.memberships {
		if m.UserID == userID && m.StoreID == storeID {
			return m, nil
		}
	}
	return nil, nil
}

type fakeLinkCodeRepo struct {
	codes   map[string]*domain.LinkCode
	deleted []string
}

func (f *fakeLinkCodeRepo) GetByCode(ctx context.Context, code string) (*domain.LinkCode, error) {
	c, ok := f.codes[code]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeLinkCodeRepo) Delete(ctx context.Context, code string) error {
	f.deleted = append(f.deleted, code)
	delete(f.codes, code)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}
