package event_handlers

import (
	"context"
	"regexp"
	"strings"
	"time"

	"tirehub-line-gateway/internal/application"
	"tirehub-line-gateway/internal/domain"
	"tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/infrastructure/metrics"
	"tirehub-line-gateway/internal/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type fakeStoreRepo struct {
	stores   []*domain.Store
	verified []string
}

func (f *fakeStoreRepo) ListWebhookConfigured(ctx context.Context) ([]*domain.Store, error) {
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
	dots map[string]*domain.TireDot
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
	d, ok := f.dots[id]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	before := d.Quantity
	d.Quantity = domain.ClampQuantity(before, delta)
	return before, d.Quantity, nil
}

type fakeLogRepo struct {
	entries []*domain.StockLog
}

func (f *fakeLogRepo) Create(ctx context.Context, entry *domain.StockLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeProfileRepo struct {
	profiles []*domain.Profile
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
	codes map[string]*domain.LinkCode
}

func (f *fakeLinkCodeRepo) GetByCode(ctx context.Context, code string) (*domain.LinkCode, error) {
	c, ok := f.codes[code]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeLinkCodeRepo) Delete(ctx context.Context, code string) error {
	delete(f.codes, code)
	return nil
}

type sentReply struct {
	accessToken string
	replyToken  string
	messages    []line.Message
}

type fakeReplyClient struct {
	sent []sentReply
	err  error
}

func (f *fakeReplyClient) Reply(ctx context.Context, accessToken, replyToken string, messages []line.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentReply{accessToken: accessToken, replyToken: replyToken, messages: messages})
	return nil
}

type fakeReplayGuard struct {
	seen map[string]bool
	err  error
}

func (f *fakeReplayGuard) FirstDelivery(ctx context.Context, eventID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	return true, nil
}

// fixture wires real services over in-memory fakes. Seeded with one
// store, an owner, an approved staff member with adjust rights and a
// shared tire with a three-unit lot.
type fixture struct {
	stores      *fakeStoreRepo
	tires       *fakeTireRepo
	dots        *fakeDotRepo
	logs        *fakeLogRepo
	profiles    *fakeProfileRepo
	memberships *fakeMembershipRepo
	linkCodes   *fakeLinkCodeRepo
	replies     *fakeReplyClient
	guard       *fakeReplayGuard

	permissions *application.PermissionService
	search      *application.SearchService
	stock       *application.StockService
	links       *application.LinkService
	metrics     *metrics.Metrics
	tenant      *application.Tenant
}

func newFixture() *fixture {
	adjust := true
	f := &fixture{
		stores: &fakeStoreRepo{stores: []*domain.Store{
			{ID: "store-a", Name: "Store A", OwnerUserID: "user-owner",
				LineChannelSecret: "secret-a", LineAccessToken: "token-a"},
		}},
		tires: &fakeTireRepo{tires: []*domain.Tire{
			{ID: "tire-1", StoreID: "store-a", Brand: "Bridgestone", Model: "Ecopia",
				Size: "265/65R17", Price: 18000, IsShared: true},
		}},
		dots: &fakeDotRepo{dots: map[string]*domain.TireDot{
			"dot-1": {ID: "dot-1", TireID: "tire-1", DotCode: "2224", Quantity: 3},
		}},
		logs: &fakeLogRepo{},
		profiles: &fakeProfileRepo{profiles: []*domain.Profile{
			{ID: "user-owner", LineUserID: "U-owner"},
			{ID: "user-staff", LineUserID: "U-staff"},
		}},
		memberships: &fakeMembershipRepo{memberships: []*domain.StoreMembership{
			{ID: "m1", UserID: "user-staff", StoreID: "store-a", Role: domain.RoleStaff,
				IsApproved:  true,
				Permissions: domain.PermissionSet{Line: domain.LinePermissions{Adjust: &adjust}}},
		}},
		linkCodes: &fakeLinkCodeRepo{codes: map[string]*domain.LinkCode{
			"ABC123": {Code: "ABC123", UserID: "user-owner", ExpiresAt: time.Now().Add(time.Hour)},
		}},
		replies: &fakeReplyClient{},
		guard:   &fakeReplayGuard{},
	}

	logger := zerolog.Nop()
	f.permissions = application.NewPermissionService(f.profiles, f.stores, f.memberships, logger)
	f.search = application.NewSearchService(f.tires, f.dots, f.stores, logger)
	f.stock = application.NewStockService(f.dots, f.logs, logger)
	f.links = application.NewLinkService(f.linkCodes, f.profiles, f.stores, logger)
	f.metrics = metrics.New(prometheus.NewRegistry())
	f.tenant = &application.Tenant{Store: f.stores.stores[0], AccessToken: "token-a"}
	return f
}

func (f *fixture) messageHandler() *MessageHandler {
	return NewMessageHandler(f.permissions, f.search, f.links, zerolog.Nop())
}

func (f *fixture) postbackHandler() *PostbackHandler {
	return NewPostbackHandler(f.permissions, f.search, f.stock, f.guard, f.metrics, zerolog.Nop())
}
