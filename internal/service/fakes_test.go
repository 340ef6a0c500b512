package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oggyb/zensend-gateway/internal/cache"
	domain "github.com/oggyb/zensend-gateway/internal/domain/message"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

type fakeRepo struct {
	mu      sync.Mutex
	saved   []*domain.Message
	pending []*domain.Message
	updated map[string]domain.Message
}

func newFakeRepo(pending ...*domain.Message) *fakeRepo {
	return &fakeRepo{pending: pending, updated: map[string]domain.Message{}}
}

func (r *fakeRepo) Save(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, m)
	return nil
}

func (r *fakeRepo) ClaimPending(_ context.Context, limit int) ([]*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(limit, len(r.pending))
	claimed := r.pending[:n]
	r.pending = r.pending[n:]
	for _, m := range claimed {
		m.Claim()
	}
	return claimed, nil
}

func (r *fakeRepo) GetSent(_ context.Context, page, limit int) ([]*domain.Message, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, m *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated[m.ID.String()] = *m
	return nil
}

func (r *fakeRepo) get(id string) (domain.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.updated[id]
	return m, ok
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Ping(context.Context) error { return nil }

func (c *fakeCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// fakeProvider answers SendSMS from a per-originator table so concurrent
// workers get deterministic outcomes.
type fakeProvider struct {
	mu    sync.Mutex
	sends []zensend.Message

	results map[string]*zensend.SMSResult
	errs    map[string]error
	// hang lists originators whose sends block until the context ends.
	hang map[string]bool

	balance  decimal.Decimal
	operator *zensend.OperatorLookupResult
	session  string
	msisdn   string
	lastOpts zensend.VerificationOptions
	keyword  zensend.Keyword
}

func (p *fakeProvider) SendSMS(ctx context.Context, m zensend.Message) (*zensend.SMSResult, error) {
	p.mu.Lock()
	p.sends = append(p.sends, m)
	p.mu.Unlock()

	if p.hang[m.Originator] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := p.errs[m.Originator]; err != nil {
		return nil, err
	}
	return p.results[m.Originator], nil
}

func (p *fakeProvider) CheckBalance(context.Context) (decimal.Decimal, error) {
	return p.balance, nil
}

func (p *fakeProvider) GetPrices(context.Context) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{"GB": decimal.RequireFromString("1.23")}, nil
}

func (p *fakeProvider) LookupOperator(context.Context, string) (*zensend.OperatorLookupResult, error) {
	return p.operator, nil
}

func (p *fakeProvider) CreateSubAccount(_ context.Context, name string) (*zensend.CreateSubAccountResult, error) {
	return &zensend.CreateSubAccountResult{Name: name, APIKey: "sub-key"}, nil
}

func (p *fakeProvider) CreateKeyword(_ context.Context, k zensend.Keyword) (*zensend.CreateKeywordResult, error) {
	p.keyword = k
	return &zensend.CreateKeywordResult{CostInPence: decimal.RequireFromString("100")}, nil
}

func (p *fakeProvider) CreateMsisdnVerification(_ context.Context, _ string, opts zensend.VerificationOptions) (string, error) {
	p.lastOpts = opts
	return p.session, nil
}

func (p *fakeProvider) MsisdnVerificationStatus(context.Context, string) (string, error) {
	return p.msisdn, nil
}

func mustMessage(originator string) *domain.Message {
	m, err := domain.NewMessage(domain.Draft{
		Originator: originator,
		Body:       "hello",
		Numbers:    []string{"447777777777"},
	})
	if err != nil {
		panic(err)
	}
	return m
}
