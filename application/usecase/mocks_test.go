package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/horolog/horolog/application/port/outbound"
	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/entity"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *entity.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, p *entity.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) List(ctx context.Context, f query.ProductFilter, s query.Sort, pg query.Page) ([]entity.Product, int64, error) {
	args := m.Called(ctx, f, s, pg)
	var products []entity.Product
	if v := args.Get(0); v != nil {
		products = v.([]entity.Product)
	}
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepository) Iterate(ctx context.Context, f query.ProductFilter, fn func(*entity.Product) error) error {
	args := m.Called(ctx, f, fn)
	return args.Error(0)
}

func (m *mockProductRepository) AggregateStats(ctx context.Context) (*outbound.StatsAggregate, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*outbound.StatsAggregate), args.Error(1)
	}
	return nil, args.Error(1)
}

// iterProductRepository drives Iterate over a fixed slice; the other methods
// are unused in export tests.
type iterProductRepository struct {
	mockProductRepository
	products []entity.Product
	failAt   int // 1-based row to fail on, 0 disables
	iterErr  error
}

func (m *iterProductRepository) Iterate(ctx context.Context, f query.ProductFilter, fn func(*entity.Product) error) error {
	for i := range m.products {
		if m.failAt > 0 && i+1 == m.failAt {
			return m.iterErr
		}
		if err := fn(&m.products[i]); err != nil {
			return err
		}
	}
	return nil
}

type recordedCall struct {
	action  string
	product entity.Product
	actor   entity.Principal
	changes map[string]entity.FieldChange
}

// stubRecorder captures audit calls synchronously for assertions.
type stubRecorder struct {
	calls []recordedCall
}

func (s *stubRecorder) Record(action string, product *entity.Product, actor entity.Principal, changes map[string]entity.FieldChange) {
	call := recordedCall{action: action, actor: actor, changes: changes}
	if product != nil {
		call.product = *product
	}
	s.calls = append(s.calls, call)
}

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Insert(ctx context.Context, e *entity.AuditEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockAuditRepository) List(ctx context.Context, f query.AuditFilter, s query.Sort, pg query.Page) ([]entity.AuditEntry, int64, error) {
	args := m.Called(ctx, f, s, pg)
	var entries []entity.AuditEntry
	if v := args.Get(0); v != nil {
		entries = v.([]entity.AuditEntry)
	}
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditRepository) ListActors(ctx context.Context) ([]outbound.AuditActor, error) {
	args := m.Called(ctx)
	var actors []outbound.AuditActor
	if v := args.Get(0); v != nil {
		actors = v.([]outbound.AuditActor)
	}
	return actors, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	args := m.Called(token)
	if v := args.Get(0); v != nil {
		return v.(*outbound.TokenClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) ComparePassword(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}
