package usecase_test

import (
	"context"
	"testing"
	"time"

	"clothco/internal/domain/model"
	repo "clothco/internal/repository"
	"clothco/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repo.ProductRepository = (*ProductRepoMock)(nil)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

var _ repo.OrderRepository = (*OrderRepoMock)(nil)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) IncrementOrderCount(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

var _ repo.UserRepository = (*UserRepoMock)(nil)

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, pm model.PaymentMethod) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *PaymentRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.PaymentMethod)
	return items, args.Error(1)
}

func (m *PaymentRepoMock) DeleteByUser(ctx context.Context, userID string, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

var _ repo.PaymentMethodRepository = (*PaymentRepoMock)(nil)

type MessageRepoMock struct{ mock.Mock }

func (m *MessageRepoMock) Create(ctx context.Context, msg model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepoMock) FindByID(ctx context.Context, id string) (model.Message, error) {
	args := m.Called(ctx, id)
	msg, _ := args.Get(0).(model.Message)
	return msg, args.Error(1)
}

func (m *MessageRepoMock) List(ctx context.Context, f repo.MessageFilter) ([]model.Message, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Message)
	return items, args.Error(1)
}

func (m *MessageRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Message)
	return items, args.Error(1)
}

func (m *MessageRepoMock) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepoMock) Update(ctx context.Context, msg model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

var _ repo.MessageRepository = (*MessageRepoMock)(nil)

// TxはそのままfnにTxReposを渡す
type TxManagerMock struct {
	orders repo.OrderRepository
	users  repo.UserRepository
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m)
}

func (m *TxManagerMock) Orders() repo.OrderRepository { return m.orders }
func (m *TxManagerMock) Users() repo.UserRepository   { return m.users }

type ValidatorMock struct{ mock.Mock }

func (m *ValidatorMock) ValidateCheckout(in usecase.CheckoutInput) error {
	args := m.Called(in)
	return args.Error(0)
}

func (m *ValidatorMock) ValidateCard(holder string, number string, expiry string) error {
	args := m.Called(holder, number, expiry)
	return args.Error(0)
}

type fixedID struct{ id string }

func (g fixedID) NewID() string { return g.id }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// =====================
// helper
// =====================

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "not an HTTPError: %v", err)
	assert.Equal(t, status, he.Status, he.Message)
}

