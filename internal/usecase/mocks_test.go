package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"
	"github.com/kargofit/crm/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) CreateBulk(ctx context.Context, products []model.Product) error {
	panic("not used in product usecase tests")
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) ReplaceBikes(ctx context.Context, productID int64, bikes []model.Bike) error {
	return m.Called(ctx, productID, bikes).Error(0)
}

func (m *ProductRepoMock) SetArchived(ctx context.Context, id int64, archived bool) error {
	return m.Called(ctx, id, archived).Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) List(ctx context.Context, q repo.CustomerListQuery) ([]model.Customer, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Customer)
	return items, args.Error(1)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Customer)
	return created, args.Error(1)
}

func (m *CustomerRepoMock) CreateBulk(ctx context.Context, customers []model.Customer) error {
	panic("not used in customer usecase tests")
}

func (m *CustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepoMock) SetArchived(ctx context.Context, id int64, archived bool) error {
	return m.Called(ctx, id, archived).Error(0)
}

func (m *CustomerRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type BikeRepoMock struct{ mock.Mock }

func (m *BikeRepoMock) ListOrdered(ctx context.Context) ([]model.Bike, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Bike)
	return items, args.Error(1)
}

func (m *BikeRepoMock) FindByName(ctx context.Context, name string) (model.Bike, error) {
	args := m.Called(ctx, name)
	b, _ := args.Get(0).(model.Bike)
	return b, args.Error(1)
}

func (m *BikeRepoMock) Create(ctx context.Context, b model.Bike) (model.Bike, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(model.Bike)
	return created, args.Error(1)
}

func (m *BikeRepoMock) UpdateBrand(ctx context.Context, id int64, brand string) error {
	return m.Called(ctx, id, brand).Error(0)
}

func (m *BikeRepoMock) FindOrCreateByName(ctx context.Context, name string) (model.Bike, error) {
	args := m.Called(ctx, name)
	b, _ := args.Get(0).(model.Bike)
	return b, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindDetail(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, order model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

// TxReposMock hands out the same mocks inside every transaction.
type TxReposMock struct {
	products   *ProductRepoMock
	customers  *CustomerRepoMock
	bikes      *BikeRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
}

func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Customers() repo.CustomerRepository   { return r.customers }
func (r *TxReposMock) Bikes() repo.BikeRepository           { return r.bikes }
func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }

type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

func newTxMock(r *TxReposMock) *TxManagerMock {
	tx := &TxManagerMock{Repos: r}
	tx.On("WithinTx", mock.Anything).Return()
	return tx
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, sub string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), sub), "err=%v, want contains=%q", err, sub)
	}
}

func assertHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "err=%v is not an HTTPError", err)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, msg, he.Message)
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func str(v string) *string   { return &v }
