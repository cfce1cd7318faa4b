package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-bookstore/internal/model"
	"go-bookstore/pkg/apierror"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByIdentifier(ctx context.Context, identifier string) (model.PasswordRecord, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(model.PasswordRecord), args.Error(1)
}

type mockSellerStore struct {
	mock.Mock
}

func (m *mockSellerStore) Create(ctx context.Context, s model.Seller) (model.Seller, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *mockSellerStore) List(ctx context.Context) ([]model.Seller, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Seller), args.Error(1)
}

func (m *mockSellerStore) FindByID(ctx context.Context, id int64) (model.Seller, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *mockSellerStore) Update(ctx context.Context, s model.Seller) (model.Seller, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *mockSellerStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookStore struct {
	mock.Mock
}

func (m *mockBookStore) Create(ctx context.Context, b model.Book) (model.Book, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(model.Book), args.Error(1)
}

func (m *mockBookStore) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookStore) ListBySeller(ctx context.Context, sellerID int64) ([]model.Book, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *mockBookStore) FindByID(ctx context.Context, id int64) (model.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Book), args.Error(1)
}

func (m *mockBookStore) Update(ctx context.Context, b model.Book) (model.Book, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(model.Book), args.Error(1)
}

func (m *mockBookStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuditStore struct {
	mock.Mock
}

func (m *mockAuditStore) Log(ctx context.Context, e model.AuthEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockAuditStore) ListByIdentifier(ctx context.Context, identifier string, limit int) ([]model.AuthEvent, error) {
	args := m.Called(ctx, identifier, limit)
	return args.Get(0).([]model.AuthEvent), args.Error(1)
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time           { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func requireAPIError(t *testing.T, err error, status int) *apierror.APIError {
	t.Helper()
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.HTTPStatus)
	return apiErr
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	requireAPIError(t, err, http.StatusUnauthorized)
}
