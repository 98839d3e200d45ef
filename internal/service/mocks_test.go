package service_test

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus, now time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) FindBlockingOverlap(ctx context.Context, equipmentID string, start, end time.Time, excludeID string) (string, error) {
	args := m.Called(ctx, equipmentID, start, end, excludeID)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepo) ListExpiredInProgress(ctx context.Context, now time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int32, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Order), int32(args.Int(1)), args.Error(2)
}

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) SetStatus(ctx context.Context, id string, status domain.EquipmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// fakeTransactor runs the function inline; the lock is a no-op. Repository
// mocks do not care about transaction scope.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTransactor) LockEquipment(context.Context, string) error { return nil }
