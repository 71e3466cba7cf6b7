package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/core/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// --- Mock CounterRepository ---
type MockCounterRepository struct {
	mock.Mock
}

var _ portsrepo.CounterRepository = (*MockCounterRepository)(nil)

func (m *MockCounterRepository) IncrementAndGet(ctx context.Context, scopeKey string, count int64) (int64, error) {
	args := m.Called(ctx, scopeKey, count)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterRepository) Decrement(ctx context.Context, scopeKey string, count int64) error {
	args := m.Called(ctx, scopeKey, count)
	return args.Error(0)
}

func (m *MockCounterRepository) FindCounter(ctx context.Context, scopeKey string) (*domain.Counter, error) {
	args := m.Called(ctx, scopeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counter), args.Error(1)
}

func (m *MockCounterRepository) ResetCounter(ctx context.Context, scopeKey string) error {
	args := m.Called(ctx, scopeKey)
	return args.Error(0)
}

func TestAllocate_SingleValue(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	repo.On("IncrementAndGet", ctx, "salesOrderCode", int64(1)).Return(int64(43), nil).Once()

	rng, err := svc.Allocate(ctx, "salesOrderCode", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(43), rng.First)
	assert.Equal(t, int64(43), rng.Last)
	repo.AssertExpectations(t)
}

func TestAllocate_Block(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	// Counter at 12 before the call: reserving 5 yields [13..17].
	repo.On("IncrementAndGet", ctx, "locationCode", int64(5)).Return(int64(17), nil).Once()

	rng, err := svc.Allocate(ctx, "locationCode", 5)

	require.NoError(t, err)
	assert.Equal(t, int64(13), rng.First)
	assert.Equal(t, int64(17), rng.Last)
	assert.Equal(t, int64(5), rng.Count())
	repo.AssertExpectations(t)
}

func TestAllocate_NonPositiveCount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	_, err := svc.Allocate(ctx, "GJ", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "IncrementAndGet", mock.Anything, mock.Anything, mock.Anything)
}

func TestAllocate_RepoError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	repo.On("IncrementAndGet", ctx, "GJ", int64(1)).Return(int64(0), assert.AnError).Once()

	_, err := svc.Allocate(ctx, "GJ", 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSequenceAllocation)
	repo.AssertExpectations(t)
}

func TestRelease_DelegatesToDecrement(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	repo.On("Decrement", ctx, "PV", int64(1)).Return(nil).Once()

	err := svc.Release(ctx, "PV", 1)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRelease_ErrorIsReturnedNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	repo.On("Decrement", ctx, "PV", int64(2)).Return(assert.AnError).Once()

	err := svc.Release(ctx, "PV", 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), assert.AnError.Error())
	repo.AssertExpectations(t)
}

func TestReserveBlock(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	repo.On("IncrementAndGet", ctx, "locationCode", int64(5)).Return(int64(17), nil).Once()

	rng, err := svc.ReserveBlock(ctx, dto.ReserveSequenceRequest{ScopeKey: "locationCode", Count: 5}, domain.Actor{UserID: "admin-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(13), rng.First)
	assert.Equal(t, int64(17), rng.Last)
	repo.AssertExpectations(t)
}

func TestGetCounter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCounterRepository)
	svc := services.NewSequenceService(repo)

	counter := &domain.Counter{ScopeKey: "GJ", Seq: 7, LastUpdatedAt: time.Now()}
	repo.On("FindCounter", ctx, "GJ").Return(counter, nil).Once()

	got, err := svc.GetCounter(ctx, "GJ")

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Seq)
	repo.AssertExpectations(t)
}
