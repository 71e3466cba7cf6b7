package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/core/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, limit int, nextToken *string) ([]domain.Voucher, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Voucher), returnedNextToken, args.Error(2)
}

func (m *MockVoucherRepository) UpdateVoucherStatus(ctx context.Context, voucherID string, status domain.VoucherStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, voucherID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockVoucherRepository
	mockAuditRepo   *MockAuditLogRepository
	mockSequenceSvc *MockSequenceAllocator
	service         portssvc.VoucherSvcFacade
	actor           domain.Actor
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)
	suite.mockSequenceSvc = new(MockSequenceAllocator)
	suite.service = services.NewVoucherService(suite.mockVoucherRepo, suite.mockSequenceSvc, suite.mockAuditRepo)

	suite.actor = domain.Actor{UserID: uuid.NewString()}
	suite.mockAuditRepo.On("CreateAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Success() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		PartyID:      uuid.NewString(),
		Amount:       decimal.NewFromInt(250),
		CurrencyCode: "USD",
		Date:         time.Now(),
		Description:  "office rent",
	}

	suite.mockSequenceSvc.On("Allocate", ctx, "PV", int64(1)).Return(domain.SequenceRange{First: 3, Last: 3}, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher")).Return(nil).Once()

	voucher, err := suite.service.CreateVoucher(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal("PV-000003", voucher.VoucherNumber)
	suite.Equal(int64(3), voucher.SequenceNo)
	suite.Equal(domain.VoucherDraft, voucher.Status)
	suite.Equal(req.PartyID, voucher.PartyID)
	suite.mockSequenceSvc.AssertExpectations(suite.T())
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		PartyID:      uuid.NewString(),
		Amount:       decimal.Zero,
		CurrencyCode: "USD",
		Date:         time.Now(),
	}

	_, err := suite.service.CreateVoucher(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSequenceSvc.AssertNotCalled(suite.T(), "Allocate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SaveFailureReleasesSequence() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		PartyID:      uuid.NewString(),
		Amount:       decimal.NewFromInt(250),
		CurrencyCode: "USD",
		Date:         time.Now(),
	}

	suite.mockSequenceSvc.On("Allocate", ctx, "PV", int64(1)).Return(domain.SequenceRange{First: 4, Last: 4}, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.Anything).Return(assert.AnError).Once()
	suite.mockSequenceSvc.On("Release", ctx, "PV", int64(1)).Return(nil).Once()

	_, err := suite.service.CreateVoucher(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.mockSequenceSvc.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) draftVoucher() *domain.Voucher {
	return &domain.Voucher{
		VoucherID:     uuid.NewString(),
		VoucherNumber: "PV-000003",
		SequenceNo:    3,
		PartyID:       uuid.NewString(),
		Amount:        decimal.NewFromInt(250),
		CurrencyCode:  "USD",
		VoucherDate:   time.Now(),
		Status:        domain.VoucherDraft,
	}
}

func (suite *VoucherServiceTestSuite) TestGetVoucherByID() {
	ctx := context.Background()
	voucher := suite.draftVoucher()

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	found, err := suite.service.GetVoucherByID(ctx, voucher.VoucherID)

	suite.Require().NoError(err)
	suite.Equal(voucher.VoucherNumber, found.VoucherNumber)
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucherStatus_Approve() {
	ctx := context.Background()
	voucher := suite.draftVoucher()

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucher.VoucherID).Return(voucher, nil).Once()
	suite.mockVoucherRepo.On("UpdateVoucherStatus", ctx, voucher.VoucherID, domain.VoucherApproved, suite.actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateVoucherStatus(ctx, voucher.VoucherID, domain.VoucherApproved, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.VoucherApproved, updated.Status)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestUpdateVoucherStatus_SkippingApprovalRejected() {
	ctx := context.Background()
	voucher := suite.draftVoucher()

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, voucher.VoucherID).Return(voucher, nil).Once()

	_, err := suite.service.UpdateVoucherStatus(ctx, voucher.VoucherID, domain.VoucherPaid, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "UpdateVoucherStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestVoucherService(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
