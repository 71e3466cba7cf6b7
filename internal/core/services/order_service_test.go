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

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) AddPayment(ctx context.Context, payment domain.Payment, order domain.Order) error {
	args := m.Called(ctx, payment, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, companyCode string, limit int, nextToken *string) ([]domain.Order, *string, error) {
	args := m.Called(ctx, companyCode, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Order), returnedNextToken, args.Error(2)
}

// --- Test Suite Setup ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo   *MockOrderRepository
	mockAuditRepo   *MockAuditLogRepository
	mockSequenceSvc *MockSequenceAllocator
	mockCache       *MockCacheInvalidator
	service         portssvc.OrderSvcFacade
	actor           domain.Actor
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)
	suite.mockSequenceSvc = new(MockSequenceAllocator)
	suite.mockCache = new(MockCacheInvalidator)
	suite.service = services.NewOrderService(suite.mockOrderRepo, suite.mockSequenceSvc, suite.mockAuditRepo, suite.mockCache)

	suite.actor = domain.Actor{UserID: uuid.NewString()}

	suite.mockAuditRepo.On("CreateAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCache.On("Invalidate", mock.Anything, mock.Anything).Maybe()
}

func (suite *OrderServiceTestSuite) createRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerID:   uuid.NewString(),
		ItemID:       uuid.NewString(),
		OrderDate:    time.Now(),
		PaymentTerms: "NET30",
		CurrencyCode: "USD",
		Quantity:     decimal.NewFromInt(10),
		Price:        decimal.NewFromInt(100),
		DiscountPct:  decimal.NewFromInt(10),
		TaxPct:       decimal.NewFromInt(5),
	}
}

// --- CreateOrder ---

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockSequenceSvc.On("Allocate", ctx, "salesOrderCode", int64(1)).Return(domain.SequenceRange{First: 42, Last: 42}, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal("SO_000042", order.OrderNumber)
	suite.Equal(int64(42), order.SequenceNo)
	suite.Equal(domain.OrderDraft, order.Status)
	// Derived amounts come from the settlement calculator.
	suite.Equal("100.00", order.DiscountAmt.StringFixed(2))
	suite.Equal("45.00", order.TaxAmount.StringFixed(2))
	suite.Equal("945.00", order.NetAR.StringFixed(2))
	suite.Equal(domain.PaymentPending, order.SettlementStatus)
	suite.mockSequenceSvc.AssertExpectations(suite.T())
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InvalidTerms() {
	ctx := context.Background()
	req := suite.createRequest()
	req.PaymentTerms = "NET90"

	_, err := suite.service.CreateOrder(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidPaymentTerms)
	suite.mockSequenceSvc.AssertNotCalled(suite.T(), "Allocate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NonPositiveInputs() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Quantity = decimal.Zero

	_, err := suite.service.CreateOrder(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSequenceSvc.AssertNotCalled(suite.T(), "Allocate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_SaveFailureReleasesSequence() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockSequenceSvc.On("Allocate", ctx, "salesOrderCode", int64(1)).Return(domain.SequenceRange{First: 43, Last: 43}, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.Anything).Return(assert.AnError).Once()
	suite.mockSequenceSvc.On("Release", ctx, "salesOrderCode", int64(1)).Return(nil).Once()

	_, err := suite.service.CreateOrder(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.mockSequenceSvc.AssertExpectations(suite.T())
}

// --- UpdateOrder ---

func (suite *OrderServiceTestSuite) confirmedOrder() *domain.Order {
	order := &domain.Order{
		OrderID:      uuid.NewString(),
		OrderNumber:  "SO_000042",
		SequenceNo:   42,
		CustomerID:   uuid.NewString(),
		ItemID:       uuid.NewString(),
		OrderDate:    time.Now(),
		PaymentTerms: domain.TermsNet30,
		CurrencyCode: "USD",
		ExchangeRate: decimal.NewFromInt(1),
		Quantity:     decimal.NewFromInt(10),
		Price:        decimal.NewFromInt(100),
		DiscountPct:  decimal.NewFromInt(10),
		TaxPct:       decimal.NewFromInt(5),
		Status:       domain.OrderConfirmed,
	}
	// Derived fields as persisted by create.
	order.DiscountAmt = decimal.RequireFromString("100.00")
	order.TaxAmount = decimal.RequireFromString("45.00")
	order.NetAmtAfterTax = decimal.RequireFromString("945.00")
	order.NetAR = decimal.RequireFromString("945.00")
	order.NetPaymentDue = decimal.RequireFromString("945.00")
	order.SettlementStatus = domain.PaymentPending
	return order
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_FinancialEditRecomputesAndRevertsToDraft() {
	ctx := context.Background()
	order := suite.confirmedOrder()
	newPrice := decimal.NewFromInt(200)

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	updated, err := suite.service.UpdateOrder(ctx, order.OrderID, dto.UpdateOrderRequest{Price: &newPrice}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderDraft, updated.Status, "an accepted edit reverts the order to Draft")
	suite.Nil(updated.InvoiceDate)
	suite.Nil(updated.DueDate)
	// quantity 10 * price 200 = 2000, discount 200, base 1800, tax 90.
	suite.Equal("200.00", updated.DiscountAmt.StringFixed(2))
	suite.Equal("1890.00", updated.NetAR.StringFixed(2))
	suite.Equal("SO_000042", updated.OrderNumber, "document number never changes on edit")
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_NonFinancialEditKeepsSettlement() {
	ctx := context.Background()
	order := suite.confirmedOrder()
	newCustomer := uuid.NewString()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateOrder(ctx, order.OrderID, dto.UpdateOrderRequest{CustomerID: &newCustomer}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(newCustomer, updated.CustomerID)
	suite.Equal("945.00", updated.NetAR.StringFixed(2), "stored settlement untouched by non-financial edits")
	suite.Equal(domain.OrderDraft, updated.Status)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_EmptyRequestIsNoOp() {
	ctx := context.Background()
	order := suite.confirmedOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	updated, err := suite.service.UpdateOrder(ctx, order.OrderID, dto.UpdateOrderRequest{}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderConfirmed, updated.Status, "no changed fields, no Draft revert")
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_NotEditable() {
	ctx := context.Background()
	order := suite.confirmedOrder()
	order.Status = domain.OrderInvoiced

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	newPrice := decimal.NewFromInt(200)
	_, err := suite.service.UpdateOrder(ctx, order.OrderID, dto.UpdateOrderRequest{Price: &newPrice}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrOrderNotEditable)
}

// --- UpdateOrderStatus ---

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_InvoicedStampsDueDate() {
	ctx := context.Background()
	order := suite.confirmedOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateOrderStatus(ctx, order.OrderID, domain.OrderInvoiced, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderInvoiced, updated.Status)
	suite.Require().NotNil(updated.InvoiceDate)
	suite.Require().NotNil(updated.DueDate)
	suite.Equal(updated.InvoiceDate.AddDate(0, 0, 30), *updated.DueDate, "NET30 due 30 days after invoicing")
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_InvalidTransition() {
	ctx := context.Background()
	order := suite.confirmedOrder()
	order.Status = domain.OrderDraft

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.UpdateOrderStatus(ctx, order.OrderID, domain.OrderInvoiced, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

// --- Payments ---

func (suite *OrderServiceTestSuite) invoicedOrder() *domain.Order {
	order := suite.confirmedOrder()
	order.Status = domain.OrderInvoiced
	now := time.Now()
	due := now.AddDate(0, 0, 30)
	order.InvoiceDate = &now
	order.DueDate = &due
	return order
}

func (suite *OrderServiceTestSuite) TestRecordPayment_FullPayment() {
	ctx := context.Background()
	order := suite.invoicedOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("AddPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.AnythingOfType("domain.Order")).Return(nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.RequireFromString("945.00"), PaymentDate: time.Now()}
	updated, err := suite.service.RecordPayment(ctx, order.OrderID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentFull, updated.SettlementStatus)
	suite.Equal("0.00", updated.NetPaymentDue.StringFixed(2))
	suite.Require().Len(updated.Payments, 1)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestRecordPayment_OverpaymentCarriesForward() {
	ctx := context.Background()
	order := suite.invoicedOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("AddPayment", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(1000), PaymentDate: time.Now()}
	updated, err := suite.service.RecordPayment(ctx, order.OrderID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentFullCarryForward, updated.SettlementStatus)
	suite.Equal("55.00", updated.CarryForwardAdvance.StringFixed(2))
}

func (suite *OrderServiceTestSuite) TestRecordPayment_PartialAccumulates() {
	ctx := context.Background()
	order := suite.invoicedOrder()
	order.Payments = []domain.Payment{{PaymentID: uuid.NewString(), OrderID: order.OrderID, Amount: decimal.NewFromInt(400)}}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("AddPayment", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), PaymentDate: time.Now()}
	updated, err := suite.service.RecordPayment(ctx, order.OrderID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPartial, updated.SettlementStatus)
	suite.Equal("445.00", updated.NetPaymentDue.StringFixed(2))
}

func (suite *OrderServiceTestSuite) TestRecordPayment_NotInvoiced() {
	ctx := context.Background()
	order := suite.confirmedOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), PaymentDate: time.Now()}
	_, err := suite.service.RecordPayment(ctx, order.OrderID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOrderNotInvoiced)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "AddPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	req := dto.RecordPaymentRequest{Amount: decimal.Zero, PaymentDate: time.Now()}
	_, err := suite.service.RecordPayment(ctx, uuid.NewString(), req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNonPositiveAmount)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "FindOrderByID", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestRecordPayment_RejectedWhileFailed() {
	ctx := context.Background()
	order := suite.invoicedOrder()
	order.SettlementStatus = domain.PaymentFailed

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), PaymentDate: time.Now()}
	_, err := suite.service.RecordPayment(ctx, order.OrderID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrPaymentFailedState)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "AddPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_RejectedWhileFailed() {
	ctx := context.Background()
	order := suite.confirmedOrder()
	order.SettlementStatus = domain.PaymentFailed

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	newPrice := decimal.NewFromInt(200)
	_, err := suite.service.UpdateOrder(ctx, order.OrderID, dto.UpdateOrderRequest{Price: &newPrice}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentFailedState)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestClearPaymentFailure_RestoresDerivedStatus() {
	ctx := context.Background()
	order := suite.invoicedOrder()
	order.SettlementStatus = domain.PaymentFailed

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.ClearPaymentFailure(ctx, order.OrderID, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, updated.SettlementStatus, "no payments recorded, so the derived status is pending")
	suite.Equal("945.00", updated.NetPaymentDue.StringFixed(2))
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestClearPaymentFailure_NotFailed() {
	ctx := context.Background()
	order := suite.invoicedOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	_, err := suite.service.ClearPaymentFailure(ctx, order.OrderID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrPaymentNotFailed)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_ReinvoicingKeepsInvoiceDate() {
	ctx := context.Background()
	order := suite.invoicedOrder()
	order.Status = domain.OrderAdminMode
	originalInvoiceDate := *order.InvoiceDate
	originalDueDate := *order.DueDate
	admin := domain.Actor{UserID: uuid.NewString(), Elevated: true}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateOrderStatus(ctx, order.OrderID, domain.OrderInvoiced, admin)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderInvoiced, updated.Status)
	suite.Equal(originalInvoiceDate, *updated.InvoiceDate, "invoice date stamped once")
	suite.Equal(originalDueDate, *updated.DueDate)
}

func (suite *OrderServiceTestSuite) TestMarkPaymentFailed() {
	ctx := context.Background()
	order := suite.invoicedOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.MarkPaymentFailed(ctx, order.OrderID, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentFailed, updated.SettlementStatus)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
