package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/handlers"
	"github.com/finbooks/erp_ledger_app/internal/platform/cache"
	"github.com/finbooks/erp_ledger_app/pkg/config"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) UpdateJournalStatus(ctx context.Context, journalID string, target domain.JournalStatus, actor domain.Actor) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, target, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ReverseJournal(ctx context.Context, journalID string, actor domain.Actor) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) SubmitForApproval(ctx context.Context, journalID string, assignees []string, actor domain.Actor) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, assignees, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) RecordApprovalDecision(ctx context.Context, journalID string, req dto.ApprovalDecisionRequest, actor domain.Actor) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string, elevated bool) string {
	claims := jwt.MapClaims{
		"iss": "ledger-test",
		"sub": userID,
		"exp": jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		"iat": jwt.NewNumericDate(time.Now()),
	}
	if elevated {
		claims["elevated"] = true
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockJournalService = new(MockJournalService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		RateLimit:    "1000-S",
		IsProduction: true, // no swagger routes in the test router
	}
	container := portssvc.ServiceContainer{Journal: suite.mockJournalService}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &container, cache.New(time.Minute))
}

func (suite *JournalHandlerTestSuite) doRequest(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func postedJournalFixture() *domain.Journal {
	return &domain.Journal{
		JournalID:     uuid.NewString(),
		JournalNumber: "GJ-000007",
		JournalDate:   time.Now(),
		Description:   "monthly accrual",
		CurrencyCode:  "USD",
		Status:        domain.JournalPosted,
		Amount:        decimal.RequireFromString("100.00"),
	}
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateJournal_Success() {
	userID := uuid.NewString()
	expected := postedJournalFixture()
	expected.Status = domain.JournalDraft

	suite.mockJournalService.On("CreateJournal",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
			return req.Description == "monthly accrual" && len(req.Lines) == 2
		}),
		mock.MatchedBy(func(actor domain.Actor) bool {
			return actor.UserID == userID && !actor.Elevated
		}),
	).Return(expected, nil).Once()

	debitAccount := uuid.NewString()
	creditAccount := uuid.NewString()
	body := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "monthly accrual",
		CurrencyCode: "USD",
		Lines: []dto.CreateLedgerLineRequest{
			{Sequence: 1, AccountID: &debitAccount, Debit: decimal.NewFromInt(100), ExchangeRate: decimal.NewFromInt(1)},
			{Sequence: 2, AccountID: &creditAccount, Credit: decimal.NewFromInt(100), ExchangeRate: decimal.NewFromInt(1)},
		},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/journals", body, suite.generateTestToken(userID, false))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("GJ-000007", resp.JournalNumber)
	suite.Equal(domain.JournalDraft, resp.Status)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_MissingToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/journals", dto.CreateJournalRequest{}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_TooFewLines() {
	debitAccount := uuid.NewString()
	body := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "one-legged",
		CurrencyCode: "USD",
		Lines: []dto.CreateLedgerLineRequest{
			{Sequence: 1, AccountID: &debitAccount, Debit: decimal.NewFromInt(100)},
		},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/journals", body, suite.generateTestToken(uuid.NewString(), false))

	suite.Equal(http.StatusBadRequest, w.Code, "binding requires at least two lines")
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestUpdateJournalStatus_Conflict() {
	journalID := uuid.NewString()

	suite.mockJournalService.On("UpdateJournalStatus", mock.Anything, journalID, domain.JournalPosted, mock.Anything).
		Return(nil, fmt.Errorf("%w: transition not allowed", apperrors.ErrConflict)).Once()

	body := dto.UpdateJournalStatusRequest{Status: string(domain.JournalPosted)}
	w := suite.doRequest(http.MethodPut, "/api/v1/journals/"+journalID+"/status", body, suite.generateTestToken(uuid.NewString(), false))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestUpdateJournalStatus_ElevatedClaimReachesService() {
	userID := uuid.NewString()
	journalID := uuid.NewString()
	expected := postedJournalFixture()
	expected.Status = domain.JournalAdminMode

	suite.mockJournalService.On("UpdateJournalStatus", mock.Anything, journalID, domain.JournalAdminMode,
		mock.MatchedBy(func(actor domain.Actor) bool {
			return actor.UserID == userID && actor.Elevated
		}),
	).Return(expected, nil).Once()

	body := dto.UpdateJournalStatusRequest{Status: string(domain.JournalAdminMode)}
	w := suite.doRequest(http.MethodPut, "/api/v1/journals/"+journalID+"/status", body, suite.generateTestToken(userID, true))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestReverseJournal_Success() {
	journalID := uuid.NewString()
	reversing := postedJournalFixture()
	reversing.JournalNumber = "GJ-000008"

	suite.mockJournalService.On("ReverseJournal", mock.Anything, journalID, mock.Anything).
		Return(reversing, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journals/"+journalID+"/reverse", nil, suite.generateTestToken(uuid.NewString(), false))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("GJ-000008", resp.JournalNumber)
}

func (suite *JournalHandlerTestSuite) TestRecordApprovalDecision_Forbidden() {
	journalID := uuid.NewString()

	suite.mockJournalService.On("RecordApprovalDecision", mock.Anything, journalID, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: not the step assignee", apperrors.ErrForbidden)).Once()

	body := dto.ApprovalDecisionRequest{Step: 1, Decision: "APPROVED"}
	w := suite.doRequest(http.MethodPost, "/api/v1/journals/"+journalID+"/decision", body, suite.generateTestToken(uuid.NewString(), false))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListJournals_SecondReadServedFromCache() {
	token := suite.generateTestToken(uuid.NewString(), false)
	resp := &dto.ListJournalsResponse{
		Journals: []dto.JournalResponse{{JournalID: uuid.NewString(), JournalNumber: "GJ-000001"}},
	}

	suite.mockJournalService.On("ListJournals", mock.Anything, mock.Anything).Return(resp, nil).Once()

	first := suite.doRequest(http.MethodGet, "/api/v1/journals?limit=10", nil, token)
	suite.Equal(http.StatusOK, first.Code)

	second := suite.doRequest(http.MethodGet, "/api/v1/journals?limit=10", nil, token)
	suite.Equal(http.StatusOK, second.Code)
	suite.JSONEq(first.Body.String(), second.Body.String())

	// One service call for two reads; the page cache answered the second.
	suite.mockJournalService.AssertNumberOfCalls(suite.T(), "ListJournals", 1)
}

func (suite *JournalHandlerTestSuite) TestGetJournal_NotFound() {
	journalID := uuid.NewString()

	suite.mockJournalService.On("GetJournalByID", mock.Anything, journalID).
		Return(nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journals/"+journalID, nil, suite.generateTestToken(uuid.NewString(), false))

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
