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

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/domain"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/core/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/handlers"
	"github.com/finbooks/ledger-engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CreateTransactionForBatch(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID, batchID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, req, creatorUserID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, companyID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) PostTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ReverseTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CancelTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) VoidTransaction(ctx context.Context, companyID, transactionID, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, companyID, transactionID string) error {
	args := m.Called(ctx, companyID, transactionID)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockTxnSvc *MockTransactionService
	jwtSecret  string
	companyID  string
	userID     string
}

// testClaims mirrors the token shape the auth middleware expects.
type testClaims struct {
	CompanyID string `json:"companyID"`
	jwt.RegisteredClaims
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID, companyID string) string {
	claims := testClaims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockTxnSvc = new(MockTransactionService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keeps swagger routes out of the test router
	}
	container := &portssvc.ServiceContainer{Transaction: suite.mockTxnSvc}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *TransactionHandlerTestSuite) doRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *TransactionHandlerTestSuite) createRequestBody() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TransactionType: domain.JournalEntry,
		TransactionDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:     "Office supplies",
		CurrencyCode:    "USD",
		Entries: []dto.CreateEntryRequest{
			{AccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(100)},
		},
	}
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	body := suite.createRequestBody()
	token := suite.generateTestToken(suite.userID, suite.companyID)

	created := &domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "JE2025000001",
		CompanyID:         suite.companyID,
		TransactionType:   domain.JournalEntry,
		Status:            domain.Draft,
		TotalAmount:       decimal.NewFromInt(100),
	}
	suite.mockTxnSvc.On("CreateTransaction", mock.Anything, suite.companyID,
		mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).Return(created, nil).Once()

	rec := suite.doRequest(http.MethodPost, "/api/v1/transactions", body, token)

	suite.Equal(http.StatusCreated, rec.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("JE2025000001", resp.TransactionNumber)
	suite.Equal(string(domain.Draft), resp.Status)
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_NoToken() {
	rec := suite.doRequest(http.MethodPost, "/api/v1/transactions", suite.createRequestBody(), "")

	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.mockTxnSvc.AssertNotCalled(suite.T(), "CreateTransaction",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationFailure() {
	body := suite.createRequestBody()
	token := suite.generateTestToken(suite.userID, suite.companyID)

	result := &domain.ValidationResult{}
	result.AddError("entries", domain.CodeUnbalancedEntries, "debits do not equal credits", "10")
	suite.mockTxnSvc.On("CreateTransaction", mock.Anything, suite.companyID,
		mock.AnythingOfType("dto.CreateTransactionRequest"), suite.userID).
		Return(nil, &services.ValidationFailedError{Result: result}).Once()

	rec := suite.doRequest(http.MethodPost, "/api/v1/transactions", body, token)

	suite.Equal(http.StatusBadRequest, rec.Code)
	var resp dto.ValidationFailureResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("VALIDATION_FAILED", resp.Code)
	suite.Require().Len(resp.Errors, 1)
	suite.Equal(domain.CodeUnbalancedEntries, resp.Errors[0].Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()
	token := suite.generateTestToken(suite.userID, suite.companyID)

	suite.mockTxnSvc.On("GetTransactionByID", mock.Anything, suite.companyID, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	rec := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%s", transactionID), nil, token)

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *TransactionHandlerTestSuite) TestPostTransaction_Conflict() {
	transactionID := uuid.NewString()
	token := suite.generateTestToken(suite.userID, suite.companyID)

	conflict := &services.ErrStateConflict{
		TransactionID: transactionID,
		Status:        domain.Posted,
		Operation:     "post",
	}
	suite.mockTxnSvc.On("PostTransaction", mock.Anything, suite.companyID, transactionID, suite.userID).
		Return(nil, conflict).Once()

	rec := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/transactions/%s/post", transactionID), nil, token)

	suite.Equal(http.StatusConflict, rec.Code)
	suite.Contains(rec.Body.String(), "ALREADY_POSTED")
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NoContent() {
	transactionID := uuid.NewString()
	token := suite.generateTestToken(suite.userID, suite.companyID)

	suite.mockTxnSvc.On("DeleteTransaction", mock.Anything, suite.companyID, transactionID).
		Return(nil).Once()

	rec := suite.doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%s", transactionID), nil, token)

	suite.Equal(http.StatusNoContent, rec.Code)
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
