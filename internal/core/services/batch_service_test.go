package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/core/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BatchRepository ---
type MockBatchRepository struct {
	mock.Mock
}

// Ensure MockBatchRepository implements portsrepo.BatchRepositoryFacade
var _ portsrepo.BatchRepositoryFacade = (*MockBatchRepository)(nil)

func (m *MockBatchRepository) CreateBatch(ctx context.Context, batch domain.BatchTransaction) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, companyID, batchID string) (*domain.BatchTransaction, error) {
	args := m.Called(ctx, companyID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchTransaction), args.Error(1)
}

func (m *MockBatchRepository) UpdateBatch(ctx context.Context, batch domain.BatchTransaction) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) RequestCancel(ctx context.Context, companyID, batchID string) error {
	args := m.Called(ctx, companyID, batchID)
	return args.Error(0)
}

func (m *MockBatchRepository) IsCancelRequested(ctx context.Context, batchID string) (bool, error) {
	args := m.Called(ctx, batchID)
	return args.Bool(0), args.Error(1)
}

// --- Mock SequenceService (as used by BatchService) ---
type MockSequenceService struct {
	mock.Mock
}

var _ portssvc.SequenceSvcFacade = (*MockSequenceService)(nil)

func (m *MockSequenceService) NextTransactionNumber(ctx context.Context, companyID string, docType domain.TransactionType, year int) (string, error) {
	args := m.Called(ctx, companyID, docType, year)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceService) NextBatchNumber(ctx context.Context, companyID string, year int) (string, error) {
	args := m.Called(ctx, companyID, year)
	return args.String(0), args.Error(1)
}

// --- Mock TransactionService (as used by BatchService) ---
type MockTransactionService struct {
	mock.Mock
}

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

type BatchServiceTestSuite struct {
	suite.Suite
	mockBatchRepo *MockBatchRepository
	mockTxnRepo   *MockTransactionRepository
	mockTxnSvc    *MockTransactionService
	mockSeqSvc    *MockSequenceService
	service       portssvc.BatchSvcFacade
	companyID     string
	userID        string
}

func (suite *BatchServiceTestSuite) SetupTest() {
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockTxnSvc = new(MockTransactionService)
	suite.mockSeqSvc = new(MockSequenceService)
	suite.service = services.NewBatchService(suite.mockBatchRepo, suite.mockTxnRepo, suite.mockTxnSvc, suite.mockSeqSvc, 2)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *BatchServiceTestSuite) batchRequest(descriptions ...string) dto.CreateBatchRequest {
	req := dto.CreateBatchRequest{Name: "March import"}
	for _, desc := range descriptions {
		req.Transactions = append(req.Transactions, dto.CreateTransactionRequest{
			TransactionType: domain.JournalEntry,
			TransactionDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Description:     desc,
			CurrencyCode:    "USD",
		})
	}
	return req
}

// expectFinalUpdate wires the UpdateBatch mock and returns a channel that
// receives the terminal batch record once background processing finishes.
func (suite *BatchServiceTestSuite) expectFinalUpdate() <-chan domain.BatchTransaction {
	final := make(chan domain.BatchTransaction, 1)
	suite.mockBatchRepo.On("UpdateBatch", mock.Anything, mock.AnythingOfType("domain.BatchTransaction")).
		Return(nil).
		Run(func(args mock.Arguments) {
			batch := args.Get(1).(domain.BatchTransaction)
			if batch.Status != domain.BatchProcessing {
				final <- batch
			}
		})
	return final
}

func (suite *BatchServiceTestSuite) waitForFinal(final <-chan domain.BatchTransaction) domain.BatchTransaction {
	select {
	case batch := <-final:
		return batch
	case <-time.After(2 * time.Second):
		suite.FailNow("batch processing did not finish in time")
		return domain.BatchTransaction{}
	}
}

func (suite *BatchServiceTestSuite) matchDescription(desc string) interface{} {
	return mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.Description == desc
	})
}

// --- Test Cases ---

func (suite *BatchServiceTestSuite) TestCreateBatch_AllItemsSucceed() {
	ctx := context.Background()
	req := suite.batchRequest("rent", "utilities", "payroll")

	suite.mockSeqSvc.On("NextBatchNumber", ctx, suite.companyID, mock.AnythingOfType("int")).
		Return("BAT2025000001", nil).Once()
	suite.mockBatchRepo.On("CreateBatch", ctx, mock.AnythingOfType("domain.BatchTransaction")).Return(nil).Once()
	suite.mockBatchRepo.On("IsCancelRequested", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	final := suite.expectFinalUpdate()

	for _, desc := range []string{"rent", "utilities", "payroll"} {
		suite.mockTxnSvc.On("CreateTransactionForBatch", mock.Anything, suite.companyID, suite.matchDescription(desc), suite.userID, mock.AnythingOfType("string")).
			Return(&domain.Transaction{TransactionID: uuid.NewString(), TotalAmount: decimal.NewFromInt(100)}, nil).Once()
	}

	batch, err := suite.service.CreateBatch(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.BatchPending, batch.Status)
	suite.Equal("BAT2025000001", batch.BatchNumber)
	suite.Equal(3, batch.TotalTransactions)

	finished := suite.waitForFinal(final)
	suite.Equal(domain.BatchCompleted, finished.Status)
	suite.Equal(3, finished.SuccessCount)
	suite.True(finished.TotalAmount.Equal(decimal.NewFromInt(300)))
	suite.Empty(finished.ErrorMessage)
	suite.NotNil(finished.ProcessingStartedAt)
	suite.NotNil(finished.ProcessingCompletedAt)
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestCreateBatch_ItemFailureAggregated() {
	ctx := context.Background()
	req := suite.batchRequest("rent", "broken", "payroll", "insurance")

	suite.mockSeqSvc.On("NextBatchNumber", ctx, suite.companyID, mock.AnythingOfType("int")).
		Return("BAT2025000002", nil).Once()
	suite.mockBatchRepo.On("CreateBatch", ctx, mock.AnythingOfType("domain.BatchTransaction")).Return(nil).Once()
	suite.mockBatchRepo.On("IsCancelRequested", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	final := suite.expectFinalUpdate()

	for _, desc := range []string{"rent", "payroll", "insurance"} {
		suite.mockTxnSvc.On("CreateTransactionForBatch", mock.Anything, suite.companyID, suite.matchDescription(desc), suite.userID, mock.AnythingOfType("string")).
			Return(&domain.Transaction{TransactionID: uuid.NewString(), TotalAmount: decimal.NewFromInt(100)}, nil).Once()
	}
	suite.mockTxnSvc.On("CreateTransactionForBatch", mock.Anything, suite.companyID, suite.matchDescription("broken"), suite.userID, mock.AnythingOfType("string")).
		Return(nil, assert.AnError).Once()

	_, err := suite.service.CreateBatch(ctx, suite.companyID, req, suite.userID)
	suite.Require().NoError(err)

	finished := suite.waitForFinal(final)
	suite.Equal(domain.BatchFailed, finished.Status)
	suite.Equal(3, finished.SuccessCount)
	suite.True(finished.TotalAmount.Equal(decimal.NewFromInt(300)))
	suite.Contains(finished.ErrorMessage, "item 1:")
	suite.Contains(finished.ErrorMessage, assert.AnError.Error())
	suite.mockTxnSvc.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestCreateBatch_CancelRequested() {
	ctx := context.Background()
	req := suite.batchRequest("rent", "utilities")

	suite.mockSeqSvc.On("NextBatchNumber", ctx, suite.companyID, mock.AnythingOfType("int")).
		Return("BAT2025000003", nil).Once()
	suite.mockBatchRepo.On("CreateBatch", ctx, mock.AnythingOfType("domain.BatchTransaction")).Return(nil).Once()
	// Cancellation lands before the first item is dispatched.
	suite.mockBatchRepo.On("IsCancelRequested", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)
	final := suite.expectFinalUpdate()

	_, err := suite.service.CreateBatch(ctx, suite.companyID, req, suite.userID)
	suite.Require().NoError(err)

	finished := suite.waitForFinal(final)
	suite.Equal(domain.BatchCancelled, finished.Status)
	suite.Equal(0, finished.SuccessCount)
	suite.mockTxnSvc.AssertNotCalled(suite.T(), "CreateTransactionForBatch",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BatchServiceTestSuite) TestGetBatch_IncludesTransactions() {
	ctx := context.Background()
	batchID := uuid.NewString()
	stored := &domain.BatchTransaction{BatchID: batchID, CompanyID: suite.companyID, Status: domain.BatchCompleted}
	txns := []domain.Transaction{{TransactionID: uuid.NewString()}, {TransactionID: uuid.NewString()}}

	suite.mockBatchRepo.On("FindBatchByID", ctx, suite.companyID, batchID).Return(stored, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByBatchID", ctx, suite.companyID, batchID).Return(txns, nil).Once()

	batch, returned, err := suite.service.GetBatch(ctx, suite.companyID, batchID)

	suite.Require().NoError(err)
	suite.Equal(batchID, batch.BatchID)
	suite.Len(returned, 2)
	suite.mockBatchRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestCancelBatch_Processing() {
	ctx := context.Background()
	batchID := uuid.NewString()
	stored := &domain.BatchTransaction{BatchID: batchID, CompanyID: suite.companyID, Status: domain.BatchProcessing}

	suite.mockBatchRepo.On("FindBatchByID", ctx, suite.companyID, batchID).Return(stored, nil).Once()
	suite.mockBatchRepo.On("RequestCancel", ctx, suite.companyID, batchID).Return(nil).Once()

	err := suite.service.CancelBatch(ctx, suite.companyID, batchID)

	suite.Require().NoError(err)
	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestCancelBatch_AlreadyFinished() {
	ctx := context.Background()
	batchID := uuid.NewString()
	stored := &domain.BatchTransaction{BatchID: batchID, CompanyID: suite.companyID, Status: domain.BatchCompleted}

	suite.mockBatchRepo.On("FindBatchByID", ctx, suite.companyID, batchID).Return(stored, nil).Once()

	err := suite.service.CancelBatch(ctx, suite.companyID, batchID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "RequestCancel", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestBatchService(t *testing.T) {
	suite.Run(t, new(BatchServiceTestSuite))
}
