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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

// Ensure MockReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountBalance(ctx context.Context, companyID, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, companyID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Test Suite ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade
	companyID         string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)
	suite.companyID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_NetsAndCloses() {
	ctx := context.Background()
	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset,
			DebitBalance: decimal.NewFromInt(300), CreditBalance: decimal.NewFromInt(100)},
		{AccountID: uuid.NewString(), AccountCode: "2000", AccountType: domain.Liability,
			DebitBalance: decimal.NewFromInt(50), CreditBalance: decimal.NewFromInt(150)},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountType: domain.Revenue,
			DebitBalance: decimal.Zero, CreditBalance: decimal.NewFromInt(100)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.companyID, asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)

	// The asset account nets 200 on the debit side.
	suite.True(report.Rows[0].DebitBalance.Equal(decimal.NewFromInt(200)))
	suite.True(report.Rows[0].CreditBalance.IsZero())
	suite.True(report.Rows[0].NetBalance.Equal(decimal.NewFromInt(200)))

	// The liability account nets 100 on the credit side.
	suite.True(report.Rows[1].DebitBalance.IsZero())
	suite.True(report.Rows[1].CreditBalance.Equal(decimal.NewFromInt(100)))
	suite.True(report.Rows[1].NetBalance.Equal(decimal.NewFromInt(-100)))

	// A ledger built from balanced transactions closes.
	suite.True(report.TotalDebit.Equal(report.TotalCredit))
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(200)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Empty() {
	ctx := context.Background()
	asOf := time.Now()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.companyID, asOf).
		Return([]domain.TrialBalanceRow{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, asOf)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.TotalDebit.IsZero())
	suite.True(report.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_Success() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID}
	expected := &domain.AccountBalance{
		AccountID:   account.AccountID,
		DebitTotal:  decimal.NewFromInt(300),
		CreditTotal: decimal.NewFromInt(120),
		Net:         decimal.NewFromInt(180),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, account.AccountID).
		Return(&account, nil).Once()
	suite.mockReportingRepo.On("GetAccountBalance", ctx, suite.companyID, account.AccountID, (*time.Time)(nil)).
		Return(expected, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.companyID, account.AccountID, nil)

	suite.Require().NoError(err)
	suite.True(balance.Net.Equal(decimal.NewFromInt(180)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AccountBalance(ctx, suite.companyID, accountID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetAccountBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
