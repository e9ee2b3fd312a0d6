package services_test

import (
	"context"
	"testing"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, entityID string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetTaxBaseData(ctx context.Context, entityID string, depreciationCodes []string) (*domain.TaxBaseData, error) {
	args := m.Called(ctx, entityID, depreciationCodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxBaseData), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService
	entityID          string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
	suite.entityID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Success() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.NewFromInt(200)},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountName: "Sales Revenue", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		{AccountID: uuid.NewString(), AccountCode: "6000", AccountName: "Operating Expenses", AccountType: domain.Expense, Debit: decimal.NewFromInt(200), Credit: decimal.Zero},
	}

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.entityID).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.entityID)

	suite.Require().NoError(err)
	suite.Require().NotNil(tb)
	suite.Equal(suite.entityID, tb.EntityID)
	suite.Len(tb.Rows, 3)
	suite.True(tb.TotalDebit.Equal(decimal.NewFromInt(700)))
	suite.True(tb.TotalCredit.Equal(decimal.NewFromInt(700)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Empty() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.entityID).Return([]domain.TrialBalanceRow{}, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.entityID)

	suite.Require().NoError(err)
	suite.Empty(tb.Rows)
	suite.True(tb.TotalDebit.IsZero())
	suite.True(tb.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_DivergedTotals() {
	ctx := context.Background()
	// A ledger where debits != credits means a posting was half-written.
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(499)},
	}

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.entityID).Return(rows, nil).Once()

	_, err := suite.service.TrialBalance(ctx, suite.entityID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConsistency)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepoError() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.entityID).Return(nil, assert.AnError).Once()

	_, err := suite.service.TrialBalance(ctx, suite.entityID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), assert.AnError.Error())
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
