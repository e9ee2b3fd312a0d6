package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portsrepo "github.com/fintally/fintally_backend/internal/core/ports/repositories"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/core/services"
	"github.com/fintally/fintally_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

var _ portsrepo.AssetRepositoryFacade = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, entityID, assetID string) (*domain.FixedAsset, error) {
	args := m.Called(ctx, entityID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) ListAssets(ctx context.Context, entityID string) ([]domain.FixedAsset, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) MarkDisposed(ctx context.Context, entityID, assetID string, disposalDate time.Time, sellingPrice decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entityID, assetID, disposalDate, sellingPrice, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock TransactionPoster ---
type MockTransactionPoster struct {
	mock.Mock
}

var _ portssvc.TransactionPosterSvc = (*MockTransactionPoster)(nil)

func (m *MockTransactionPoster) PostTransaction(ctx context.Context, entityID string, req dto.CreateTransactionRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, entityID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockTransactionPoster) GetTransaction(ctx context.Context, entityID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, entityID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionPoster) ListTransactions(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, entityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

// --- Test Suite Setup ---
type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo  *MockAssetRepository
	mockPostingSvc *MockTransactionPoster
	service        portssvc.AssetSvcFacade
	entityID       string
	actorID        string
	machine        domain.FixedAsset
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockPostingSvc = new(MockTransactionPoster)
	suite.service = services.NewAssetService(suite.mockAssetRepo, suite.mockPostingSvc)

	suite.entityID = uuid.NewString()
	suite.actorID = uuid.NewString()

	// 12000 at 12% per year depreciates 120 per whole month.
	suite.machine = domain.FixedAsset{
		AssetID:       uuid.NewString(),
		EntityID:      suite.entityID,
		Name:          "CNC machine",
		Cost:          decimal.NewFromInt(12000),
		AnnualRatePct: decimal.NewFromInt(12),
		PurchaseDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:        domain.AssetActive,
	}
}

// --- CreateAsset ---

func (suite *AssetServiceTestSuite) TestCreateAsset_Success() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:          "Delivery van",
		Cost:          decimal.NewFromInt(30000),
		AnnualRatePct: decimal.NewFromInt(20),
		PurchaseDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAssetRepo.On("SaveAsset", ctx, mock.AnythingOfType("domain.FixedAsset")).Return(nil).Once()

	asset, err := suite.service.CreateAsset(ctx, suite.entityID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(asset)
	suite.NotEmpty(asset.AssetID)
	suite.Equal(domain.AssetActive, asset.Status)
	suite.Equal(suite.actorID, asset.CreatedBy)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestCreateAsset_NonPositiveCost() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:          "Free chair",
		Cost:          decimal.Zero,
		AnnualRatePct: decimal.NewFromInt(10),
		PurchaseDate:  time.Now(),
	}

	_, err := suite.service.CreateAsset(ctx, suite.entityID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "SaveAsset", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestCreateAsset_RateOutOfRange() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:          "Instant write-off",
		Cost:          decimal.NewFromInt(100),
		AnnualRatePct: decimal.NewFromInt(120),
		PurchaseDate:  time.Now(),
	}

	_, err := suite.service.CreateAsset(ctx, suite.entityID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- DisposeAsset ---

func (suite *AssetServiceTestSuite) TestDisposeAsset_Gain() {
	ctx := context.Background()
	// 12 whole months accrued: 1440. NBV 10560, sold for 11000 -> gain 440.
	disposalDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.DisposeAssetRequest{
		DisposalDate: disposalDate,
		SellingPrice: decimal.NewFromInt(11000),
	}
	postedResult := &domain.PostingResult{
		Transaction: domain.Transaction{TransactionID: "disposal-" + suite.machine.AssetID},
		Entry:       domain.JournalEntry{EntryID: uuid.NewString()},
		Created:     true,
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, suite.machine.AssetID).Return(&suite.machine, nil).Once()

	var postedReq dto.CreateTransactionRequest
	suite.mockPostingSvc.On("PostTransaction", ctx, suite.entityID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.actorID).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(2).(dto.CreateTransactionRequest)
		}).Return(postedResult, nil).Once()
	suite.mockAssetRepo.On("MarkDisposed", ctx, suite.entityID, suite.machine.AssetID, disposalDate, req.SellingPrice, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.DisposeAsset(ctx, suite.entityID, suite.machine.AssetID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.AccruedDepreciation.Equal(decimal.NewFromInt(1440)), "got %s", result.AccruedDepreciation)
	suite.True(result.NetBookValue.Equal(decimal.NewFromInt(10560)))
	suite.True(result.ProfitLoss.Equal(decimal.NewFromInt(440)))
	suite.Equal(domain.AssetDisposed, result.Asset.Status)
	suite.Equal(postedResult.Entry.EntryID, result.JournalEntryID)

	suite.Equal("asset_disposal_gain", postedReq.Type)
	suite.True(postedReq.Amount.Equal(decimal.NewFromInt(440)))
	suite.Require().NotNil(postedReq.TransactionID)
	suite.Equal("disposal-"+suite.machine.AssetID, *postedReq.TransactionID)

	suite.mockAssetRepo.AssertExpectations(suite.T())
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_Loss() {
	ctx := context.Background()
	// NBV 10560, sold for 10000 -> loss of 560 posted as a positive amount.
	disposalDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.DisposeAssetRequest{
		DisposalDate: disposalDate,
		SellingPrice: decimal.NewFromInt(10000),
	}
	postedResult := &domain.PostingResult{
		Transaction: domain.Transaction{TransactionID: "disposal-" + suite.machine.AssetID},
		Entry:       domain.JournalEntry{EntryID: uuid.NewString()},
		Created:     true,
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, suite.machine.AssetID).Return(&suite.machine, nil).Once()

	var postedReq dto.CreateTransactionRequest
	suite.mockPostingSvc.On("PostTransaction", ctx, suite.entityID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.actorID).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(2).(dto.CreateTransactionRequest)
		}).Return(postedResult, nil).Once()
	suite.mockAssetRepo.On("MarkDisposed", ctx, suite.entityID, suite.machine.AssetID, disposalDate, req.SellingPrice, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.DisposeAsset(ctx, suite.entityID, suite.machine.AssetID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(result.ProfitLoss.Equal(decimal.NewFromInt(-560)))
	suite.Equal("asset_disposal_loss", postedReq.Type)
	suite.True(postedReq.Amount.Equal(decimal.NewFromInt(560)))
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_AtBookValuePostsNothing() {
	ctx := context.Background()
	disposalDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.DisposeAssetRequest{
		DisposalDate: disposalDate,
		SellingPrice: decimal.NewFromInt(10560),
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, suite.machine.AssetID).Return(&suite.machine, nil).Once()
	suite.mockAssetRepo.On("MarkDisposed", ctx, suite.entityID, suite.machine.AssetID, disposalDate, req.SellingPrice, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.DisposeAsset(ctx, suite.entityID, suite.machine.AssetID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(result.ProfitLoss.IsZero())
	suite.Empty(result.JournalEntryID)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAssetRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_FullyDepreciated() {
	ctx := context.Background()
	// 20% per year from 2018: accrued caps at cost, NBV 0, any price is a gain.
	oldAsset := suite.machine
	oldAsset.AnnualRatePct = decimal.NewFromInt(20)
	oldAsset.PurchaseDate = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	disposalDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	req := dto.DisposeAssetRequest{
		DisposalDate: disposalDate,
		SellingPrice: decimal.NewFromInt(500),
	}
	postedResult := &domain.PostingResult{
		Transaction: domain.Transaction{TransactionID: "disposal-" + oldAsset.AssetID},
		Entry:       domain.JournalEntry{EntryID: uuid.NewString()},
		Created:     true,
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, oldAsset.AssetID).Return(&oldAsset, nil).Once()

	var postedReq dto.CreateTransactionRequest
	suite.mockPostingSvc.On("PostTransaction", ctx, suite.entityID, mock.AnythingOfType("dto.CreateTransactionRequest"), suite.actorID).
		Run(func(args mock.Arguments) {
			postedReq = args.Get(2).(dto.CreateTransactionRequest)
		}).Return(postedResult, nil).Once()
	suite.mockAssetRepo.On("MarkDisposed", ctx, suite.entityID, oldAsset.AssetID, disposalDate, req.SellingPrice, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.DisposeAsset(ctx, suite.entityID, oldAsset.AssetID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(result.AccruedDepreciation.Equal(oldAsset.Cost))
	suite.True(result.NetBookValue.IsZero())
	suite.True(result.ProfitLoss.Equal(decimal.NewFromInt(500)))
	suite.Equal("asset_disposal_gain", postedReq.Type)
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_AlreadyDisposed() {
	ctx := context.Background()
	disposed := suite.machine
	disposed.Status = domain.AssetDisposed
	req := dto.DisposeAssetRequest{
		DisposalDate: time.Now(),
		SellingPrice: decimal.NewFromInt(1000),
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, disposed.AssetID).Return(&disposed, nil).Once()

	_, err := suite.service.DisposeAsset(ctx, suite.entityID, disposed.AssetID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "MarkDisposed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_DateBeforePurchase() {
	ctx := context.Background()
	req := dto.DisposeAssetRequest{
		DisposalDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		SellingPrice: decimal.NewFromInt(1000),
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, suite.machine.AssetID).Return(&suite.machine, nil).Once()

	_, err := suite.service.DisposeAsset(ctx, suite.entityID, suite.machine.AssetID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_NegativeSellingPrice() {
	ctx := context.Background()
	req := dto.DisposeAssetRequest{
		DisposalDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		SellingPrice: decimal.NewFromInt(-100),
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, suite.machine.AssetID).Return(&suite.machine, nil).Once()

	_, err := suite.service.DisposeAsset(ctx, suite.entityID, suite.machine.AssetID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AssetServiceTestSuite) TestDisposeAsset_PostingFails() {
	ctx := context.Background()
	req := dto.DisposeAssetRequest{
		DisposalDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		SellingPrice: decimal.NewFromInt(11000),
	}

	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.entityID, suite.machine.AssetID).Return(&suite.machine, nil).Once()
	suite.mockPostingSvc.On("PostTransaction", ctx, suite.entityID, mock.Anything, suite.actorID).Return(nil, assert.AnError).Once()

	_, err := suite.service.DisposeAsset(ctx, suite.entityID, suite.machine.AssetID, req, suite.actorID)

	suite.Require().Error(err)
	// The asset stays ACTIVE when the gain could not be booked.
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "MarkDisposed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAssetService(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
