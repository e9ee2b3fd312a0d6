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

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/dto"
	"github.com/fintally/fintally_backend/internal/handlers"
	"github.com/fintally/fintally_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostTransaction(ctx context.Context, entityID string, req dto.CreateTransactionRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, entityID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockPostingService) GetTransaction(ctx context.Context, entityID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, entityID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) ListTransactions(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
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

func (m *MockPostingService) CreateEntry(ctx context.Context, entityID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) GetEntry(ctx context.Context, entityID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) ListEntries(ctx context.Context, entityID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, entityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockPostingService) UpdateEntry(ctx context.Context, entityID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) DeleteEntry(ctx context.Context, entityID string, entryID string) error {
	args := m.Called(ctx, entityID, entryID)
	return args.Error(0)
}

func (m *MockPostingService) PostEntry(ctx context.Context, entityID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entityID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPostingService *MockPostingService
	entityID           string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockPostingService = new(MockPostingService)
	suite.entityID = uuid.NewString()

	v1 := suite.router.Group("/api/v1/entities/:entityID", middleware.ActorResolutionMiddleware())
	handlers.RegisterTransactionRoutes(v1, suite.mockPostingService)
}

func (suite *TransactionHandlerTestSuite) postJSON(url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Created() {
	amount := decimal.NewFromInt(250)
	txnID := uuid.NewString()
	entryID := uuid.NewString()
	result := &domain.PostingResult{
		Transaction: domain.Transaction{
			TransactionID: txnID,
			EntityID:      suite.entityID,
			Type:          "cash_sale",
			Amount:        amount,
			Date:          time.Now(),
		},
		Entry: domain.JournalEntry{
			EntryID:       entryID,
			EntityID:      suite.entityID,
			TransactionID: &txnID,
			Status:        domain.Posted,
			Amount:        amount,
		},
		DebitAccount:  domain.Account{Code: "1000", Name: "Cash"},
		CreditAccount: domain.Account{Code: "4000", Name: "Sales Revenue"},
		Created:       true,
	}

	// No X-Actor-ID header: the middleware falls back to "system".
	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.entityID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Type == "cash_sale" && req.Amount.Equal(amount)
		}), "system").Return(result, nil).Once()

	body := gin.H{"type": "cash_sale", "amount": "250", "date": time.Now().Format(time.RFC3339)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/entities/%s/transactions", suite.entityID), body, nil)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CreateTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Created)
	suite.Equal(txnID, resp.Transaction.TransactionID)
	suite.Equal(entryID, resp.Journal.EntryID)
	suite.Equal("1000", resp.Suggested.DebitAccountCode)
	suite.Equal("4000", resp.Suggested.CreditAccountCode)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ReplayReturnsOK() {
	txnID := "invoice-2026-0042"
	result := &domain.PostingResult{
		Transaction: domain.Transaction{TransactionID: txnID, EntityID: suite.entityID, Type: "cash_sale", Amount: decimal.NewFromInt(100)},
		Entry:       domain.JournalEntry{EntryID: uuid.NewString(), TransactionID: &txnID, Status: domain.Posted},
		Created:     false,
	}

	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.entityID, mock.Anything, "system").Return(result, nil).Once()

	body := gin.H{"transactionID": txnID, "type": "cash_sale", "amount": "100", "date": time.Now().Format(time.RFC3339)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/entities/%s/transactions", suite.entityID), body, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CreateTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Created)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ActorHeaderForwarded() {
	actorID := uuid.NewString()
	result := &domain.PostingResult{
		Transaction: domain.Transaction{TransactionID: uuid.NewString()},
		Entry:       domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted},
		Created:     true,
	}

	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.entityID, mock.Anything, actorID).Return(result, nil).Once()

	body := gin.H{"type": "expense", "amount": "42", "date": time.Now().Format(time.RFC3339)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/entities/%s/transactions", suite.entityID), body, map[string]string{"X-Actor-ID": actorID})

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingType() {
	body := gin.H{"amount": "100", "date": time.Now().Format(time.RFC3339)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/entities/%s/transactions", suite.entityID), body, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MappingNotFound() {
	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.entityID, mock.Anything, "system").
		Return(nil, apperrors.ErrMappingNotFound).Once()

	body := gin.H{"type": "crypto_airdrop", "amount": "100", "date": time.Now().Format(time.RFC3339)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/entities/%s/transactions", suite.entityID), body, nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_AccountNotConfigured() {
	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.entityID, mock.Anything, "system").
		Return(nil, fmt.Errorf("%w: account code 1000", apperrors.ErrAccountNotConfigured)).Once()

	body := gin.H{"type": "cash_sale", "amount": "100", "date": time.Now().Format(time.RFC3339)}
	w := suite.postJSON(fmt.Sprintf("/api/v1/entities/%s/transactions", suite.entityID), body, nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()
	suite.mockPostingService.On("GetTransaction", mock.Anything, suite.entityID, txnID).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/entities/%s/transactions/%s", suite.entityID, txnID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), EntityID: suite.entityID, Type: "cash_sale", Amount: decimal.NewFromInt(100), Date: time.Now()},
		{TransactionID: uuid.NewString(), EntityID: suite.entityID, Type: "expense", Amount: decimal.NewFromInt(40), Date: time.Now().Add(-time.Hour)},
	}

	suite.mockPostingService.On("ListTransactions", mock.Anything, suite.entityID, 10, (*string)(nil)).Return(txns, "next-page-token", nil).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/entities/%s/transactions?limit=10", suite.entityID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page-token", *resp.NextToken)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_BadCursor() {
	badTokenErr := apperrors.NewAppError(http.StatusBadRequest, "invalid pagination token", apperrors.ErrValidation)
	suite.mockPostingService.On("ListTransactions", mock.Anything, suite.entityID, 20, mock.Anything).Return(nil, nil, badTokenErr).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/entities/%s/transactions?nextToken=garbage", suite.entityID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
