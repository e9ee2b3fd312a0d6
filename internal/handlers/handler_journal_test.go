package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintally/fintally_backend/internal/apperrors"
	"github.com/fintally/fintally_backend/internal/core/domain"
	"github.com/fintally/fintally_backend/internal/dto"
	"github.com/fintally/fintally_backend/internal/handlers"
	"github.com/fintally/fintally_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPostingService *MockPostingService
	entityID           string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockPostingService = new(MockPostingService)
	suite.entityID = uuid.NewString()

	v1 := suite.router.Group("/api/v1/entities/:entityID", middleware.ActorResolutionMiddleware())
	handlers.RegisterJournalRoutes(v1, suite.mockPostingService)
}

func (suite *JournalHandlerTestSuite) serveJSON(method, url string, body any) *httptest.ResponseRecorder {
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
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateEntry_Created() {
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:  entryID,
		EntityID: suite.entityID,
		Status:   domain.Draft,
		Memo:     "Office supplies",
		Amount:   decimal.NewFromInt(75),
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: uuid.NewString(), Debit: decimal.NewFromInt(75)},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: uuid.NewString(), Credit: decimal.NewFromInt(75)},
		},
	}

	suite.mockPostingService.On("CreateEntry", mock.Anything, suite.entityID,
		mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
			return len(req.Lines) == 2 && !req.Post
		}), "system").Return(entry, nil).Once()

	body := gin.H{
		"entryDate": time.Now().Format(time.RFC3339),
		"memo":      "Office supplies",
		"lines": []gin.H{
			{"accountID": entry.Lines[0].AccountID, "debit": "75"},
			{"accountID": entry.Lines[1].AccountID, "credit": "75"},
		},
	}
	w := suite.serveJSON(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/journal-entries", suite.entityID), body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)
	suite.Equal(domain.Draft, resp.Status)
	suite.Len(resp.Lines, 2)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_SingleLineRejectedByBinding() {
	body := gin.H{
		"entryDate": time.Now().Format(time.RFC3339),
		"lines": []gin.H{
			{"accountID": uuid.NewString(), "debit": "75"},
		},
	}
	w := suite.serveJSON(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/journal-entries", suite.entityID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Unbalanced() {
	suite.mockPostingService.On("CreateEntry", mock.Anything, suite.entityID, mock.Anything, "system").
		Return(nil, fmt.Errorf("%w: debits 100, credits 99", apperrors.ErrUnbalancedEntry)).Once()

	body := gin.H{
		"entryDate": time.Now().Format(time.RFC3339),
		"post":      true,
		"lines": []gin.H{
			{"accountID": uuid.NewString(), "debit": "100"},
			{"accountID": uuid.NewString(), "credit": "99"},
		},
	}
	w := suite.serveJSON(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/journal-entries", suite.entityID), body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestUpdateEntry_PostedConflict() {
	entryID := uuid.NewString()
	suite.mockPostingService.On("UpdateEntry", mock.Anything, suite.entityID, entryID, mock.Anything, "system").
		Return(nil, fmt.Errorf("%w: entry %s is POSTED", apperrors.ErrImmutableEntry, entryID)).Once()

	body := gin.H{"memo": "Corrected memo"}
	w := suite.serveJSON(http.MethodPut, fmt.Sprintf("/api/v1/entities/%s/journal-entries/%s", suite.entityID, entryID), body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_NoContent() {
	entryID := uuid.NewString()
	suite.mockPostingService.On("DeleteEntry", mock.Anything, suite.entityID, entryID).Return(nil).Once()

	w := suite.serveJSON(http.MethodDelete, fmt.Sprintf("/api/v1/entities/%s/journal-entries/%s", suite.entityID, entryID), nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_NotFound() {
	entryID := uuid.NewString()
	suite.mockPostingService.On("DeleteEntry", mock.Anything, suite.entityID, entryID).Return(apperrors.ErrNotFound).Once()

	w := suite.serveJSON(http.MethodDelete, fmt.Sprintf("/api/v1/entities/%s/journal-entries/%s", suite.entityID, entryID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Success() {
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:  entryID,
		EntityID: suite.entityID,
		Status:   domain.Posted,
		Amount:   decimal.NewFromInt(120),
	}

	suite.mockPostingService.On("PostEntry", mock.Anything, suite.entityID, entryID, "system").Return(posted, nil).Once()

	w := suite.serveJSON(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/journal-entries/%s/post", suite.entityID, entryID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Posted, resp.Status)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Unbalanced() {
	entryID := uuid.NewString()
	suite.mockPostingService.On("PostEntry", mock.Anything, suite.entityID, entryID, "system").
		Return(nil, fmt.Errorf("%w: debits 120, credits 100", apperrors.ErrUnbalancedEntry)).Once()

	w := suite.serveJSON(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/journal-entries/%s/post", suite.entityID, entryID), nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetEntry_Success() {
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:  entryID,
		EntityID: suite.entityID,
		Status:   domain.Draft,
	}

	suite.mockPostingService.On("GetEntry", mock.Anything, suite.entityID, entryID).Return(entry, nil).Once()

	w := suite.serveJSON(http.MethodGet, fmt.Sprintf("/api/v1/entities/%s/journal-entries/%s", suite.entityID, entryID), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPostingService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
