package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintally/fintally_backend/internal/apperrors"
	portssvc "github.com/fintally/fintally_backend/internal/core/ports/services"
	"github.com/fintally/fintally_backend/internal/dto"
	"github.com/fintally/fintally_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/seed", h.seedDefaultChart)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the entity's chart of accounts
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /entities/{entityID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	account, err := h.accountService.CreateAccount(c.Request.Context(), entityID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// seedDefaultChart godoc
// @Summary Seed the default chart of accounts
// @Description Creates the standard chart of accounts for the entity, skipping codes it already has
// @Tags accounts
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 201 {object} dto.SeedChartResponse
// @Failure 500 {object} map[string]string "Failed to seed chart"
// @Router /entities/{entityID}/accounts/seed [post]
func (h *accountHandler) seedDefaultChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	actorID := middleware.GetActorIDFromContext(c)

	created, err := h.accountService.SeedDefaultChart(c.Request.Context(), entityID, actorID)
	if err != nil {
		logger.Error("Failed to seed default chart", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed default chart"})
		return
	}

	c.JSON(http.StatusCreated, dto.SeedChartResponse{
		AccountsCreated: len(created),
		Accounts:        dto.ToListAccountResponse(created),
	})
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the entity's chart of accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /entities/{entityID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), entityID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /entities/{entityID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), entityID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Renames an account; the type can only change while the account has no postings
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account type is frozen by existing postings"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Router /entities/{entityID}/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	accountID := c.Param("accountID")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	account, err := h.accountService.UpdateAccount(c.Request.Context(), entityID, accountID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
