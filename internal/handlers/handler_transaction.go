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

// transactionHandler handles HTTP requests for the automatic posting path.
type transactionHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newTransactionHandler(ps portssvc.PostingSvcFacade) *transactionHandler {
	return &transactionHandler{postingService: ps}
}

// RegisterTransactionRoutes registers routes related to business transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newTransactionHandler(postingService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
	}
}

// createTransaction godoc
// @Summary Post a business transaction
// @Description Resolves the transaction type's mapping and books a balanced journal entry. Replays of the same transactionID return the original entry.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.CreateTransactionResponse
// @Success 200 {object} dto.CreateTransactionResponse "Transaction ID was already posted"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 422 {object} map[string]string "No mapping for transaction type, or mapped account missing"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Router /entities/{entityID}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	result, err := h.postingService.PostTransaction(c.Request.Context(), entityID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrMappingNotFound) || errors.Is(err, apperrors.ErrAccountNotConfigured) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post transaction", slog.String("error", err.Error()), slog.String("type", req.Type))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToCreateTransactionResponse(result))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the entity's transactions newest first with cursor pagination
// @Tags transactions
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or cursor"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /entities/{entityID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.postingService.ListTransactions(c.Request.Context(), entityID, params.Limit, params.NextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == 400 {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, nextToken))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /entities/{entityID}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	transactionID := c.Param("transactionID")

	txn, err := h.postingService.GetTransaction(c.Request.Context(), entityID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
