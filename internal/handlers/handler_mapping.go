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

// mappingHandler handles HTTP requests for the transaction-type mapping table.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

func newMappingHandler(ms portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{mappingService: ms}
}

// registerMappingRoutes registers routes related to transaction-type mappings.
func registerMappingRoutes(rg *gin.RouterGroup, mappingService portssvc.MappingSvcFacade) {
	h := newMappingHandler(mappingService)

	mappings := rg.Group("/mappings")
	{
		mappings.GET("", h.listMappings)
		mappings.POST("", h.upsertMapping)
	}
}

// listMappings godoc
// @Summary List transaction-type mappings
// @Description Lists the entity's mappings plus the global defaults it has not overridden
// @Tags mappings
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.ListMappingsResponse
// @Failure 500 {object} map[string]string "Failed to list mappings"
// @Router /entities/{entityID}/mappings [get]
func (h *mappingHandler) listMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	mappings, err := h.mappingService.ListMappings(c.Request.Context(), entityID)
	if err != nil {
		logger.Error("Failed to list mappings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mappings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListMappingsResponse(mappings))
}

// upsertMapping godoc
// @Summary Create or replace a transaction-type mapping
// @Description Sets which accounts a transaction type debits and credits for this entity
// @Tags mappings
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   mapping body dto.UpsertMappingRequest true "Mapping details"
// @Success 200 {object} dto.MappingResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to upsert mapping"
// @Router /entities/{entityID}/mappings [post]
func (h *mappingHandler) upsertMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	mapping, err := h.mappingService.UpsertMapping(c.Request.Context(), entityID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert mapping", slog.String("error", err.Error()), slog.String("transaction_type", req.TransactionType))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert mapping"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponse(mapping))
}
