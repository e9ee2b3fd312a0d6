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

// taxConfigHandler handles HTTP requests for per-entity tax configuration.
type taxConfigHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxConfigHandler(ts portssvc.TaxSvcFacade) *taxConfigHandler {
	return &taxConfigHandler{taxService: ts}
}

// registerTaxConfigRoutes registers the tax configuration routes.
func registerTaxConfigRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxConfigHandler(taxService)

	rg.GET("/tax-config", h.getTaxConfig)
	rg.PUT("/tax-config", h.upsertTaxConfig)
}

// getTaxConfig godoc
// @Summary Get the entity's tax configuration
// @Description Returns the entity's tax config, or the service defaults when none has been set
// @Tags tax-config
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.TaxConfigResponse
// @Failure 500 {object} map[string]string "Failed to retrieve tax config"
// @Router /entities/{entityID}/tax-config [get]
func (h *taxConfigHandler) getTaxConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	cfg, err := h.taxService.GetConfig(c.Request.Context(), entityID)
	if err != nil {
		logger.Error("Failed to get tax config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tax config"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxConfigResponse(cfg))
}

// upsertTaxConfig godoc
// @Summary Replace the entity's tax configuration
// @Description Sets the VAT rate, corporate tax bracket schedule and depreciation account codes
// @Tags tax-config
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   config body dto.UpsertTaxConfigRequest true "Tax configuration"
// @Success 200 {object} dto.TaxConfigResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to update tax config"
// @Router /entities/{entityID}/tax-config [put]
func (h *taxConfigHandler) upsertTaxConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.UpsertTaxConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertTaxConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	cfg, err := h.taxService.UpsertConfig(c.Request.Context(), entityID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert tax config", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tax config"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxConfigResponse(cfg))
}
