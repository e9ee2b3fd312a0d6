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

// assetHandler handles HTTP requests for the fixed-asset register.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

// registerAssetRoutes registers routes related to fixed assets.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:assetID", h.getAsset)
		assets.POST("/:assetID/dispose", h.disposeAsset)
	}
}

// createAsset godoc
// @Summary Register a fixed asset
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to register asset"
// @Router /entities/{entityID}/assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	asset, err := h.assetService.CreateAsset(c.Request.Context(), entityID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to register asset", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register asset"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// listAssets godoc
// @Summary List fixed assets
// @Tags assets
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.ListAssetsResponse
// @Failure 500 {object} map[string]string "Failed to list assets"
// @Router /entities/{entityID}/assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	assets, err := h.assetService.ListAssets(c.Request.Context(), entityID)
	if err != nil {
		logger.Error("Failed to list assets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assets"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssetsResponse(assets))
}

// getAsset godoc
// @Summary Get a fixed asset by ID
// @Tags assets
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   assetID path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to retrieve asset"
// @Router /entities/{entityID}/assets/{assetID} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	assetID := c.Param("assetID")

	asset, err := h.assetService.GetAsset(c.Request.Context(), entityID, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			logger.Error("Failed to get asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// disposeAsset godoc
// @Summary Dispose of a fixed asset
// @Description Computes accrued depreciation and gain or loss at the disposal date, books the result and marks the asset DISPOSED
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   assetID path string true "Asset ID"
// @Param   disposal body dto.DisposeAssetRequest true "Disposal details"
// @Success 200 {object} dto.DisposalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 409 {object} map[string]string "Asset already disposed"
// @Failure 422 {object} map[string]string "Disposal transaction type not mapped"
// @Failure 500 {object} map[string]string "Failed to dispose asset"
// @Router /entities/{entityID}/assets/{assetID}/dispose [post]
func (h *assetHandler) disposeAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	assetID := c.Param("assetID")

	var req dto.DisposeAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DisposeAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	result, err := h.assetService.DisposeAsset(c.Request.Context(), entityID, assetID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrMappingNotFound), errors.Is(err, apperrors.ErrAccountNotConfigured):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to dispose asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispose asset"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDisposalResponse(result))
}
