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

// reportingHandler handles HTTP requests for ledger-derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	taxService       portssvc.TaxSvcFacade
}

func newReportingHandler(rs portssvc.ReportingService, ts portssvc.TaxSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs, taxService: ts}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, taxService portssvc.TaxSvcFacade) {
	h := newReportingHandler(reportingService, taxService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/tax", h.getTaxReport)
	}
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Sums each account's debit and credit activity independently; totals always match or the report is refused
// @Tags reports
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 500 {object} map[string]string "Failed to build trial balance or ledger inconsistent"
// @Router /entities/{entityID}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConsistency) {
			logger.Error("Ledger inconsistency detected", slog.String("error", err.Error()), slog.String("entity_id", entityID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ledger inconsistency detected"})
		} else {
			logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getTaxReport godoc
// @Summary Get the tax report
// @Description Computes VAT due on revenue and progressive corporate tax on taxable income from the ledger
// @Tags reports
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.TaxReportResponse
// @Failure 500 {object} map[string]string "Failed to build tax report"
// @Router /entities/{entityID}/reports/tax [get]
func (h *reportingHandler) getTaxReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	report, err := h.taxService.TaxReport(c.Request.Context(), entityID)
	if err != nil {
		logger.Error("Failed to build tax report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build tax report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxReportResponse(report))
}
