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

// journalHandler handles HTTP requests for manual journal entries.
type journalHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newJournalHandler(ps portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{postingService: ps}
}

// RegisterJournalRoutes registers routes related to manual journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newJournalHandler(postingService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/post", h.postEntry)
	}
}

// createEntry godoc
// @Summary Create a manual journal entry
// @Description Creates a draft journal entry, or a posted one when post=true and the lines balance
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /entities/{entityID}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	entry, err := h.postingService.CreateEntry(c.Request.Context(), entityID, req, actorID)
	if err != nil {
		respondJournalError(c, logger, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists the entity's journal entries newest first with cursor pagination
// @Tags journal-entries
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or cursor"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entities/{entityID}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.postingService.ListEntries(c.Request.Context(), entityID, params.Limit, params.NextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == 400 {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, nextToken))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Tags journal-entries
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entities/{entityID}/journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	entryID := c.Param("entryID")

	entry, err := h.postingService.GetEntry(c.Request.Context(), entityID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Updates a draft entry's date, memo or lines. Posted entries are immutable.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is posted and immutable"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Router /entities/{entityID}/journal-entries/{entryID} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	entryID := c.Param("entryID")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)
	entry, err := h.postingService.UpdateEntry(c.Request.Context(), entityID, entryID, req, actorID)
	if err != nil {
		respondJournalError(c, logger, err, "Failed to update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Deletes a draft entry and its lines. Posted entries are immutable.
// @Tags journal-entries
// @Param   entityID path string true "Entity ID"
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is posted and immutable"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Router /entities/{entityID}/journal-entries/{entryID} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	entryID := c.Param("entryID")

	if err := h.postingService.DeleteEntry(c.Request.Context(), entityID, entryID); err != nil {
		respondJournalError(c, logger, err, "Failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Balance-checks the draft and flips it to POSTED, writing its ledger postings
// @Tags journal-entries
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is already posted"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /entities/{entityID}/journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entityID")
	entryID := c.Param("entryID")

	actorID := middleware.GetActorIDFromContext(c)
	entry, err := h.postingService.PostEntry(c.Request.Context(), entityID, entryID, actorID)
	if err != nil {
		respondJournalError(c, logger, err, "Failed to post entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// respondJournalError maps journal entry service errors to HTTP responses.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, apperrors.ErrImmutableEntry):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnbalancedEntry):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
