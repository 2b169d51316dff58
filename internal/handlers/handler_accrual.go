package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentledger/rentledger/internal/apperrors"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/dto"
	"github.com/rentledger/rentledger/internal/middleware"
)

// accrualHandler handles HTTP requests related to accruals.
type accrualHandler struct {
	accrualService portssvc.AccrualSvcFacade
}

func newAccrualHandler(as portssvc.AccrualSvcFacade) *accrualHandler {
	return &accrualHandler{accrualService: as}
}

// registerAccrualRoutes registers the accrual CRUD and bulk routes. Payment
// acceptance routes on accruals live in the payment handler.
func registerAccrualRoutes(rg *gin.RouterGroup, accrualService portssvc.AccrualSvcFacade) {
	h := newAccrualHandler(accrualService)

	accruals := rg.Group("/accruals")
	{
		accruals.POST("", h.createAccrual)
		accruals.PATCH("/bulk", h.bulkUpdateAccruals)
		accruals.DELETE("/bulk", h.bulkDeleteAccruals)
		accruals.GET("/:id", h.getAccrual)
		accruals.PATCH("/:id", h.updateAccrual)
		accruals.DELETE("/:id", h.deleteAccrual)
	}
}

// createAccrual godoc
// @Summary Create an accrual
// @Description Records a manually entered accrual for a contract period
// @Tags accruals
// @Accept json
// @Produce json
// @Param accrual body dto.CreateAccrualRequest true "Accrual details"
// @Success 201 {object} dto.AccrualResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to create accrual"
// @Router /accruals [post]
func (h *accrualHandler) createAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccrual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	accrual, err := h.accrualService.CreateAccrual(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create accrual", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create accrual"})
		}
		return
	}

	logger.Info("Accrual created", slog.String("accrual_id", accrual.AccrualID))
	c.JSON(http.StatusCreated, dto.ToAccrualResponse(accrual, time.Now().UTC()))
}

// getAccrual godoc
// @Summary Get an accrual by ID
// @Tags accruals
// @Produce json
// @Param id path string true "Accrual ID"
// @Success 200 {object} dto.AccrualResponse
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 500 {object} map[string]string "Failed to retrieve accrual"
// @Router /accruals/{id} [get]
func (h *accrualHandler) getAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("id")

	accrual, err := h.accrualService.GetAccrualByID(c.Request.Context(), accrualID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accrual not found"})
		} else {
			logger.Error("Failed to get accrual", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accrual"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccrualResponse(accrual, time.Now().UTC()))
}

// updateAccrual godoc
// @Summary Update an accrual
// @Description Applies a sparse edit; derived amounts and status are recomputed. An edit pushing the final amount below what is already paid is rejected.
// @Tags accruals
// @Accept json
// @Produce json
// @Param id path string true "Accrual ID"
// @Param accrual body dto.UpdateAccrualRequest true "Fields to change"
// @Success 200 {object} dto.AccrualResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 409 {object} map[string]string "Accrual changed concurrently"
// @Failure 500 {object} map[string]string "Failed to update accrual"
// @Router /accruals/{id} [patch]
func (h *accrualHandler) updateAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("id")

	var req dto.UpdateAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccrual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	accrual, err := h.accrualService.UpdateAccrual(c.Request.Context(), accrualID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Accrual not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update accrual", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update accrual"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccrualResponse(accrual, time.Now().UTC()))
}

// deleteAccrual godoc
// @Summary Delete an accrual
// @Description Removes the accrual and its allocations; payments are kept with a larger unallocated balance
// @Tags accruals
// @Produce json
// @Param id path string true "Accrual ID"
// @Success 204 "Accrual deleted"
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 500 {object} map[string]string "Failed to delete accrual"
// @Router /accruals/{id} [delete]
func (h *accrualHandler) deleteAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("id")
	actor := middleware.GetActorFromCtx(c.Request.Context())

	if err := h.accrualService.DeleteAccrual(c.Request.Context(), accrualID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Accrual not found"})
		} else {
			logger.Error("Failed to delete accrual", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete accrual"})
		}
		return
	}

	logger.Info("Accrual deleted", slog.String("accrual_id", accrualID))
	c.Status(http.StatusNoContent)
}

// bulkUpdateAccruals godoc
// @Summary Bulk update accruals
// @Description Applies one sparse edit to many accruals as an atomic unit; any invalid target rejects the whole batch
// @Tags accruals
// @Accept json
// @Produce json
// @Param edit body dto.BulkUpdateAccrualsRequest true "Targets and fields"
// @Success 200 {object} dto.BulkUpdateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "An accrual was not found"
// @Failure 409 {object} map[string]string "An accrual changed concurrently"
// @Failure 500 {object} map[string]string "Failed to update accruals"
// @Router /accruals/bulk [patch]
func (h *accrualHandler) bulkUpdateAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkUpdateAccrualsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkUpdateAccruals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	updated, err := h.accrualService.BulkUpdateAccruals(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to bulk update accruals", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update accruals"})
		}
		return
	}

	logger.Info("Accruals bulk updated", slog.Int("count", updated))
	c.JSON(http.StatusOK, dto.BulkUpdateResponse{UpdatedCount: updated})
}

// bulkDeleteAccruals godoc
// @Summary Bulk delete accruals
// @Description Removes many accruals and their allocations as an atomic unit
// @Tags accruals
// @Accept json
// @Produce json
// @Param targets body dto.BulkDeleteAccrualsRequest true "Accrual IDs to delete"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "An accrual was not found"
// @Failure 500 {object} map[string]string "Failed to delete accruals"
// @Router /accruals/bulk [delete]
func (h *accrualHandler) bulkDeleteAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkDeleteAccrualsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkDeleteAccruals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	deleted, err := h.accrualService.BulkDeleteAccruals(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to bulk delete accruals", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete accruals"})
		}
		return
	}

	logger.Info("Accruals bulk deleted", slog.Int("count", deleted))
	c.JSON(http.StatusOK, dto.BulkDeleteResponse{DeletedCount: deleted})
}
