package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentledger/rentledger/internal/apperrors"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/dto"
	"github.com/rentledger/rentledger/internal/middleware"
)

// paymentHandler handles payment acceptance, cancellation and reads.
type paymentHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newPaymentHandler(als portssvc.AllocationSvcFacade) *paymentHandler {
	return &paymentHandler{allocationService: als}
}

// registerPaymentRoutes registers payment routes, including the acceptance
// routes that hang off accruals.
func registerPaymentRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newPaymentHandler(allocationService)

	accruals := rg.Group("/accruals")
	{
		accruals.POST("/bulk-accept", h.bulkAcceptPayment)
		accruals.POST("/:id/accept-payment", h.acceptPayment)
		accruals.POST("/:id/cancel-payment", h.cancelLatestPayment)
	}

	payments := rg.Group("/payments")
	{
		payments.GET("/:id", h.getPayment)
		payments.POST("/:id/cancel", h.cancelPayment)
	}
}

// allocationErrorStatus maps allocator errors onto HTTP statuses shared by the
// accept and cancel routes.
func allocationErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrCurrencyMismatch):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, apperrors.ErrAlreadySettled),
		errors.Is(err, apperrors.ErrAlreadyCancelled),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, true
	}
	return http.StatusInternalServerError, false
}

// acceptPayment godoc
// @Summary Accept a payment against an accrual
// @Description Records a payment targeting one accrual. An amount beyond the target's balance overflows FIFO onto the contract's other outstanding accruals; whatever still remains stays on the payment unallocated.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Accrual ID"
// @Param payment body dto.AcceptPaymentRequest true "Payment details"
// @Success 201 {object} dto.AcceptPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input, validation error or currency mismatch"
// @Failure 404 {object} map[string]string "Accrual or account not found"
// @Failure 409 {object} map[string]string "Accrual already settled or changed concurrently"
// @Failure 500 {object} map[string]string "Failed to accept payment"
// @Router /accruals/{id}/accept-payment [post]
func (h *paymentHandler) acceptPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("id")

	var req dto.AcceptPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AcceptPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	result, err := h.allocationService.AcceptPayment(c.Request.Context(), accrualID, req, actor)
	if err != nil {
		status, known := allocationErrorStatus(err)
		if !known {
			logger.Error("Failed to accept payment", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to accept payment"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Payment accepted",
		slog.String("accrual_id", accrualID),
		slog.String("payment_id", result.PaymentID),
		slog.Int("allocations", result.AllocationsCount))
	c.JSON(http.StatusCreated, result)
}

// bulkAcceptPayment godoc
// @Summary Accept payments for many accruals
// @Description Settles every targeted accrual in full with one dedicated payment each, in due date order, all-or-nothing. No overflow between targets.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.BulkAcceptPaymentRequest true "Targets and payment details"
// @Success 201 {object} dto.BulkAcceptPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input, validation error or currency mismatch"
// @Failure 404 {object} map[string]string "An accrual or the account was not found"
// @Failure 409 {object} map[string]string "A target is already settled or changed concurrently"
// @Failure 500 {object} map[string]string "Failed to accept payments"
// @Router /accruals/bulk-accept [post]
func (h *paymentHandler) bulkAcceptPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkAcceptPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkAcceptPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	result, err := h.allocationService.BulkAcceptPayment(c.Request.Context(), req, actor)
	if err != nil {
		status, known := allocationErrorStatus(err)
		if !known {
			logger.Error("Failed to bulk accept payments", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to accept payments"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Payments bulk accepted",
		slog.Int("payments_created", result.PaymentsCreated),
		slog.Int("total_allocations", result.TotalAllocations))
	c.JSON(http.StatusCreated, result)
}

// cancelLatestPayment godoc
// @Summary Cancel the latest payment for an accrual
// @Description Cancels the most recent non-cancelled payment that has an allocation against the accrual, reversing all of that payment's allocations
// @Tags payments
// @Produce json
// @Param id path string true "Accrual ID"
// @Success 200 {object} dto.CancelPaymentResponse
// @Failure 404 {object} map[string]string "Accrual not found or no payment to cancel"
// @Failure 409 {object} map[string]string "Payment already cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel payment"
// @Router /accruals/{id}/cancel-payment [post]
func (h *paymentHandler) cancelLatestPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("id")
	actor := middleware.GetActorFromCtx(c.Request.Context())

	result, err := h.allocationService.CancelLatestPaymentForAccrual(c.Request.Context(), accrualID, actor)
	if err != nil {
		status, known := allocationErrorStatus(err)
		if !known {
			logger.Error("Failed to cancel payment", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to cancel payment"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Latest payment cancelled", slog.String("accrual_id", accrualID))
	c.JSON(http.StatusOK, result)
}

// cancelPayment godoc
// @Summary Cancel a payment
// @Description Reverses every allocation of the payment and marks it cancelled. Cancellation is terminal.
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.CancelPaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment already cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel payment"
// @Router /payments/{id}/cancel [post]
func (h *paymentHandler) cancelPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")
	actor := middleware.GetActorFromCtx(c.Request.Context())

	affected, err := h.allocationService.CancelPayment(c.Request.Context(), paymentID, actor)
	if err != nil {
		status, known := allocationErrorStatus(err)
		if !known {
			logger.Error("Failed to cancel payment", slog.String("error", err.Error()))
			c.JSON(status, gin.H{"error": "Failed to cancel payment"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Payment cancelled",
		slog.String("payment_id", paymentID),
		slog.Int("accruals_affected", affected))
	c.JSON(http.StatusOK, dto.CancelPaymentResponse{
		StatusMessage:    "payment cancelled",
		AccrualsAffected: affected,
	})
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Retrieves a payment together with its allocations
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} map[string]any "Payment and its allocations"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, allocations, err := h.allocationService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			logger.Error("Failed to get payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment":     dto.ToPaymentResponse(payment),
		"allocations": dto.ToAllocationResponses(allocations),
	})
}
