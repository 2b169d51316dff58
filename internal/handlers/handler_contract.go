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

// contractHandler handles HTTP requests related to lease contracts.
type contractHandler struct {
	contractService portssvc.ContractSvcFacade
	accrualService  portssvc.AccrualSvcFacade
}

func newContractHandler(cs portssvc.ContractSvcFacade, as portssvc.AccrualSvcFacade) *contractHandler {
	return &contractHandler{
		contractService: cs,
		accrualService:  as,
	}
}

// registerContractRoutes registers routes related to contracts.
func registerContractRoutes(rg *gin.RouterGroup, contractService portssvc.ContractSvcFacade, accrualService portssvc.AccrualSvcFacade) {
	h := newContractHandler(contractService, accrualService)

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)
		contracts.GET("/:id", h.getContract)
		contracts.PATCH("/:id", h.updateContract)
		contracts.DELETE("/:id", h.deleteContract)
		contracts.POST("/:id/prolong", h.prolongContract)
		contracts.POST("/:id/generate-accruals", h.generateAccruals)
		contracts.GET("/:id/accruals", h.listContractAccruals)
	}
}

// createContract godoc
// @Summary Create a lease contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 500 {object} map[string]string "Failed to create contract"
// @Router /contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	contract, err := h.contractService.CreateContract(c.Request.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create contract", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		}
		return
	}

	logger.Info("Contract created", slog.String("contract_id", contract.ContractID))
	c.JSON(http.StatusCreated, dto.ToContractResponse(contract))
}

// getContract godoc
// @Summary Get a contract by ID
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to retrieve contract"
// @Router /contracts/{id} [get]
func (h *contractHandler) getContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	contract, err := h.contractService.GetContractByID(c.Request.Context(), contractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else {
			logger.Error("Failed to get contract", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contract"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

// listContracts godoc
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ContractResponse
// @Failure 500 {object} map[string]string "Failed to list contracts"
// @Router /contracts [get]
func (h *contractHandler) listContracts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := paginationParams(c)

	contracts, err := h.contractService.ListContracts(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list contracts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContractResponses(contracts))
}

// updateContract godoc
// @Summary Update a contract
// @Description Applies a sparse edit; only fields present in the body change
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param contract body dto.UpdateContractRequest true "Fields to change"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to update contract"
// @Router /contracts/{id} [patch]
func (h *contractHandler) updateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	contract, err := h.contractService.UpdateContract(c.Request.Context(), contractID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		default:
			logger.Error("Failed to update contract", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contract"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

// prolongContract godoc
// @Summary Prolong a contract
// @Description Creates a derived contract starting where this one ends; the prior contract is marked ended
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param prolongation body dto.ProlongContractRequest true "New term details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to prolong contract"
// @Router /contracts/{id}/prolong [post]
func (h *contractHandler) prolongContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	var req dto.ProlongContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProlongContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())
	derived, err := h.contractService.ProlongContract(c.Request.Context(), contractID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		default:
			logger.Error("Failed to prolong contract", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prolong contract"})
		}
		return
	}

	logger.Info("Contract prolonged",
		slog.String("contract_id", contractID),
		slog.String("derived_contract_id", derived.ContractID))
	c.JSON(http.StatusCreated, dto.ToContractResponse(derived))
}

// deleteContract godoc
// @Summary Delete a contract
// @Description Deletes the contract, its accruals and their allocations; payments are kept
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 204 "Contract deleted"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to delete contract"
// @Router /contracts/{id} [delete]
func (h *contractHandler) deleteContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")
	actor := middleware.GetActorFromCtx(c.Request.Context())

	if err := h.contractService.DeleteContract(c.Request.Context(), contractID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else {
			logger.Error("Failed to delete contract", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract"})
		}
		return
	}

	logger.Info("Contract deleted", slog.String("contract_id", contractID))
	c.Status(http.StatusNoContent)
}

// generateAccruals godoc
// @Summary Generate accruals for a contract
// @Description Expands the contract's monthly schedule into accruals, skipping periods that already exist
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 201 {array} dto.AccrualResponse
// @Failure 400 {object} map[string]string "Contract not eligible for generation"
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to generate accruals"
// @Router /contracts/{id}/generate-accruals [post]
func (h *contractHandler) generateAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")
	actor := middleware.GetActorFromCtx(c.Request.Context())

	accruals, err := h.accrualService.GenerateAccruals(c.Request.Context(), contractID, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		default:
			logger.Error("Failed to generate accruals", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate accruals"})
		}
		return
	}

	logger.Info("Accruals generated",
		slog.String("contract_id", contractID),
		slog.Int("count", len(accruals)))
	c.JSON(http.StatusCreated, dto.ToAccrualResponses(accruals, time.Now().UTC()))
}

// listContractAccruals godoc
// @Summary List accruals of a contract
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {array} dto.AccrualResponse
// @Failure 404 {object} map[string]string "Contract not found"
// @Failure 500 {object} map[string]string "Failed to list accruals"
// @Router /contracts/{id}/accruals [get]
func (h *contractHandler) listContractAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	accruals, err := h.accrualService.ListAccrualsByContract(c.Request.Context(), contractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		} else {
			logger.Error("Failed to list accruals", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accruals"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccrualResponses(accruals, time.Now().UTC()))
}
