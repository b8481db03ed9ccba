package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	portssvc "github.com/settleworks/closing_cost_engine/internal/core/ports/services"
	"github.com/settleworks/closing_cost_engine/internal/dto"
	"github.com/settleworks/closing_cost_engine/internal/middleware"
)

// calculationHandler handles HTTP requests for closing cost calculations.
type calculationHandler struct {
	calculationService portssvc.CalculationSvcFacade
}

func newCalculationHandler(cs portssvc.CalculationSvcFacade) *calculationHandler {
	return &calculationHandler{
		calculationService: cs,
	}
}

// registerCalculationRoutes registers the calculation endpoint.
func registerCalculationRoutes(rg *gin.RouterGroup, calculationService portssvc.CalculationSvcFacade) {
	h := newCalculationHandler(calculationService)

	rg.POST("/calculate", h.calculateClosingCosts)
}

// calculateClosingCosts godoc
// @Summary Calculate closing costs for a deal
// @Description Validates the deal, resolves the jurisdiction profile and returns the full settlement statement with per-side debits, credits and nets
// @Tags calculation
// @Accept  json
// @Produce  json
// @Param   deal body dto.CalculateDealRequest true "Deal details"
// @Success 200 {object} dto.CalculateClosingCostsResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]interface{} "No jurisdiction profile matched"
// @Failure 422 {object} map[string]string "Profile configuration invalid"
// @Failure 500 {object} map[string]string "Calculation failed"
// @Security BearerAuth
// @Router /calculate [post]
func (h *calculationHandler) calculateClosingCosts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CalculateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CalculateClosingCosts", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	logger.Info("Received calculation request",
		slog.String("state", req.Property.State),
		slog.String("county", req.Property.County),
		slog.String("city", req.Property.City))

	result, err := h.calculationService.CalculateClosingCosts(c.Request.Context(), req)
	if err != nil {
		var verrs *apperrors.ValidationErrors
		var cnf *apperrors.ConfigNotFoundError
		switch {
		case errors.As(err, &verrs):
			logger.Warn("Deal validation failed", slog.Int("violations", len(verrs.Violations)))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Deal validation failed",
				"violations": verrs.Violations,
			})
		case errors.As(err, &cnf):
			logger.Warn("No jurisdiction profile matched", slog.String("state", cnf.State))
			c.JSON(http.StatusNotFound, gin.H{
				"error":           "No jurisdiction profile matched the property location",
				"attempted_paths": cnf.AttemptedPaths,
			})
		case errors.Is(err, apperrors.ErrInvalidConfiguration):
			logger.Error("Profile configuration invalid", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to calculate closing costs", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate closing costs"})
		}
		return
	}

	logger.Info("Calculation completed",
		slog.String("path", result.Diagnostics.JurisdictionPathMatched),
		slog.String("buyer_net", result.Buyer.Net.String()))
	c.JSON(http.StatusOK, dto.ToCalculateClosingCostsResponse(result))
}
