package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests related to statement matching.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: reconciliationService}
}

// registerReconciliationRoutes mounts the reconciliation endpoints.
func registerReconciliationRoutes(group *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)
	rec := group.Group("/reconciliation")
	{
		rec.GET("/matches", h.findMatches)
		rec.POST("", h.reconcile)
	}
}

// findMatches godoc
// @Summary Propose statement matches
// @Description Proposes unreconciled transactions on an account near the statement date
// @Tags reconciliation
// @Produce  json
// @Param   accountID query string true "Account ID"
// @Param   statementDate query string true "Statement date (YYYY-MM-DD)"
// @Param   tolerance query string false "Minimum absolute amount to consider"
// @Success 200 {object} dto.FindMatchesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /reconciliation/matches [get]
func (h *reconciliationHandler) findMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.FindMatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	_, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	matches, err := h.reconciliationService.FindMatches(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to find matches")
		return
	}
	c.JSON(http.StatusOK, dto.FindMatchesResponse{Matches: dto.ToMatchResponses(matches)})
}

// reconcile godoc
// @Summary Reconcile transactions
// @Description Bulk-marks transactions as reconciled; already reconciled rows are skipped
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   request body dto.ReconcileRequest true "Account and transaction IDs"
// @Success 200 {object} dto.ReconciliationSummaryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /reconciliation [post]
func (h *reconciliationHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	summary, err := h.reconciliationService.Reconcile(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile transactions")
		return
	}

	logger.Info("Transactions reconciled",
		slog.String("account_id", req.AccountID),
		slog.Int("reconciled", summary.ReconciledCount))
	c.JSON(http.StatusOK, dto.ToReconciliationSummaryResponse(summary))
}
