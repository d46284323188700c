package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for balance reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes mounts the reporting endpoints.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	group.GET("/reports/trial-balance", h.getTrialBalance)
	group.GET("/accounts/:accountID/balance", h.getAccountBalance)
}

// parseAsOf reads the optional asOfDate query parameter (YYYY-MM-DD). It
// writes
// the 400 response itself on a malformed value.
func parseAsOf(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("asOfDate")
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOfDate, expected YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Per-account debit/credit balances as of a date; grand totals are equal for a consistent ledger
// @Tags reports
// @Produce  json
// @Param   asOfDate query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOfDate"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfPtr, ok := parseAsOf(c)
	if !ok {
		return
	}
	asOf := time.Now()
	if asOfPtr != nil {
		asOf = *asOfPtr
	}

	_, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report, asOf))
}

// getAccountBalance godoc
// @Summary Account balance
// @Description Debit, credit and net totals for one account, optionally as of a date
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   asOfDate query string false "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balance [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	_, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), companyID, accountID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute account balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance, asOf))
}
