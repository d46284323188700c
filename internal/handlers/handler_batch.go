package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// batchHandler handles HTTP requests related to transaction batches.
type batchHandler struct {
	batchService portssvc.BatchSvcFacade
}

func newBatchHandler(batchService portssvc.BatchSvcFacade) *batchHandler {
	return &batchHandler{batchService: batchService}
}

// registerBatchRoutes mounts the batch processing endpoints.
func registerBatchRoutes(group *gin.RouterGroup, batchService portssvc.BatchSvcFacade) {
	h := newBatchHandler(batchService)
	batches := group.Group("/batches")
	{
		batches.POST("", h.createBatch)
		batches.GET("/:batchID", h.getBatch)
		batches.GET("/:batchID/status", h.getBatchStatus)
		batches.POST("/:batchID/cancel", h.cancelBatch)
	}
}

// createBatch godoc
// @Summary Submit a transaction batch
// @Description Accepts a group of transaction requests for asynchronous processing
// @Tags batches
// @Accept  json
// @Produce  json
// @Param   batch body dto.CreateBatchRequest true "Batch with transaction requests"
// @Success 201 {object} dto.BatchResponse "Accepted for processing"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /batches [post]
func (h *batchHandler) createBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	batch, err := h.batchService.CreateBatch(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create batch")
		return
	}

	logger.Info("Batch accepted", slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToBatchResponse(batch, nil))
}

// getBatch godoc
// @Summary Get a batch
// @Description Retrieves a batch record along with the transactions it created
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Router /batches/{batchID} [get]
func (h *batchHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	_, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	batch, txns, err := h.batchService.GetBatch(c.Request.Context(), companyID, batchID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve batch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(batch, txns))
}

// getBatchStatus godoc
// @Summary Get batch status
// @Description Returns only the processing status of a batch, for polling
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Batch not found"
// @Router /batches/{batchID}/status [get]
func (h *batchHandler) getBatchStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	_, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	status, err := h.batchService.GetBatchStatus(c.Request.Context(), companyID, batchID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve batch status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"batchID": batchID, "status": string(status)})
}

// cancelBatch godoc
// @Summary Cancel a batch
// @Description Requests cooperative cancellation; processing stops before the next unprocessed item
// @Tags batches
// @Produce  json
// @Param   batchID path string true "Batch ID"
// @Success 202 {object} map[string]string "Cancellation requested"
// @Failure 409 {object} map[string]string "Batch already finished"
// @Router /batches/{batchID}/cancel [post]
func (h *batchHandler) cancelBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	_, companyID, ok := requestScope(c)
	if !ok {
		return
	}

	if err := h.batchService.CancelBatch(c.Request.Context(), companyID, batchID); err != nil {
		respondServiceError(c, logger, err, "Failed to cancel batch")
		return
	}

	logger.Info("Batch cancellation requested", slog.String("batch_id", batchID))
	c.JSON(http.StatusAccepted, gin.H{"batchID": batchID, "status": "cancellation requested"})
}
