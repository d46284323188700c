package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/ledger-engine/internal/apperrors"
	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/dto"
	"github.com/finbooks/ledger-engine/internal/middleware"
	"github.com/shopspring/decimal"
)

// batchService accepts groups of transaction requests and processes them in
// the background through the transaction lifecycle manager. Individual item
// failures never abort the batch; every item is attempted and failures are
// aggregated on the batch record.
type batchService struct {
	batchRepo   portsrepo.BatchRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	txnSvc      portssvc.TransactionSvcFacade
	sequenceSvc portssvc.SequenceSvcFacade
	workers     int
}

// NewBatchService creates the batch orchestrator. workers bounds the number
// of items processed concurrently per batch.
func NewBatchService(batchRepo portsrepo.BatchRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, txnSvc portssvc.TransactionSvcFacade, sequenceSvc portssvc.SequenceSvcFacade, workers int) portssvc.BatchSvcFacade {
	if workers < 1 {
		workers = 1
	}
	return &batchService{
		batchRepo:   batchRepo,
		txnRepo:     txnRepo,
		txnSvc:      txnSvc,
		sequenceSvc: sequenceSvc,
		workers:     workers,
	}
}

var _ portssvc.BatchSvcFacade = (*batchService)(nil)

func (s *batchService) CreateBatch(ctx context.Context, companyID string, req dto.CreateBatchRequest, creatorUserID string) (*domain.BatchTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	batchNumber, err := s.sequenceSvc.NextBatchNumber(ctx, companyID, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate batch number: %w", err)
	}

	batch := domain.BatchTransaction{
		BatchID:           uuid.NewString(),
		BatchNumber:       batchNumber,
		CompanyID:         companyID,
		Name:              req.Name,
		Description:       req.Description,
		Status:            domain.BatchPending,
		TotalTransactions: len(req.Transactions),
		TotalAmount:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.batchRepo.CreateBatch(ctx, batch); err != nil {
		logger.Error("Failed to create batch", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	// Processing runs detached from the request; the caller polls the batch
	// status. The request's logger fields are carried over.
	bgLogger := logger.With(slog.String("batch_id", batch.BatchID))
	bgCtx := middleware.WithLogger(context.WithoutCancel(ctx), bgLogger)
	go s.processBatch(bgCtx, batch, req.Transactions, creatorUserID)

	logger.Info("Batch accepted",
		slog.String("batch_id", batch.BatchID),
		slog.String("batch_number", batchNumber),
		slog.Int("total_transactions", len(req.Transactions)))
	return &batch, nil
}

// processBatch runs the batch items through a bounded worker pool, honoring
// the cooperative cancel flag between items.
func (s *batchService) processBatch(ctx context.Context, batch domain.BatchTransaction, requests []dto.CreateTransactionRequest, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	started := time.Now()
	batch.Status = domain.BatchProcessing
	batch.ProcessingStartedAt = &started
	batch.LastUpdatedAt = started
	if err := s.batchRepo.UpdateBatch(ctx, batch); err != nil {
		logger.Error("Failed to mark batch processing", slog.String("error", err.Error()))
		return
	}

	type itemFailure struct {
		index int
		err   error
	}

	var (
		wg        sync.WaitGroup
		cancelled atomic.Bool
		mu        sync.Mutex
		failures  []itemFailure
		total     = decimal.Zero
		succeeded int
	)
	sem := make(chan struct{}, s.workers)

	for i, req := range requests {
		if cancelled.Load() {
			break
		}
		// One flag read per item keeps cancellation bounded by a single
		// in-flight wave of workers.
		if requested, err := s.batchRepo.IsCancelRequested(ctx, batch.BatchID); err == nil && requested {
			cancelled.Store(true)
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(index int, req dto.CreateTransactionRequest) {
			defer wg.Done()
			defer func() { <-sem }()

			txn, err := s.txnSvc.CreateTransactionForBatch(ctx, batch.CompanyID, req, userID, batch.BatchID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, itemFailure{index: index, err: err})
				return
			}
			succeeded++
			total = total.Add(txn.TotalAmount)
		}(i, req)
	}
	wg.Wait()

	completed := time.Now()
	batch.SuccessCount = succeeded
	batch.TotalAmount = total
	batch.ProcessingCompletedAt = &completed
	batch.LastUpdatedAt = completed

	switch {
	case cancelled.Load():
		batch.Status = domain.BatchCancelled
	case len(failures) == 0:
		batch.Status = domain.BatchCompleted
	default:
		batch.Status = domain.BatchFailed
		sort.Slice(failures, func(a, b int) bool { return failures[a].index < failures[b].index })
		msgs := make([]string, len(failures))
		for i, f := range failures {
			msgs[i] = fmt.Sprintf("item %d: %v", f.index, f.err)
		}
		batch.ErrorMessage = strings.Join(msgs, "; ")
	}

	if err := s.batchRepo.UpdateBatch(ctx, batch); err != nil {
		logger.Error("Failed to finalize batch", slog.String("error", err.Error()))
		return
	}
	logger.Info("Batch processing finished",
		slog.String("status", string(batch.Status)),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", len(failures)))
}

func (s *batchService) GetBatch(ctx context.Context, companyID, batchID string) (*domain.BatchTransaction, []domain.Transaction, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, companyID, batchID)
	if err != nil {
		return nil, nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByBatchID(ctx, companyID, batchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list batch transactions: %w", err)
	}
	return batch, txns, nil
}

func (s *batchService) GetBatchStatus(ctx context.Context, companyID, batchID string) (domain.BatchStatus, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, companyID, batchID)
	if err != nil {
		return "", err
	}
	return batch.Status, nil
}

func (s *batchService) CancelBatch(ctx context.Context, companyID, batchID string) error {
	batch, err := s.batchRepo.FindBatchByID(ctx, companyID, batchID)
	if err != nil {
		return err
	}
	switch batch.Status {
	case domain.BatchPending, domain.BatchProcessing:
	default:
		return apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("batch %s already finished with status %s", batchID, batch.Status), apperrors.ErrConflict)
	}
	return s.batchRepo.RequestCancel(ctx, companyID, batchID)
}
