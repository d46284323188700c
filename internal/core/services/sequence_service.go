package services

import (
	"context"
	"fmt"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/ledger-engine/internal/core/ports/services"
	"github.com/finbooks/ledger-engine/internal/utils/accounting"
)

// sequenceService formats document numbers from counters the repository
// allocates atomically. Counters are scoped per company, document type and
// year, so concurrent callers can never observe the same value twice.
type sequenceService struct {
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

func NewSequenceService(sequenceRepo portsrepo.SequenceRepositoryFacade) portssvc.SequenceSvcFacade {
	return &sequenceService{sequenceRepo: sequenceRepo}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

func (s *sequenceService) NextTransactionNumber(ctx context.Context, companyID string, docType domain.TransactionType, year int) (string, error) {
	prefix := accounting.DocumentPrefix(docType)
	value, err := s.sequenceRepo.NextValue(ctx, companyID, prefix, year)
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s sequence: %w", prefix, err)
	}
	return accounting.FormatDocumentNumber(prefix, year, value), nil
}

func (s *sequenceService) NextBatchNumber(ctx context.Context, companyID string, year int) (string, error) {
	value, err := s.sequenceRepo.NextValue(ctx, companyID, accounting.BatchPrefix, year)
	if err != nil {
		return "", fmt.Errorf("failed to allocate batch sequence: %w", err)
	}
	return accounting.FormatDocumentNumber(accounting.BatchPrefix, year, value), nil
}
