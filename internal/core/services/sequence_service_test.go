package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/finbooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/finbooks/ledger-engine/internal/core/ports/repositories"
	"github.com/finbooks/ledger-engine/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSequenceRepository is an in-memory counter store. Like the real one it
// hands out each value exactly once per scope.
type fakeSequenceRepository struct {
	mu       sync.Mutex
	counters map[string]int64
}

var _ portsrepo.SequenceRepositoryFacade = (*fakeSequenceRepository)(nil)

func newFakeSequenceRepository() *fakeSequenceRepository {
	return &fakeSequenceRepository{counters: make(map[string]int64)}
}

func (f *fakeSequenceRepository) next(companyID, documentType string, year int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s|%s|%d", companyID, documentType, year)
	f.counters[key]++
	return f.counters[key]
}

func (f *fakeSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, companyID, documentType string, year int) (int64, error) {
	return f.next(companyID, documentType, year), nil
}

func (f *fakeSequenceRepository) NextValue(ctx context.Context, companyID, documentType string, year int) (int64, error) {
	return f.next(companyID, documentType, year), nil
}

func TestSequenceService_NumberFormat(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	svc := services.NewSequenceService(newFakeSequenceRepository())

	first, err := svc.NextTransactionNumber(ctx, companyID, domain.JournalEntry, 2025)
	require.NoError(t, err)
	assert.Equal(t, "JE2025000001", first)

	second, err := svc.NextTransactionNumber(ctx, companyID, domain.JournalEntry, 2025)
	require.NoError(t, err)
	assert.Equal(t, "JE2025000002", second)

	invoice, err := svc.NextTransactionNumber(ctx, companyID, domain.Invoice, 2025)
	require.NoError(t, err)
	assert.Equal(t, "INV2025000001", invoice)
}

func TestSequenceService_ScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	otherCompanyID := uuid.NewString()
	svc := services.NewSequenceService(newFakeSequenceRepository())

	a, err := svc.NextTransactionNumber(ctx, companyID, domain.Payment, 2025)
	require.NoError(t, err)
	b, err := svc.NextTransactionNumber(ctx, otherCompanyID, domain.Payment, 2025)
	require.NoError(t, err)
	c, err := svc.NextTransactionNumber(ctx, companyID, domain.Payment, 2026)
	require.NoError(t, err)

	// Each scope starts its own counter at 1.
	assert.Equal(t, "PAY2025000001", a)
	assert.Equal(t, "PAY2025000001", b)
	assert.Equal(t, "PAY2026000001", c)
}

func TestSequenceService_BatchNumber(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSequenceService(newFakeSequenceRepository())

	number, err := svc.NextBatchNumber(ctx, uuid.NewString(), 2025)
	require.NoError(t, err)
	assert.Equal(t, "BAT2025000001", number)
}

func TestSequenceService_ConcurrentAllocationsAreUnique(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	svc := services.NewSequenceService(newFakeSequenceRepository())

	const callers = 50
	numbers := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := svc.NextTransactionNumber(ctx, companyID, domain.JournalEntry, 2025)
			assert.NoError(t, err)
			numbers <- number
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool, callers)
	for number := range numbers {
		assert.False(t, seen[number], "number %s allocated twice", number)
		seen[number] = true
	}
	assert.Len(t, seen, callers)
}
