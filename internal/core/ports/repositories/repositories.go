package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	AccountRepo     AccountRepositoryFacade
	SequenceRepo    SequenceRepositoryFacade
	BatchRepo       BatchRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
