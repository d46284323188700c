package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Validation     ValidationSvcFacade
	Sequence       SequenceSvcFacade
	Transaction    TransactionSvcFacade
	Batch          BatchSvcFacade
	Reconciliation ReconciliationSvcFacade
	Reporting      ReportingSvcFacade
}
