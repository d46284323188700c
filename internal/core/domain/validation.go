package domain

// Machine codes carried by validation errors and warnings.
const (
	CodeMinEntriesRequired          = "MIN_ENTRIES_REQUIRED"
	CodeBothDebitCredit             = "BOTH_DEBIT_CREDIT"
	CodeNoAmount                    = "NO_AMOUNT"
	CodeAccountNotFound             = "ACCOUNT_NOT_FOUND"
	CodeAccountNoDirectTransactions = "ACCOUNT_NO_DIRECT_TRANSACTIONS"
	CodeAccountInactive             = "ACCOUNT_INACTIVE"
	CodeUnbalancedEntries           = "UNBALANCED_ENTRIES"
	CodeLargeAmount                 = "LARGE_AMOUNT"
)

// ValidationError describes one client-fixable problem with a candidate
// entry set. Value carries the offending input verbatim.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ValidationWarning has the same shape as ValidationError but never blocks.
type ValidationWarning struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ValidationResult is the ephemeral outcome of validating a candidate entry
// set. IsValid is true iff Errors is empty; warnings never block.
type ValidationResult struct {
	IsValid  bool                `json:"isValid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

// AddError appends an error and flips IsValid.
func (r *ValidationResult) AddError(field, code, message, value string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Code: code, Message: message, Value: value})
	r.IsValid = false
}

// AddWarning appends a non-blocking warning.
func (r *ValidationResult) AddWarning(field, code, message, value string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Field: field, Code: code, Message: message, Value: value})
}
