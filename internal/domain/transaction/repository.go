package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)
	ListByAgreementID(ctx context.Context, agreementID string) ([]*Transaction, error)

	// FinalizeStatus moves a pending transaction to completed or failed.
	// Amount, method and agreement linkage are never touched; any other
	// transition is rejected.
	FinalizeStatus(ctx context.Context, transactionID string, status Status) error

	// SumCompletedByType totals completed transactions of one type for an
	// agreement (repayment progress for the completion check).
	SumCompletedByType(ctx context.Context, agreementID string, t Type) (float64, error)
}
