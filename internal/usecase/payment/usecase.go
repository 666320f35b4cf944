// Package payment routes a payment intent to its settlement processor,
// normalizes the outcome into one result shape, and persists the
// transaction record. Business failures (over-cap amounts, malformed
// metadata, processor declines) come back as Success=false results; an
// error return means the persistence layer itself failed and the call is
// retryable.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	domainAgreement "lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/notification"
	"lendit-backend/internal/domain/payment"
	"lendit-backend/internal/domain/transaction"
	"lendit-backend/pkg/currency"
	"lendit-backend/pkg/id"
)

// Intent is one caller action: move Amount through Method against an active
// agreement. Reference, when set, is the caller's idempotency key; the
// dispatcher does not deduplicate on it itself (the HTTP idempotency layer
// does), it only reuses it as the payment reference.
type Intent struct {
	AgreementID string
	Type        transaction.Type
	Amount      float64
	Method      payment.Method
	PayerID     string
	RecipientID string
	Reference   string
	Metadata    payment.Metadata
}

// PaymentResult is the uniform contract every settlement path reports
// through, success or not.
type PaymentResult struct {
	Success       bool           `json:"success"`
	TransactionID string         `json:"transaction_id,omitempty"`
	ReferenceID   string         `json:"reference_id,omitempty"`
	Status        string         `json:"status,omitempty"`
	Message       string         `json:"message"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

func failure(msg string) PaymentResult { return PaymentResult{Success: false, Message: msg} }

// Config carries the settlement settings the processors need.
type Config struct {
	MerchantVPA          string
	DefaultCryptoNetwork payment.Network
}

type Usecase struct {
	agreements     domainAgreement.Repository
	txns           transaction.Repository
	notifs         notification.Repository
	processors     map[payment.Method]Processor
	defaultNetwork payment.Network
}

func NewUsecase(agreements domainAgreement.Repository, txns transaction.Repository, notifs notification.Repository, cfg Config) *Usecase {
	procs := []Processor{
		upiProcessor{merchantVPA: cfg.MerchantVPA},
		bankProcessor{},
		walletProcessor{},
		cryptoProcessor{defaultNetwork: cfg.DefaultCryptoNetwork},
		cashProcessor{},
	}
	byMethod := make(map[payment.Method]Processor, len(procs))
	for _, p := range procs {
		byMethod[p.Method()] = p
	}
	return &Usecase{
		agreements:     agreements,
		txns:           txns,
		notifs:         notifs,
		processors:     byMethod,
		defaultNetwork: cfg.DefaultCryptoNetwork,
	}
}

// ProcessPayment validates the intent, dispatches to the method's processor
// and persists the transaction row. Validation rejects happen before any
// write so pure input errors never leave orphaned failed rows.
func (u *Usecase) ProcessPayment(ctx context.Context, in Intent) (PaymentResult, error) {
	method, err := payment.ParseMethod(string(in.Method))
	if err != nil {
		return failure(err.Error()), nil
	}
	if in.Amount <= 0 {
		return failure("amount must be positive"), nil
	}
	if !transaction.ValidType(in.Type) {
		return failure(fmt.Sprintf("unknown transaction type %q", in.Type)), nil
	}

	capability, ok := payment.CapabilityFor(method)
	if !ok {
		return failure(fmt.Sprintf("no capability registered for %q", method)), nil
	}
	if !capability.WithinLimit(in.Amount) {
		return failure(fmt.Sprintf("amount %s exceeds the %s limit of %s",
			currency.Format(in.Amount), capability.Name, currency.Format(capability.MaxAmount))), nil
	}
	if method == payment.MethodCrypto && in.Metadata.Network == "" {
		in.Metadata.Network = u.defaultNetwork
	}
	if err := in.Metadata.Validate(method); err != nil {
		return failure(err.Error()), nil
	}

	// Settlement is only meaningful against a live, active agreement.
	a, err := u.agreements.GetByAgreementID(ctx, in.AgreementID)
	if err != nil {
		if IsNotFound(err) {
			return failure("agreement not found"), nil
		}
		return PaymentResult{}, fmt.Errorf("loading agreement: %w", err)
	}
	if a.Status != domainAgreement.StatusActive {
		return failure(fmt.Sprintf("agreement is %s; payments require an active agreement", a.Status)), nil
	}

	outcome := u.processors[method].Process(in)

	txn := &transaction.Transaction{
		TransactionID: id.NewID32(),
		AgreementID:   in.AgreementID,
		Type:          in.Type,
		Amount:        in.Amount,
		Method:        method,
		Reference:     outcome.Reference,
		PayerID:       in.PayerID,
		RecipientID:   in.RecipientID,
		Status:        outcome.Status,
	}
	if err := u.txns.Create(ctx, txn); err != nil {
		// Infrastructure fault: surface as error so the caller retries.
		return PaymentResult{}, fmt.Errorf("persisting transaction: %w", err)
	}

	u.notifyRecipient(ctx, in, txn)

	return PaymentResult{
		Success:       true,
		TransactionID: txn.TransactionID,
		ReferenceID:   outcome.Reference,
		Status:        string(outcome.Status),
		Message:       outcome.Message,
		Metadata:      outcome.Metadata,
	}, nil
}

// FinalizeTransaction is the hook for the external reconciliation process of
// delayed methods: pending → completed/failed by id, nothing else mutable.
func (u *Usecase) FinalizeTransaction(ctx context.Context, transactionID string, status transaction.Status) error {
	if status != transaction.StatusCompleted && status != transaction.StatusFailed {
		return fmt.Errorf("transactions finalize to completed or failed, not %q", status)
	}
	return u.txns.FinalizeStatus(ctx, transactionID, status)
}

// ListTransactions returns an agreement's settlement history to one of its
// parties.
func (u *Usecase) ListTransactions(ctx context.Context, callerID, agreementID string) ([]*transaction.Transaction, error) {
	a, err := u.agreements.GetByAgreementID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if callerID != a.BorrowerID && callerID != a.LenderID {
		return nil, domainAgreement.ErrNotAuthorized
	}
	return u.txns.ListByAgreementID(ctx, agreementID)
}

func (u *Usecase) notifyRecipient(ctx context.Context, in Intent, txn *transaction.Transaction) {
	if u.notifs == nil || in.RecipientID == "" {
		return
	}
	n := &notification.Notification{
		NotificationID: id.NewID32(),
		UserID:         in.RecipientID,
		Type:           notification.TypePaymentReceived,
		Title:          "Payment received",
		Message: fmt.Sprintf("A %s of %s via %s is %s.",
			in.Type, currency.Format(in.Amount), in.Method, txn.Status),
		AgreementID: in.AgreementID,
	}
	if err := u.notifs.Create(ctx, n); err != nil {
		log.Printf("payment notification to %s failed: %v", in.RecipientID, err)
	}
}

// IsNotFound reports a missing agreement.
func IsNotFound(err error) bool { return errors.Is(err, domainAgreement.ErrNotFound) }
