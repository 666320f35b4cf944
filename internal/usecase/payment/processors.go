package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"lendit-backend/internal/domain/payment"
	"lendit-backend/internal/domain/transaction"
)

// Outcome is a processor's normalized answer: the backend reference, the
// transaction status to persist, and anything worth echoing to the caller.
type Outcome struct {
	Reference string
	Status    transaction.Status
	Message   string
	Metadata  map[string]any
}

// Processor settles one payment method. Implementations are pure over the
// intent; persistence happens in the dispatcher afterwards.
type Processor interface {
	Method() payment.Method
	Process(intent Intent) Outcome
}

// reference builds the backend-style payment reference, honoring a
// caller-supplied idempotency reference when present.
func reference(method payment.Method, intent Intent) string {
	if intent.Reference != "" {
		return intent.Reference
	}
	return fmt.Sprintf("%s_%s", method, uuid.NewString())
}

// upiProcessor settles instantly against the configured merchant VPA.
type upiProcessor struct {
	merchantVPA string
}

func (upiProcessor) Method() payment.Method { return payment.MethodUPI }

func (p upiProcessor) Process(intent Intent) Outcome {
	return Outcome{
		Reference: reference(payment.MethodUPI, intent),
		Status:    transaction.StatusCompleted,
		Message:   "UPI payment processed successfully",
		Metadata: map[string]any{
			"vpa":          intent.Metadata.UPIAddress,
			"merchant_vpa": p.merchantVPA,
		},
	}
}

// bankProcessor queues an NEFT/IMPS transfer; reconciliation finalizes it.
type bankProcessor struct{}

func (bankProcessor) Method() payment.Method { return payment.MethodBank }

func (bankProcessor) Process(intent Intent) Outcome {
	return Outcome{
		Reference: reference(payment.MethodBank, intent),
		Status:    transaction.StatusPending,
		Message:   "Bank transfer initiated; settlement expected within hours",
		Metadata: map[string]any{
			"account_number": maskAccount(intent.Metadata.AccountNumber),
			"ifsc":           intent.Metadata.IFSC,
		},
	}
}

func maskAccount(acct string) string {
	if len(acct) <= 4 {
		return acct
	}
	return "****" + acct[len(acct)-4:]
}

// walletProcessor settles instantly, deducting the platform fee.
type walletProcessor struct{}

func (walletProcessor) Method() payment.Method { return payment.MethodWallet }

func (walletProcessor) Process(intent Intent) Outcome {
	capability, _ := payment.CapabilityFor(payment.MethodWallet)
	fee := capability.Fee(intent.Amount)
	return Outcome{
		Reference: reference(payment.MethodWallet, intent),
		Status:    transaction.StatusCompleted,
		Message:   "Wallet payment processed successfully",
		Metadata: map[string]any{
			"wallet_id": intent.Metadata.WalletID,
			"fee":       fee,
			"net":       intent.Amount - fee,
		},
	}
}

// cryptoProcessor broadcasts on the selected network; confirmation is
// asynchronous so the transaction stays pending.
type cryptoProcessor struct {
	defaultNetwork payment.Network
}

func (cryptoProcessor) Method() payment.Method { return payment.MethodCrypto }

func (p cryptoProcessor) Process(intent Intent) Outcome {
	network := intent.Metadata.Network
	if network == "" {
		network = p.defaultNetwork
	}
	return Outcome{
		Reference: reference(payment.MethodCrypto, intent),
		Status:    transaction.StatusPending,
		Message:   fmt.Sprintf("Transfer broadcast on %s; confirmation expected within 10-60 minutes", network),
		Metadata: map[string]any{
			"network":   network,
			"recipient": intent.Metadata.CryptoAddress,
			"broadcast": time.Now().UTC(),
		},
	}
}

// cashProcessor records an in-person handover as completed immediately.
type cashProcessor struct{}

func (cashProcessor) Method() payment.Method { return payment.MethodCash }

func (cashProcessor) Process(intent Intent) Outcome {
	md := map[string]any{}
	if intent.Metadata.Note != "" {
		md["note"] = intent.Metadata.Note
	}
	return Outcome{
		Reference: reference(payment.MethodCash, intent),
		Status:    transaction.StatusCompleted,
		Message:   "Cash payment recorded successfully",
		Metadata:  md,
	}
}
