// Package payment describes the five settlement methods and what each one is
// capable of: amount ceiling, fee model, instant versus delayed completion,
// and the metadata its processor needs.
package payment

import (
	"fmt"
	"regexp"
	"strings"
)

type Method string

const (
	MethodUPI    Method = "upi"
	MethodBank   Method = "bank"
	MethodWallet Method = "wallet"
	MethodCrypto Method = "crypto"
	MethodCash   Method = "cash"
)

// ParseMethod validates a wire-level method string.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MethodUPI, MethodBank, MethodWallet, MethodCrypto, MethodCash:
		return m, nil
	}
	return "", fmt.Errorf("unsupported payment method: %q", s)
}

// Capability is the static description of one settlement method.
type Capability struct {
	Method      Method  `json:"method"`
	Name        string  `json:"name"`
	MaxAmount   float64 `json:"max_amount"`  // rupees; 0 means unbounded
	FeePercent  float64 `json:"fee_percent"` // 0 means free
	Instant     bool    `json:"instant"`     // delayed methods settle later via reconciliation
	Latency     string  `json:"latency"`     // human-readable expected completion time
	Description string  `json:"description"`
}

// WithinLimit reports whether amount fits under the method's ceiling.
func (c Capability) WithinLimit(amount float64) bool {
	return c.MaxAmount == 0 || amount <= c.MaxAmount
}

// Fee returns the platform fee charged on amount.
func (c Capability) Fee(amount float64) float64 {
	return amount * c.FeePercent / 100
}

var capabilities = map[Method]Capability{
	MethodUPI: {
		Method: MethodUPI, Name: "UPI", MaxAmount: 100_000,
		Instant: true, Latency: "instant",
		Description: "Unified Payments Interface transfer to a virtual payment address",
	},
	MethodBank: {
		Method: MethodBank, Name: "Bank Transfer", MaxAmount: 10_000_000,
		Instant: false, Latency: "2-4 hours",
		Description: "NEFT/IMPS transfer to an account number and IFSC",
	},
	MethodWallet: {
		Method: MethodWallet, Name: "Digital Wallet", MaxAmount: 200_000,
		FeePercent: 1.5, Instant: true, Latency: "instant",
		Description: "Wallet transfer identified by phone number or email",
	},
	MethodCrypto: {
		Method: MethodCrypto, Name: "Cryptocurrency",
		Instant: false, Latency: "10-60 minutes",
		Description: "On-chain transfer; network fee varies with congestion",
	},
	MethodCash: {
		Method: MethodCash, Name: "Cash", MaxAmount: 200_000,
		Instant: true, Latency: "instant (manually confirmed)",
		Description: "In-person handover recorded against the agreement",
	},
}

// CapabilityFor looks up the static capability record for a method.
func CapabilityFor(m Method) (Capability, bool) {
	c, ok := capabilities[m]
	return c, ok
}

// Capabilities returns all methods for listing in the UI, keyed by method.
func Capabilities() map[Method]Capability {
	out := make(map[Method]Capability, len(capabilities))
	for k, v := range capabilities {
		out[k] = v
	}
	return out
}

// Network selects the chain used for crypto settlement.
type Network string

const (
	NetworkEthereum Network = "ethereum"
	NetworkBitcoin  Network = "bitcoin"
)

var (
	reVPA         = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]+@[a-zA-Z]{2,}$`)
	reAccount     = regexp.MustCompile(`^[0-9]{9,18}$`)
	reIFSC        = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	rePhone       = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	reEmail       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reEthAddress  = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	reBtcLegacy   = regexp.MustCompile(`^[13][1-9A-HJ-NP-Za-km-z]{25,34}$`)
	reBtcBech32   = regexp.MustCompile(`^bc1[ac-hj-np-z02-9]{11,87}$`)
)

// Metadata carries the method-specific fields of a payment intent. Only the
// fields for the chosen method are consulted.
type Metadata struct {
	UPIAddress    string  `json:"upi_address,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	IFSC          string  `json:"ifsc,omitempty"`
	WalletID      string  `json:"wallet_id,omitempty"`
	CryptoAddress string  `json:"crypto_address,omitempty"`
	Network       Network `json:"network,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// Validate checks the metadata required by method. It returns a
// human-readable reason usable directly in a PaymentResult message.
func (md Metadata) Validate(method Method) error {
	switch method {
	case MethodUPI:
		if !reVPA.MatchString(md.UPIAddress) {
			return fmt.Errorf("invalid UPI id %q: expected local@provider", md.UPIAddress)
		}
	case MethodBank:
		if !reAccount.MatchString(md.AccountNumber) {
			return fmt.Errorf("invalid account number: expected 9-18 digits")
		}
		if !reIFSC.MatchString(md.IFSC) {
			return fmt.Errorf("invalid IFSC code %q", md.IFSC)
		}
	case MethodWallet:
		if !rePhone.MatchString(md.WalletID) && !reEmail.MatchString(md.WalletID) {
			return fmt.Errorf("invalid wallet id %q: expected phone number or email", md.WalletID)
		}
	case MethodCrypto:
		switch md.Network {
		case NetworkEthereum:
			if !reEthAddress.MatchString(md.CryptoAddress) {
				return fmt.Errorf("invalid ethereum address %q", md.CryptoAddress)
			}
		case NetworkBitcoin:
			if !reBtcLegacy.MatchString(md.CryptoAddress) && !reBtcBech32.MatchString(md.CryptoAddress) {
				return fmt.Errorf("invalid bitcoin address %q", md.CryptoAddress)
			}
		default:
			return fmt.Errorf("unsupported crypto network %q", md.Network)
		}
	case MethodCash:
		// Note is optional; nothing to check.
	default:
		return fmt.Errorf("unsupported payment method: %q", method)
	}
	return nil
}
