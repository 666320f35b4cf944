// Package contract produces the durable loan agreement document generated
// when an agreement goes active. The hosting application may substitute its
// own Generator (e.g. a PDF renderer); the default renders plain text.
package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lendit-backend/pkg/currency"
	"lendit-backend/pkg/finance"
	"lendit-backend/pkg/id"
)

// Data is everything the document needs, supplied by the accept flow.
type Data struct {
	AgreementID   string
	LenderName    string
	LenderEmail   string
	BorrowerName  string
	BorrowerEmail string

	Amount         float64
	InterestRate   float64
	DurationMonths int
	Purpose        string
	StartDate      time.Time
	MonthlyPayment float64
	TotalRepayment float64
	Schedule       []finance.Installment

	SmartContract bool
	WalletAddress string
}

// Generator renders a Data into a durable artifact and returns a reference
// to it (a link or inline identifier the UI can resolve).
type Generator interface {
	Generate(ctx context.Context, d Data) (link string, err error)
}

// TextGenerator is the built-in implementation; it renders the contract as
// plain text and hands it to a Store for safekeeping.
type TextGenerator struct {
	store Store
}

// Store persists a rendered document and returns its link.
type Store interface {
	Put(ctx context.Context, name string, body []byte) (link string, err error)
}

func NewTextGenerator(store Store) *TextGenerator { return &TextGenerator{store: store} }

var clauses = []string{
	"1. REPAYMENT: The Borrower agrees to repay the loan in equal monthly installments as specified above.",
	"2. DEFAULT: If any payment is more than 30 days late, the entire loan balance becomes immediately due.",
	"3. EARLY PAYMENT: The Borrower may prepay the loan in full or in part at any time without penalty.",
	"4. GOVERNING LAW: This agreement shall be governed by the laws of the jurisdiction where it is executed.",
	"5. SMART CONTRACT: If applicable, this agreement is secured by a blockchain smart contract for automated execution.",
	"6. DISPUTE RESOLUTION: Any disputes arising from this agreement shall be resolved through binding arbitration.",
	"7. ENTIRE AGREEMENT: This contract represents the complete agreement between the parties.",
}

func (g *TextGenerator) Generate(ctx context.Context, d Data) (string, error) {
	body := Render(d)
	name := fmt.Sprintf("loan_contract_%s_%s.txt", d.AgreementID, id.NewShort())
	link, err := g.store.Put(ctx, name, []byte(body))
	if err != nil {
		return "", fmt.Errorf("storing contract document: %w", err)
	}
	return link, nil
}

// Render produces the document text. Exposed separately so tests and
// alternative stores can use it directly.
func Render(d Data) string {
	var b strings.Builder
	end := d.StartDate.AddDate(0, d.DurationMonths, 0)

	fmt.Fprintf(&b, "LOAN AGREEMENT CONTRACT\n")
	fmt.Fprintf(&b, "Agreement: %s\nContract Date: %s\n\n", d.AgreementID, d.StartDate.Format("02 Jan 2006"))

	fmt.Fprintf(&b, "PARTIES TO THE AGREEMENT\n")
	fmt.Fprintf(&b, "LENDER:   %s <%s>\n", d.LenderName, d.LenderEmail)
	fmt.Fprintf(&b, "BORROWER: %s <%s>\n", d.BorrowerName, d.BorrowerEmail)
	if d.SmartContract && d.WalletAddress != "" {
		fmt.Fprintf(&b, "Settlement Wallet: %s\n", d.WalletAddress)
	}
	b.WriteString("\nLOAN TERMS AND CONDITIONS\n")
	fmt.Fprintf(&b, "- Principal Amount: %s\n", currency.Format(d.Amount))
	fmt.Fprintf(&b, "- Interest Rate: %.2f%% per annum\n", d.InterestRate)
	fmt.Fprintf(&b, "- Loan Duration: %d months\n", d.DurationMonths)
	fmt.Fprintf(&b, "- Purpose: %s\n", d.Purpose)
	fmt.Fprintf(&b, "- Start Date: %s\n", d.StartDate.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "- End Date: %s\n", end.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "- Monthly Payment: %s\n", currency.Format(d.MonthlyPayment))
	fmt.Fprintf(&b, "- Total Repayment: %s\n", currency.Format(d.TotalRepayment))

	if len(d.Schedule) > 0 {
		b.WriteString("\nREPAYMENT SCHEDULE\n")
		for _, in := range d.Schedule {
			fmt.Fprintf(&b, "%3d  %s  payment %s  (principal %s, interest %s)\n",
				in.Number, in.DueDate.Format("02 Jan 2006"),
				currency.Format(finance.RoundPaise(in.Payment)),
				currency.Format(finance.RoundPaise(in.Principal)),
				currency.Format(finance.RoundPaise(in.Interest)))
		}
	}

	b.WriteString("\nTERMS AND CONDITIONS\n")
	for _, c := range clauses {
		b.WriteString(c)
		b.WriteByte('\n')
	}

	b.WriteString("\nSIGNATURES\n")
	fmt.Fprintf(&b, "LENDER:   %s    Date: ____________\n", d.LenderName)
	fmt.Fprintf(&b, "BORROWER: %s    Date: ____________\n", d.BorrowerName)
	return b.String()
}
