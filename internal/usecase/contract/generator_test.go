package contract

import (
	"context"
	"strings"
	"testing"
	"time"

	"lendit-backend/pkg/finance"
)

type memStore struct{ docs map[string][]byte }

func (m *memStore) Put(_ context.Context, name string, body []byte) (string, error) {
	if m.docs == nil {
		m.docs = map[string][]byte{}
	}
	m.docs[name] = body
	return "mem://" + name, nil
}

func sampleData() Data {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return Data{
		AgreementID:    "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		LenderName:     "Asha Lender",
		LenderEmail:    "asha@example.com",
		BorrowerName:   "Bharat Borrower",
		BorrowerEmail:  "bharat@example.com",
		Amount:         100000,
		InterestRate:   12,
		DurationMonths: 12,
		Purpose:        "business",
		StartDate:      start,
		MonthlyPayment: finance.MonthlyPayment(100000, 12, 12),
		TotalRepayment: finance.TotalRepayment(100000, 12, 12),
		Schedule:       finance.Schedule(100000, 12, 12, start),
	}
}

func TestRender_ContainsTermsAndSchedule(t *testing.T) {
	out := Render(sampleData())

	for _, want := range []string{
		"LOAN AGREEMENT CONTRACT",
		"Asha Lender",
		"Bharat Borrower",
		"₹1,00,000.00",
		"12.00% per annum",
		"12 months",
		"₹8,884.88",
		"₹1,06,618.56",
		"REPAYMENT SCHEDULE",
		"SIGNATURES",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered contract missing %q", want)
		}
	}
	if lines := strings.Count(out, "payment ₹"); lines != 12 {
		t.Errorf("schedule rows = %d, want 12", lines)
	}
}

func TestTextGenerator_StoresAndLinks(t *testing.T) {
	store := &memStore{}
	gen := NewTextGenerator(store)

	link, err := gen.Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(link, "mem://loan_contract_") {
		t.Fatalf("unexpected link %q", link)
	}
	if len(store.docs) != 1 {
		t.Fatalf("stored docs = %d, want 1", len(store.docs))
	}
}
