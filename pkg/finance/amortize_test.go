package finance

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) < tol }

func TestMonthlyPayment_StandardLoan(t *testing.T) {
	// 100000 @ 12% over 12 months: textbook amortization result.
	got := MonthlyPayment(100000, 12, 12)
	if !almostEqual(got, 8884.88, 0.01) {
		t.Fatalf("monthly payment = %.4f, want 8884.88", got)
	}

	total := TotalRepayment(100000, 12, 12)
	if !almostEqual(total, 106618.56, 0.01) {
		t.Fatalf("total repayment = %.4f, want 106618.56", total)
	}
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	got := MonthlyPayment(12000, 0, 12)
	if got != 1000 {
		t.Fatalf("zero-rate monthly payment = %v, want 1000", got)
	}
	if total := TotalRepayment(12000, 0, 12); total != 12000 {
		t.Fatalf("zero-rate total = %v, want 12000", total)
	}
}

func TestMonthlyPayment_InvalidDuration(t *testing.T) {
	if got := MonthlyPayment(1000, 10, 0); got != 0 {
		t.Fatalf("expected 0 for zero months, got %v", got)
	}
}

func TestSchedule_SumsToPrincipal(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	sched := Schedule(250000, 14.5, 24, start)
	if len(sched) != 24 {
		t.Fatalf("installments = %d, want 24", len(sched))
	}

	var principalSum float64
	for _, in := range sched {
		principalSum += in.Principal
	}
	if !almostEqual(principalSum, 250000, 0.01) {
		t.Fatalf("principal portions sum to %.4f, want 250000", principalSum)
	}

	if sched[0].DueDate != start.AddDate(0, 1, 0) {
		t.Fatalf("first due date = %v", sched[0].DueDate)
	}
	if last := sched[len(sched)-1]; !almostEqual(last.Balance, 0, 0.01) {
		t.Fatalf("final balance = %.4f, want 0", last.Balance)
	}
}

func TestSchedule_ZeroRateInterestFree(t *testing.T) {
	sched := Schedule(12000, 0, 12, time.Now().UTC())
	for _, in := range sched {
		if in.Interest != 0 {
			t.Fatalf("installment %d has interest %v on a zero-rate loan", in.Number, in.Interest)
		}
	}
}
