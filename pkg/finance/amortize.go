// Package finance holds the pure loan arithmetic shared by the state
// machine, the settlement layer and the contract generator. All figures are
// float64 rupee amounts; callers round for display only.
package finance

import (
	"math"
	"time"
)

// MonthlyPayment returns the equal monthly installment for an amortizing
// loan. annualRatePct is the yearly percentage rate (12 means 12%). A zero
// rate degenerates to flat division of the principal.
func MonthlyPayment(principal, annualRatePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if annualRatePct == 0 {
		return principal / float64(months)
	}
	r := annualRatePct / 100 / 12
	pow := math.Pow(1+r, float64(months))
	return principal * (r * pow) / (pow - 1)
}

// TotalRepayment is the amortized total over the full duration: the
// installment as actually charged (rounded to the paisa) times the number of
// months. This is the single repayment figure used everywhere (display,
// acceptance snapshot, completion check); no simple-interest shortcut exists.
func TotalRepayment(principal, annualRatePct float64, months int) float64 {
	return RoundPaise(MonthlyPayment(principal, annualRatePct, months)) * float64(months)
}

// RoundPaise rounds a rupee amount to the nearest paisa.
func RoundPaise(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Number    int       `json:"number"`
	DueDate   time.Time `json:"due_date"`
	Payment   float64   `json:"payment"`
	Principal float64   `json:"principal"`
	Interest  float64   `json:"interest"`
	Balance   float64   `json:"balance"`
}

// Schedule expands a loan into monthly installments starting one month after
// start. The last installment absorbs rounding drift so the principal
// portions sum to the principal exactly.
func Schedule(principal, annualRatePct float64, months int, start time.Time) []Installment {
	if months <= 0 {
		return nil
	}
	payment := MonthlyPayment(principal, annualRatePct, months)
	monthlyRate := annualRatePct / 100 / 12

	out := make([]Installment, 0, months)
	balance := principal
	for i := 1; i <= months; i++ {
		interest := balance * monthlyRate
		principalPart := payment - interest
		if i == months {
			// Absorb float drift into the final installment.
			principalPart = balance
			payment = principalPart + interest
		}
		balance -= principalPart
		out = append(out, Installment{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Payment:   payment,
			Principal: principalPart,
			Interest:  interest,
			Balance:   math.Max(balance, 0),
		})
	}
	return out
}
