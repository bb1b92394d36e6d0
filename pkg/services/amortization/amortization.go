// Package amortization implements fixed-rate mortgage formulas.
//
// Both functions round up to the next whole currency unit: a payment or balance
// that under-covers the loan is never reported.
package amortization

import (
	"fmt"
	"math"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

const MonthsPerYear = 12

// Loan describes a fixed-rate, fully amortizing loan.
type Loan struct {
	Principal  float64
	Years      int
	AnnualRate float64 // e.g. 0.035 for 3.5%
}

// Validate checks the loan against the domain where the formulas are defined.
func (l Loan) Validate() error {
	if l.Principal < 0 || math.IsNaN(l.Principal) || math.IsInf(l.Principal, 0) {
		return &domain.DomainError{Field: "LOAN_AMOUNT", Reason: fmt.Sprintf("principal must be >= 0, got %v", l.Principal)}
	}
	if l.Years <= 0 {
		return &domain.DomainError{Field: "MORTGAGE_LOAN_YRS", Reason: fmt.Sprintf("term must be > 0 years, got %d", l.Years)}
	}
	if !(l.AnnualRate > 0 && l.AnnualRate < 1) {
		return &domain.DomainError{Field: "MORTGAGE_LOAN_APR", Reason: fmt.Sprintf("annual rate must be in (0, 1), got %v", l.AnnualRate)}
	}
	return nil
}

// MonthlyPayment returns the constant monthly installment
//
//	payment = P * (r*(1+r)^n) / ((1+r)^n - 1),  r = rate/12, n = 12*years
//
// rounded up to an integer.
func MonthlyPayment(principal float64, years int, annualRate float64) (int64, error) {
	loan := Loan{Principal: principal, Years: years, AnnualRate: annualRate}
	if err := loan.Validate(); err != nil {
		return 0, err
	}

	r := annualRate / MonthsPerYear
	growth := math.Pow(1+r, float64(MonthsPerYear*years))
	payment := principal * (r * growth) / (growth - 1)
	return roundUp("MONTHLY_PAYMENT", payment)
}

// RemainingBalance returns the outstanding principal after yearsElapsed years
//
//	balance = P * ((1+r)^n - (1+r)^p) / ((1+r)^n - 1),  p = 12*yearsElapsed
//
// rounded up to an integer.
func RemainingBalance(principal float64, years int, annualRate float64, yearsElapsed int) (int64, error) {
	loan := Loan{Principal: principal, Years: years, AnnualRate: annualRate}
	if err := loan.Validate(); err != nil {
		return 0, err
	}
	if yearsElapsed < 0 || yearsElapsed > years {
		return 0, &domain.DomainError{
			Field:  "YEARS_ELAPSED",
			Reason: fmt.Sprintf("must be within [0, %d], got %d", years, yearsElapsed),
		}
	}

	r := annualRate / MonthsPerYear
	growth := math.Pow(1+r, float64(MonthsPerYear*years))
	paid := math.Pow(1+r, float64(MonthsPerYear*yearsElapsed))
	balance := principal * (growth - paid) / (growth - 1)
	return roundUp("LOAN_BALANCE", balance)
}

// roundUp returns ceil(f), failing when it does not fit an int64.
func roundUp(field string, f float64) (int64, error) {
	c := math.Ceil(f)
	if math.IsNaN(c) || c >= float64(math.MaxInt64) || c < float64(math.MinInt64) {
		return 0, &domain.DomainError{Field: field, Reason: fmt.Sprintf("%v is not representable as a whole amount", f)}
	}
	return int64(c), nil
}
