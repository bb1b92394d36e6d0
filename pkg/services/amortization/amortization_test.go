package amortization

import (
	"errors"
	"math"
	"testing"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment_KnownLoans(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		years     int
		rate      float64
		expected  int64
	}{
		// 240000 * (r(1+r)^300)/((1+r)^300-1) = 1201.4966
		{name: "25y at 3.5%", principal: 240000, years: 25, rate: 0.035, expected: 1202},
		// 763.8645
		{name: "30y at 4%", principal: 160000, years: 30, rate: 0.04, expected: 764},
		{name: "zero principal", principal: 0, years: 10, rate: 0.05, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthlyPayment(tt.principal, tt.years, tt.rate)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMonthlyPayment_InvalidDomain_ReturnsDomainError(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		years     int
		rate      float64
		field     string
	}{
		{name: "zero rate", principal: 1000, years: 10, rate: 0, field: "MORTGAGE_LOAN_APR"},
		{name: "rate of 100%", principal: 1000, years: 10, rate: 1, field: "MORTGAGE_LOAN_APR"},
		{name: "zero term", principal: 1000, years: 0, rate: 0.03, field: "MORTGAGE_LOAN_YRS"},
		{name: "negative principal", principal: -1, years: 10, rate: 0.03, field: "LOAN_AMOUNT"},
		{name: "infinite principal", principal: math.Inf(1), years: 10, rate: 0.03, field: "LOAN_AMOUNT"},
		{name: "payment beyond int64", principal: 1e30, years: 10, rate: 0.03, field: "MONTHLY_PAYMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MonthlyPayment(tt.principal, tt.years, tt.rate)

			var domainErr *domain.DomainError
			require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
			assert.Equal(t, tt.field, domainErr.Field)
		})
	}
}

func TestRemainingBalance_BeyondInt64_ReturnsDomainError(t *testing.T) {
	_, err := RemainingBalance(8e19, 25, 0.035, 1)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LOAN_BALANCE", domainErr.Field)
}

func TestRemainingBalance_AfterFirstYear(t *testing.T) {
	// When
	balance, err := RemainingBalance(160000, 30, 0.04, 1)

	// Then
	require.NoError(t, err)
	assert.Equal(t, int64(157183), balance)
}

func TestRemainingBalance_FullTerm_RetiresPrincipal(t *testing.T) {
	for _, years := range []int{5, 15, 25, 30} {
		balance, err := RemainingBalance(240000, years, 0.035, years)

		require.NoError(t, err)
		assert.LessOrEqual(t, balance, int64(1), "term %d should retire the loan", years)
	}
}

func TestRemainingBalance_NothingElapsed_ReturnsPrincipal(t *testing.T) {
	balance, err := RemainingBalance(200000, 20, 0.05, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(200000), balance)
}

func TestRemainingBalance_ElapsedOutOfRange_ReturnsDomainError(t *testing.T) {
	_, err := RemainingBalance(200000, 20, 0.05, 21)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "YEARS_ELAPSED", domainErr.Field)
}

func TestPaymentAndBalance_MonotonicInPrincipal(t *testing.T) {
	var prevPayment, prevBalance int64
	for principal := 0.0; principal <= 500000; principal += 12345 {
		payment, err := MonthlyPayment(principal, 25, 0.035)
		require.NoError(t, err)
		balance, err := RemainingBalance(principal, 25, 0.035, 10)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, payment, prevPayment)
		assert.GreaterOrEqual(t, balance, prevBalance)
		prevPayment, prevBalance = payment, balance
	}
}
