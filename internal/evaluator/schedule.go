package evaluator

import (
	"math"

	"github.com/eci-capital/condo-evaluator/pkg/mathutil"
)

// CalculateAnnualPayment calculates the fixed annual loan payment using the
// standard amortization formula.
func CalculateAnnualPayment(loanAmount, annualInterestRate float64, termYears int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the loan amount by term
		return loanAmount / float64(termYears)
	}

	power := math.Pow(1.0+annualInterestRate, float64(termYears))
	return loanAmount * annualInterestRate * power / (power - 1.0)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingBalance, annualInterestRate float64) float64 {
	return remainingBalance * annualInterestRate
}

// GenerateSchedule walks the loan year by year, splitting the fixed payment
// into interest and principal. The caller passes the payment it will
// actually charge (rounded to cents), so the final remaining balance may be
// slightly non-zero.
func GenerateSchedule(loanAmount, annualInterestRate, annualPayment float64, termYears int) []ScheduleRow {
	schedule := make([]ScheduleRow, 0, termYears)
	remaining := loanAmount

	for year := 1; year <= termYears; year++ {
		interest := CalculateInterestPayment(remaining, annualInterestRate)
		principal := annualPayment - interest
		remaining -= principal
		schedule = append(schedule, ScheduleRow{
			Year:             year,
			Payment:          annualPayment,
			Interest:         interest,
			Principal:        principal,
			RemainingBalance: remaining,
		})
	}

	return schedule
}

// ProjectNetBenefit extrapolates both asset values at their assumed growth
// rates for years 0 through the loan term. Year 0 carries the unmodified
// starting values. This is a plain compound-growth extrapolation with no
// discounting.
func ProjectNetBenefit(collateralValue, condoPrice float64, assumptions Assumptions) []ProjectionPoint {
	points := make([]ProjectionPoint, 0, assumptions.LoanTermYears+1)
	for year := 0; year <= assumptions.LoanTermYears; year++ {
		btcValue := mathutil.CompoundGrowth(collateralValue, assumptions.BTCGrowthRate, year)
		condoValue := mathutil.CompoundGrowth(condoPrice, assumptions.CondoAppreciationRate, year)
		points = append(points, ProjectionPoint{
			Year:       year,
			BTCValue:   btcValue,
			CondoValue: condoValue,
			NetBenefit: btcValue + condoValue,
		})
	}
	return points
}
