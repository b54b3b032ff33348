// Package evaluator implements the deal evaluation pipeline: collateral
// constraint check, loan structuring, amortization schedule, lender profit,
// and the investor's compound-growth projection.
//
// Evaluate is a pure function of its inputs; calling it twice with identical
// arguments yields identical results.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/eci-capital/condo-evaluator/pkg/constants"
	"github.com/eci-capital/condo-evaluator/pkg/mathutil"
)

var (
	// ErrPriceUnavailable indicates the BTC unit price was absent or
	// non-positive; evaluation must not proceed with a garbage price.
	ErrPriceUnavailable = errors.New("BTC price unavailable")

	// ErrInvalidInput indicates an input or assumption outside the supported
	// domain (negative amounts, non-positive term, degenerate annuity rate).
	ErrInvalidInput = errors.New("invalid input")
)

// Decision is the outcome of the collateral constraint check.
type Decision string

const (
	// DecisionAccepted means the condo price fits within the collateral cap.
	DecisionAccepted Decision = "accepted"

	// DecisionRejected means the condo price exceeds the collateral cap.
	// Rejection is a first-class outcome, not an error.
	DecisionRejected Decision = "rejected"
)

// Inputs holds the per-evaluation scalar inputs. The BTC unit price is
// externally supplied (see the pricefeed package) and must be positive.
type Inputs struct {
	BTCAmount    float64 `json:"btcAmount"`
	BTCUnitPrice float64 `json:"btcUnitPrice"`
	CondoPrice   float64 `json:"condoPrice"`
}

// Assumptions holds the economic assumptions, constant across an evaluation.
type Assumptions struct {
	AnnualInterestRate    float64 `json:"annualInterestRate" mapstructure:"annualInterestRate"`
	LoanTermYears         int     `json:"loanTermYears" mapstructure:"loanTermYears"`
	BTCGrowthRate         float64 `json:"btcGrowthRate" mapstructure:"btcGrowthRate"`
	CondoAppreciationRate float64 `json:"condoAppreciationRate" mapstructure:"condoAppreciationRate"`
	DownPaymentFraction   float64 `json:"downPaymentFraction" mapstructure:"downPaymentFraction"`
}

// DefaultAssumptions returns the institution's standard deal terms.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		AnnualInterestRate:    constants.DefaultAnnualInterestRate,
		LoanTermYears:         constants.DefaultLoanTermYears,
		BTCGrowthRate:         constants.DefaultBTCGrowthRate,
		CondoAppreciationRate: constants.DefaultCondoAppreciationRate,
		DownPaymentFraction:   constants.DefaultDownPaymentFraction,
	}
}

// ScheduleRow holds the values for one year of the amortization schedule.
type ScheduleRow struct {
	Year             int     `json:"year"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// ProjectionPoint holds the projected asset values for one year, year 0
// being the unmodified starting values.
type ProjectionPoint struct {
	Year       int     `json:"year"`
	BTCValue   float64 `json:"btcValue"`
	CondoValue float64 `json:"condoValue"`
	NetBenefit float64 `json:"netBenefit"`
}

// Result is the structured outcome of one evaluation. For rejected deals
// only Decision, CollateralValue, MaxAllowedCondoCost, and CondoPrice are
// populated; the schedule, profit, and projection fields are zero.
type Result struct {
	Decision            Decision `json:"decision"`
	CollateralValue     float64  `json:"collateralValue"`
	MaxAllowedCondoCost float64  `json:"maxAllowedCondoCost"`
	CondoPrice          float64  `json:"condoPrice"`

	DownPayment   float64       `json:"downPayment,omitempty"`
	LoanAmount    float64       `json:"loanAmount,omitempty"`
	AnnualPayment float64       `json:"annualPayment,omitempty"`
	Schedule      []ScheduleRow `json:"schedule,omitempty"`

	TotalPayments        float64           `json:"totalPayments,omitempty"`
	LenderProfit         float64           `json:"lenderProfit,omitempty"`
	LenderProfitPercent  float64           `json:"lenderProfitPercent,omitempty"`
	FinalBTCValue        float64           `json:"finalBtcValue,omitempty"`
	FinalCondoValue      float64           `json:"finalCondoValue,omitempty"`
	TotalNetBenefit      float64           `json:"totalNetBenefit,omitempty"`
	NetBenefitProjection []ProjectionPoint `json:"netBenefitProjection,omitempty"`
}

// Evaluate runs the full evaluation pipeline against one set of inputs.
func Evaluate(inputs Inputs, assumptions Assumptions) (*Result, error) {
	if err := validate(inputs, assumptions); err != nil {
		return nil, err
	}

	collateralValue := inputs.BTCAmount * inputs.BTCUnitPrice
	maxAllowed := assumptions.DownPaymentFraction * collateralValue

	result := &Result{
		CollateralValue:     collateralValue,
		MaxAllowedCondoCost: maxAllowed,
		CondoPrice:          inputs.CondoPrice,
	}

	// Acceptance is inclusive: a condo priced exactly at the cap passes.
	if inputs.CondoPrice > maxAllowed {
		result.Decision = DecisionRejected
		return result, nil
	}
	result.Decision = DecisionAccepted

	result.DownPayment = assumptions.DownPaymentFraction * inputs.CondoPrice
	result.LoanAmount = (1.0 - assumptions.DownPaymentFraction) * inputs.CondoPrice

	// The payment is rounded to cents and the rounded value drives the
	// schedule, so the final balance can drift by a few cents. That drift is
	// intentional and matches what the lender quotes.
	result.AnnualPayment = mathutil.Round(CalculateAnnualPayment(
		result.LoanAmount, assumptions.AnnualInterestRate, assumptions.LoanTermYears))
	result.Schedule = GenerateSchedule(
		result.LoanAmount, assumptions.AnnualInterestRate, result.AnnualPayment, assumptions.LoanTermYears)

	result.TotalPayments = result.DownPayment + result.AnnualPayment*float64(assumptions.LoanTermYears)
	result.LenderProfit = result.TotalPayments - inputs.CondoPrice
	result.LenderProfitPercent = mathutil.Round(
		mathutil.CalculatePercentage(result.LenderProfit, inputs.CondoPrice))

	result.NetBenefitProjection = ProjectNetBenefit(
		collateralValue, inputs.CondoPrice, assumptions)
	final := result.NetBenefitProjection[len(result.NetBenefitProjection)-1]
	result.FinalBTCValue = final.BTCValue
	result.FinalCondoValue = final.CondoValue
	result.TotalNetBenefit = final.NetBenefit

	return result, nil
}

func validate(inputs Inputs, assumptions Assumptions) error {
	if inputs.BTCUnitPrice <= 0 {
		return ErrPriceUnavailable
	}
	if inputs.BTCAmount < 0 {
		return fmt.Errorf("%w: BTC amount %f is negative", ErrInvalidInput, inputs.BTCAmount)
	}
	if inputs.CondoPrice < 0 {
		return fmt.Errorf("%w: condo price %f is negative", ErrInvalidInput, inputs.CondoPrice)
	}
	if assumptions.LoanTermYears <= 0 {
		return fmt.Errorf("%w: loan term %d must be positive", ErrInvalidInput, assumptions.LoanTermYears)
	}
	if assumptions.AnnualInterestRate <= -1.0 {
		// At or below -100% the annuity denominator degenerates.
		return fmt.Errorf("%w: annual interest rate %f is at or below -100%%", ErrInvalidInput, assumptions.AnnualInterestRate)
	}
	if assumptions.DownPaymentFraction <= 0 || assumptions.DownPaymentFraction > 1 {
		return fmt.Errorf("%w: down payment fraction %f must be in (0, 1]", ErrInvalidInput, assumptions.DownPaymentFraction)
	}
	return nil
}
