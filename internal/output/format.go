// Package output provides utilities for formatting and displaying
// evaluation results. It renders the ordered numeric series the UI
// collaborator would chart; no graphics are produced here.
package output

import (
	"fmt"

	"github.com/eci-capital/condo-evaluator/internal/evaluator"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(result *evaluator.Result) {
	p := message.NewPrinter(language.English)

	if result.Decision == evaluator.DecisionRejected {
		fmt.Printf("--- Deal rejected ---\n")
		_, _ = p.Printf("Maximum allowed condo cost vs BTC holdings' value: $%.2f\n", result.MaxAllowedCondoCost)
		_, _ = p.Printf("Requested condo price: $%.2f\n", result.CondoPrice)
		return
	}

	fmt.Printf("--- Deal accepted ---\n")
	_, _ = p.Printf("Collateral value:  $%.2f\n", result.CollateralValue)
	_, _ = p.Printf("Condo price:       $%.2f\n", result.CondoPrice)
	_, _ = p.Printf("Down payment:      $%.2f\n", result.DownPayment)
	_, _ = p.Printf("Loan amount:       $%.2f\n", result.LoanAmount)
	_, _ = p.Printf("Annual payment:    $%.2f\n", result.AnnualPayment)

	fmt.Printf("\nLoan schedule\n")
	fmt.Printf("Year | Payment       | Interest      | Principal     | Remaining\n")
	fmt.Printf("____ | _______       | ________      | _________     | _________\n")
	for _, row := range result.Schedule {
		_, _ = p.Printf("%4d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			row.Year, row.Payment, row.Interest, row.Principal, row.RemainingBalance)
	}

	fmt.Printf("\nLender profit\n")
	_, _ = p.Printf("Total payments:    $%.2f\n", result.TotalPayments)
	_, _ = p.Printf("Profit:            $%.2f (%.2f%%)\n", result.LenderProfit, result.LenderProfitPercent)

	fmt.Printf("\nInvestor net benefit\n")
	fmt.Printf("Year | BTC value     | Condo value   | Net benefit\n")
	fmt.Printf("____ | _________     | ___________   | ___________\n")
	for _, point := range result.NetBenefitProjection {
		_, _ = p.Printf("%4d | $%.2f | $%.2f | $%.2f\n",
			point.Year, point.BTCValue, point.CondoValue, point.NetBenefit)
	}
	_, _ = p.Printf("\nFinal BTC value:   $%.2f\n", result.FinalBTCValue)
	_, _ = p.Printf("Final condo value: $%.2f\n", result.FinalCondoValue)
	_, _ = p.Printf("Total net benefit: $%.2f\n", result.TotalNetBenefit)
}

// CsvFormat outputs the schedule and projection in comma-separated value
// format, one section per series.
func CsvFormat(result *evaluator.Result) {
	fmt.Printf(`"decision","%s"`+"\n", result.Decision)
	fmt.Printf(`"max_allowed_condo_cost","%.2f"`+"\n", result.MaxAllowedCondoCost)
	fmt.Printf(`"condo_price","%.2f"`+"\n", result.CondoPrice)
	if result.Decision == evaluator.DecisionRejected {
		return
	}

	fmt.Printf(`"down_payment","%.2f"`+"\n", result.DownPayment)
	fmt.Printf(`"loan_amount","%.2f"`+"\n", result.LoanAmount)
	fmt.Printf(`"annual_payment","%.2f"`+"\n", result.AnnualPayment)
	fmt.Printf(`"total_payments","%.2f"`+"\n", result.TotalPayments)
	fmt.Printf(`"lender_profit","%.2f"`+"\n", result.LenderProfit)
	fmt.Printf(`"lender_profit_percent","%.2f"`+"\n", result.LenderProfitPercent)

	fmt.Printf(`"year","payment","interest","principal","remaining_balance"` + "\n")
	for _, row := range result.Schedule {
		fmt.Printf(`"%d","%.2f","%.2f","%.2f","%.2f"`+"\n",
			row.Year, row.Payment, row.Interest, row.Principal, row.RemainingBalance)
	}

	fmt.Printf(`"year","btc_value","condo_value","net_benefit"` + "\n")
	for _, point := range result.NetBenefitProjection {
		fmt.Printf(`"%d","%.2f","%.2f","%.2f"`+"\n",
			point.Year, point.BTCValue, point.CondoValue, point.NetBenefit)
	}
}
