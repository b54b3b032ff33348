package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/eci-capital/condo-evaluator/internal/evaluator"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func acceptedResult(t *testing.T) *evaluator.Result {
	t.Helper()
	result, err := evaluator.Evaluate(evaluator.Inputs{
		BTCAmount:    50,
		BTCUnitPrice: 20000,
		CondoPrice:   200000,
	}, evaluator.DefaultAssumptions())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	return result
}

func TestPrettyFormatAccepted(t *testing.T) {
	result := acceptedResult(t)
	output := captureStdout(t, func() { PrettyFormat(result) })

	if !strings.Contains(output, "--- Deal accepted ---") {
		t.Errorf("PrettyFormat missing accepted header")
	}
	if !strings.Contains(output, "$50,000.00") {
		t.Errorf("PrettyFormat missing separator-formatted down payment")
	}
	if !strings.Contains(output, "$47,320.62") {
		t.Errorf("PrettyFormat missing annual payment")
	}
	if !strings.Contains(output, "Loan schedule") {
		t.Errorf("PrettyFormat missing schedule section")
	}
	if !strings.Contains(output, "Investor net benefit") {
		t.Errorf("PrettyFormat missing projection section")
	}
	if !strings.Contains(output, "$1,200,000.00") {
		t.Errorf("PrettyFormat missing year-0 net benefit")
	}
}

func TestPrettyFormatRejected(t *testing.T) {
	result, err := evaluator.Evaluate(evaluator.Inputs{
		BTCAmount:    50,
		BTCUnitPrice: 20000,
		CondoPrice:   300000,
	}, evaluator.DefaultAssumptions())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	output := captureStdout(t, func() { PrettyFormat(result) })

	if !strings.Contains(output, "--- Deal rejected ---") {
		t.Errorf("PrettyFormat missing rejected header")
	}
	if !strings.Contains(output, "$250,000.00") {
		t.Errorf("PrettyFormat missing maximum allowed condo cost")
	}
	if strings.Contains(output, "Loan schedule") {
		t.Errorf("PrettyFormat printed a schedule for a rejected deal")
	}
}

func TestCsvFormat(t *testing.T) {
	result := acceptedResult(t)
	output := captureStdout(t, func() { CsvFormat(result) })

	if !strings.Contains(output, `"decision","accepted"`) {
		t.Errorf("CsvFormat missing decision row")
	}
	if !strings.Contains(output, `"annual_payment","47320.62"`) {
		t.Errorf("CsvFormat missing annual payment row")
	}
	if !strings.Contains(output, `"year","payment","interest","principal","remaining_balance"`) {
		t.Errorf("CsvFormat missing schedule header")
	}
	if !strings.Contains(output, `"1","47320.62","15000.00"`) {
		t.Errorf("CsvFormat missing first schedule row")
	}
	if !strings.Contains(output, `"year","btc_value","condo_value","net_benefit"`) {
		t.Errorf("CsvFormat missing projection header")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 9 scalar rows + schedule header + 4 rows + projection header + 5 rows.
	if len(lines) != 20 {
		t.Errorf("CsvFormat produced %d lines, expected 20", len(lines))
	}
}

func TestCsvFormatRejected(t *testing.T) {
	result, err := evaluator.Evaluate(evaluator.Inputs{
		BTCAmount:    50,
		BTCUnitPrice: 20000,
		CondoPrice:   300000,
	}, evaluator.DefaultAssumptions())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	output := captureStdout(t, func() { CsvFormat(result) })

	if !strings.Contains(output, `"decision","rejected"`) {
		t.Errorf("CsvFormat missing rejected decision")
	}
	if strings.Contains(output, "annual_payment") {
		t.Errorf("CsvFormat printed loan figures for a rejected deal")
	}
}
