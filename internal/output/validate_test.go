package output

import "testing"

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"pretty", "csv"} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, expected nil", format, err)
		}
	}
	for _, format := range []string{"", "json", "table"} {
		if err := ValidateFormat(format); err == nil {
			t.Errorf("ValidateFormat(%q) = nil, expected error", format)
		}
	}
}
