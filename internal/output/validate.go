package output

import (
	"fmt"

	"github.com/eci-capital/condo-evaluator/pkg/constants"
)

// ValidateFormat checks that the requested output format is supported.
func ValidateFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (expected %s or %s)",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}
