// Package constants provides shared constants for the condo-evaluator application.
package constants

// Default lending assumptions. These mirror the institution's standard deal
// terms and can all be overridden via configuration.
const (
	// DefaultAnnualInterestRate is the fixed annual loan rate (10%).
	DefaultAnnualInterestRate = 0.10

	// DefaultLoanTermYears is the standard loan term.
	DefaultLoanTermYears = 4

	// DefaultBTCGrowthRate is the assumed BTC compound annual growth rate (28.1%).
	DefaultBTCGrowthRate = 0.281

	// DefaultCondoAppreciationRate is the assumed annual condo appreciation (4%).
	DefaultCondoAppreciationRate = 0.04

	// DefaultDownPaymentFraction is the required down payment fraction of the
	// condo price, and also the fraction of collateral value that caps the
	// acceptable condo price.
	DefaultDownPaymentFraction = 0.25
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Price feed defaults
const (
	// DefaultPrimaryPriceURL is the primary BTC spot price endpoint (USDT proxy).
	DefaultPrimaryPriceURL = "https://api.binance.com/api/v3/ticker/price?symbol=BTCUSDT"

	// DefaultFallbackPriceURL is the secondary BTC spot price endpoint.
	DefaultFallbackPriceURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=usd"

	// DefaultPriceTimeoutSeconds bounds a single price lookup round trip.
	DefaultPriceTimeoutSeconds = 5

	// DefaultPriceCacheTTLSeconds is how long a fetched price stays fresh.
	DefaultPriceCacheTTLSeconds = 60
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestBytes int64 = 64 * 1024

	// DefaultSessionTTLMinutes is the default login token lifetime
	DefaultSessionTTLMinutes = 60
)
