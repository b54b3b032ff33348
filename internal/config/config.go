// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/eci-capital/condo-evaluator/internal/evaluator"
	"github.com/eci-capital/condo-evaluator/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for condo-evaluator.
type Configuration struct {
	Assumptions evaluator.Assumptions `mapstructure:"assumptions"`
	PriceFeed   PriceFeedConfig       `mapstructure:"pricefeed"`
	Logging     LoggingConfig         `mapstructure:"logging"`
	Output      OutputConfig          `mapstructure:"output"`
	Server      ServerConfig          `mapstructure:"server"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format"` // pretty, csv
}

// PriceFeedConfig holds the BTC price source configuration. The primary
// source is tried first; on failure or an invalid zero price the fallback
// source is tried; both failing signals price-unavailable.
type PriceFeedConfig struct {
	PrimaryURL      string  `mapstructure:"primaryUrl"`
	FallbackURL     string  `mapstructure:"fallbackUrl"`
	TimeoutSeconds  int     `mapstructure:"timeoutSeconds"`
	CacheTTLSeconds int     `mapstructure:"cacheTtlSeconds"`
	CacheBackend    string  `mapstructure:"cacheBackend"` // memory, redis, none
	RedisAddress    string  `mapstructure:"redisAddress"`
	StaticPrice     float64 `mapstructure:"staticPrice"` // skips fetching when > 0
}

// ServerConfig holds runtime parameters for the HTTP API.
type ServerConfig struct {
	Address           string `mapstructure:"address"`
	PasswordHash      string `mapstructure:"passwordHash"` // bcrypt hash of the access password
	TokenSecret       string `mapstructure:"tokenSecret"`
	SessionTTLMinutes int    `mapstructure:"sessionTtlMinutes"`
}

// Timeout returns the configured price lookup timeout as a duration. A
// non-positive setting falls back to the default rather than producing a
// context that expires immediately.
func (p PriceFeedConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return constants.DefaultPriceTimeoutSeconds * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CacheTTL returns the configured price cache TTL as a duration.
func (p PriceFeedConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLSeconds) * time.Second
}

// SessionTTL returns the configured login token lifetime as a duration.
func (s ServerConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Missing sections fall back to the standard defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Default returns a Configuration carrying only the standard defaults, for
// runs with no config file on disk.
func Default() *Configuration {
	v := viper.New()
	setDefaults(v)

	var configuration Configuration
	// Unmarshalling pure defaults cannot fail.
	_ = v.Unmarshal(&configuration)
	return &configuration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("assumptions.annualInterestRate", constants.DefaultAnnualInterestRate)
	v.SetDefault("assumptions.loanTermYears", constants.DefaultLoanTermYears)
	v.SetDefault("assumptions.btcGrowthRate", constants.DefaultBTCGrowthRate)
	v.SetDefault("assumptions.condoAppreciationRate", constants.DefaultCondoAppreciationRate)
	v.SetDefault("assumptions.downPaymentFraction", constants.DefaultDownPaymentFraction)

	v.SetDefault("pricefeed.primaryUrl", constants.DefaultPrimaryPriceURL)
	v.SetDefault("pricefeed.fallbackUrl", constants.DefaultFallbackPriceURL)
	v.SetDefault("pricefeed.timeoutSeconds", constants.DefaultPriceTimeoutSeconds)
	v.SetDefault("pricefeed.cacheTtlSeconds", constants.DefaultPriceCacheTTLSeconds)
	v.SetDefault("pricefeed.cacheBackend", "memory")

	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.sessionTtlMinutes", constants.DefaultSessionTTLMinutes)
}

// ValidateConfiguration performs validation of the loaded configuration and
// returns warnings for questionable but non-fatal settings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	a := conf.Assumptions
	if a.DownPaymentFraction <= 0 || a.DownPaymentFraction > 1 {
		warnings = append(warnings, fmt.Sprintf(
			"down payment fraction %.4f is outside (0, 1] - evaluations will be rejected as invalid", a.DownPaymentFraction))
	}
	if a.LoanTermYears <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"loan term %d years is not positive - evaluations will be rejected as invalid", a.LoanTermYears))
	}
	if a.AnnualInterestRate < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"annual interest rate %.4f is negative", a.AnnualInterestRate))
	}
	if a.BTCGrowthRate > 1.0 {
		warnings = append(warnings, fmt.Sprintf(
			"BTC growth rate %.4f exceeds 100%% per year - projections will be extreme", a.BTCGrowthRate))
	}
	if a.CondoAppreciationRate < -1.0 {
		warnings = append(warnings, fmt.Sprintf(
			"condo appreciation rate %.4f is below -100%% per year", a.CondoAppreciationRate))
	}

	p := conf.PriceFeed
	if p.StaticPrice < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"static price %.2f is negative and will be ignored", p.StaticPrice))
	}
	if p.StaticPrice == 0 && p.PrimaryURL == "" && p.FallbackURL == "" {
		warnings = append(warnings, "no price source configured - evaluations will fail with price unavailable")
	}
	if p.TimeoutSeconds <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"price timeout %d seconds is not positive - the default will be used", p.TimeoutSeconds))
	}
	if p.CacheBackend == "redis" && p.RedisAddress == "" {
		warnings = append(warnings, "cache backend is redis but no redis address is configured")
	}

	s := conf.Server
	if s.PasswordHash == "" {
		warnings = append(warnings, "no access password hash configured - the HTTP API cannot authenticate logins")
	}
	if s.TokenSecret == "" {
		warnings = append(warnings, "no token secret configured - the HTTP API cannot issue session tokens")
	}

	return warnings
}
