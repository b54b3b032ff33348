// condo-evaluator — BTC-collateral condo loan evaluation.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eci-capital/condo-evaluator/internal/config"
	"github.com/eci-capital/condo-evaluator/internal/evaluator"
	"github.com/eci-capital/condo-evaluator/internal/output"
	"github.com/eci-capital/condo-evaluator/internal/pricefeed"
	"github.com/eci-capital/condo-evaluator/internal/server"
	"github.com/eci-capital/condo-evaluator/pkg/constants"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var conf *config.Configuration

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "condo-evaluator",
	Short: "Evaluate condo purchases financed against BTC collateral",
	Long: `condo-evaluator checks whether a condo purchase financed against BTC
holdings meets the lender's collateral constraint and, if accepted, computes
the amortization schedule, lender profit, and investor net-benefit
projection under the configured growth assumptions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			var err error
			conf, err = config.LoadConfiguration(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configFile, err)
			}
			return nil
		}
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			var err error
			conf, err = config.LoadConfiguration(constants.DefaultConfigFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", constants.DefaultConfigFile, err)
			}
			return nil
		}
		conf = config.Default()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to configuration file (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(serveCmd)
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("condo-evaluator %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Evaluate Command ---

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one deal and print the result",
	Long: `Evaluate fetches the current BTC price (unless --btc-price is given),
checks the collateral constraint, and prints the schedule, profit, and
net-benefit projection for an accepted deal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel, _ := cmd.Flags().GetString("log-level")
		logger, err := initializeLogger(conf.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}

		outputFormat := conf.Output.Format
		if flagFormat, _ := cmd.Flags().GetString("output-format"); flagFormat != "" {
			outputFormat = flagFormat
		}
		if outputFormat == "" {
			outputFormat = constants.OutputFormatPretty
		}
		if err := output.ValidateFormat(outputFormat); err != nil {
			return err
		}

		btcAmount, _ := cmd.Flags().GetFloat64("btc")
		condoPrice, _ := cmd.Flags().GetFloat64("condo-price")
		btcPrice, _ := cmd.Flags().GetFloat64("btc-price")

		if btcPrice <= 0 {
			source := pricefeed.NewFromConfig(conf.PriceFeed, logger)
			ctx, cancel := context.WithTimeout(context.Background(), conf.PriceFeed.Timeout())
			defer cancel()

			btcPrice, err = source.CurrentPrice(ctx)
			if err != nil {
				logger.Error("failed to fetch BTC price",
					zap.String("op", "main"),
					zap.Error(err),
				)
				return errors.New("BTC price unavailable, please retry or pass --btc-price")
			}
		}

		result, err := evaluator.Evaluate(evaluator.Inputs{
			BTCAmount:    btcAmount,
			BTCUnitPrice: btcPrice,
			CondoPrice:   condoPrice,
		}, conf.Assumptions)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}

		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettyFormat(result)
		case constants.OutputFormatCSV:
			output.CsvFormat(result)
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().Float64("btc", 0, "BTC holdings used as collateral")
	evaluateCmd.Flags().Float64("condo-price", 0, "condo price in USD")
	evaluateCmd.Flags().Float64("btc-price", 0, "BTC unit price override in USD (skips the price feed)")
	evaluateCmd.Flags().String("output-format", "", "type of output override: pretty, csv")
	_ = evaluateCmd.MarkFlagRequired("btc")
	_ = evaluateCmd.MarkFlagRequired("condo-price")
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Secrets may live in a .env file rather than the config on disk.
		_ = godotenv.Load()
		if hash := os.Getenv("CONDO_EVALUATOR_PASSWORD_HASH"); hash != "" {
			conf.Server.PasswordHash = hash
		}
		if secret := os.Getenv("CONDO_EVALUATOR_TOKEN_SECRET"); secret != "" {
			conf.Server.TokenSecret = secret
		}

		logLevel, _ := cmd.Flags().GetString("log-level")
		logger, err := initializeLogger(conf.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}

		source := pricefeed.NewFromConfig(conf.PriceFeed, logger)
		handler := server.NewHandler(logger, conf.Server, conf.Assumptions, source, version)

		srv := &http.Server{
			Addr:         conf.Server.Address,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			logger.Info("serving evaluation API",
				zap.String("op", "main"),
				zap.String("address", conf.Server.Address),
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-serverErr:
			return fmt.Errorf("server failed: %w", err)
		case <-quit:
			logger.Info("shutting down server",
				zap.String("op", "main"),
			)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	},
}
