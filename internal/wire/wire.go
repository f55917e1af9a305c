// Package wire provides dependency injection for the qbank application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/example/qbank/internal/adapters/csvfile"
	"github.com/example/qbank/internal/adapters/xlsx"
	"github.com/example/qbank/internal/app"
	"github.com/example/qbank/internal/config"
	"github.com/example/qbank/internal/core/bank"
	"github.com/example/qbank/internal/logging"
	"github.com/example/qbank/internal/ports/primary"
)

var (
	cfg         *config.Config
	logger      zerolog.Logger
	bankService primary.BankService
	once        sync.Once
)

// Config returns the effective configuration for the current directory.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the application logger.
func Logger() zerolog.Logger {
	once.Do(initServices)
	return logger
}

// BankService returns the singleton BankService instance.
func BankService() primary.BankService {
	once.Do(initServices)
	return bankService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err = config.Load(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.NoColor {
		color.NoColor = true
	}
	logger = logging.New(os.Stderr, cfg.LogLevel, color.NoColor)

	if err := cfg.EnsureBankDir(); err != nil {
		logger.Warn().Err(err).Str("bank_file", cfg.BankFile).Msg("working file directory unavailable")
	}

	var opts []bank.Option
	if cfg.Seed != 0 {
		opts = append(opts, bank.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))))
	}

	// Create file adapters (secondary ports)
	store := csvfile.NewStore()
	exporter := xlsx.NewExporter()

	// Create services (primary ports implementation)
	bankService = app.NewBankService(bank.New(opts...), store, exporter)

	logger.Debug().Str("bank_file", cfg.BankFile).Msg("services initialized")
}
