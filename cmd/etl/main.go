package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dvloznov/billing-etl/internal/config"
	"github.com/dvloznov/billing-etl/internal/etl"
	"github.com/dvloznov/billing-etl/internal/logger"
)

// Single-shot pipeline runner: one local CSV in, one local CSV out.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	in := flag.String("in", cfg.InputPath, "input billing CSV")
	out := flag.String("out", cfg.OutputPath, "output CSV for the transformed table")
	flag.Parse()

	// Bound the run so a stuck read never hangs the process.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("in", *in).Str("out", *out).Msg("Starting billing run")

	if _, err := etl.Run(ctx, cfg.Currency, etl.FileSource{Path: *in}, etl.FileSink{Path: *out}); err != nil {
		log.Fatal().Err(err).Msg("Billing run failed")
	}

	fmt.Println("Billing run completed successfully.")
}
