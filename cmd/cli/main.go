package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/dvloznov/billing-etl/internal/config"
	"github.com/dvloznov/billing-etl/internal/etl"
	"github.com/dvloznov/billing-etl/internal/gcs"
	infraBQ "github.com/dvloznov/billing-etl/internal/infra/bigquery"
	"github.com/dvloznov/billing-etl/internal/logger"
)

func main() {
	// Load .env if present; real environment variables win otherwise.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runRun(log, cfg)
	case "upload":
		runUpload(log, cfg)
	case "inspect":
		runInspect(log, cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Billing ETL CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  run      Extract, transform and load a billing CSV")
	fmt.Println("  upload   Upload a local CSV to Cloud Storage")
	fmt.Println("  inspect  Show the columns and first rows of a CSV")
	fmt.Println("  help     Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// sourceFor picks the extraction source by URI scheme.
func sourceFor(in string) etl.Source {
	if strings.HasPrefix(in, "gs://") {
		return gcs.Source{URI: in}
	}
	return etl.FileSource{Path: in}
}

// sinkFor picks the load destination by URI scheme.
func sinkFor(out string) etl.Sink {
	if strings.HasPrefix(out, "gs://") {
		return gcs.Sink{URI: out}
	}
	return etl.FileSink{Path: out}
}

func runRun(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	in := fs.String("in", cfg.InputPath, "input CSV: local path or gs:// URI")
	out := fs.String("out", cfg.OutputPath, "output CSV: local path or gs:// URI")
	currency := fs.String("currency", cfg.Currency, "ISO currency code for billing amounts")
	useBQ := fs.Bool("bq", false, "also load into the BigQuery billing dataset")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	sinks := []etl.Sink{sinkFor(*out)}

	if *useBQ {
		if cfg.BigQuery.ProjectID == "" {
			log.Fatal().Msg("Error: -bq requires BILLING_BQ_PROJECT to be set")
		}
		client, err := infraBQ.NewClient(ctx, cfg.BigQuery.ProjectID, cfg.BigQuery.DatasetID)
		if err != nil {
			log.Fatal().Err(err).Msg("BigQuery client failed")
		}
		defer client.Close()
		sinks = append(sinks, infraBQ.Sink{Client: client})
	}

	log.Info().Str("in", *in).Str("out", *out).Msg("Starting billing run")

	if _, err := etl.Run(ctx, *currency, sourceFor(*in), sinks...); err != nil {
		log.Fatal().Err(err).Msg("Billing run failed")
	}

	fmt.Println("Billing run completed successfully.")
}

func runUpload(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	file := fs.String("file", "", "local CSV file to upload")
	uri := fs.String("uri", "", "destination gs://bucket/object URI")
	fs.Parse(os.Args[2:])

	if *file == "" || *uri == "" {
		log.Fatal().Msg("Error: -file and -uri are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("Opening file failed")
	}
	defer f.Close()

	if err := gcs.Upload(ctx, *uri, f); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to %s\n", *file, *uri)
}

func runInspect(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	file := fs.String("file", cfg.InputPath, "CSV file to inspect")
	rows := fs.Int("rows", 10, "number of rows to show")
	fs.Parse(os.Args[2:])

	t, err := etl.Extract(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}

	fmt.Printf("File:    %s\n", *file)
	fmt.Printf("Columns: %s\n", strings.Join(t.Columns(), ", "))
	fmt.Printf("Rows:    %d\n", t.Len())

	n := t.Len()
	if n > *rows {
		n = *rows
	}
	for i := 0; i < n; i++ {
		fmt.Printf("  %s\n", strings.Join(t.Record(i), ", "))
	}
	if t.Len() > n {
		fmt.Printf("  ... %d more\n", t.Len()-n)
	}
}
