package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/aim/pkg/interfaces/cli/commands"
)

type command interface {
	Execute(ctx context.Context) error
}

func main() {
	// Command line flags
	var (
		configPath  = flag.String("config", "", "Path to YAML configuration file")
		scenarioDir = flag.String("scenario", "", "Path to scenario directory containing CSV files")
		revision    = flag.String("revision", "", "Only verify this hardware revision")
		threshold   = flag.Float64("threshold", -1, "Failure-rate threshold (negative uses the configured value)")
		outputDir   = flag.String("output", "", "Output directory for results (optional)")
		format      = flag.String("format", "text", "Output format: text, json, csv")
		serve       = flag.Bool("serve", false, "Start the HTTP API server")
		demo        = flag.Bool("demo", false, "Run the automated demo")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ConfigPath:  *configPath,
		ScenarioDir: *scenarioDir,
		Revision:    *revision,
		Threshold:   *threshold,
		Format:      *format,
		OutputDir:   *outputDir,
		Verbose:     *verbose,
		Help:        *help,
	}

	var cmd command
	switch {
	case *serve && !*help:
		cmd = commands.NewServeCommand(config)
	case *demo && !*help:
		cmd = commands.NewDemoCommand(config)
	default:
		cmd = commands.NewReportCommand(config)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
