package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/interfaces/cli/output"
)

// Config holds configuration for the CLI commands
type Config struct {
	ConfigPath  string
	ScenarioDir string
	Revision    string
	// Threshold overrides the configured failure-rate threshold when non-negative
	Threshold float64
	Format    string
	OutputDir string
	Verbose   bool
	Help      bool
	Stdout    io.Writer
}

func (c Config) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// ReportCommand prints lead-time, failure-rate and buildability reports
type ReportCommand struct {
	config Config
}

// NewReportCommand creates a new report command with the given configuration
func NewReportCommand(config Config) *ReportCommand {
	return &ReportCommand{
		config: config,
	}
}

// Execute runs the report command
func (c *ReportCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		showHelp(c.config.stdout())
		return nil
	}

	rt, err := bootstrap(c.config.ConfigPath, c.config.ScenarioDir, c.config.Verbose)
	if err != nil {
		return err
	}
	defer rt.close()

	w := c.config.stdout()
	if c.config.Verbose {
		fmt.Fprintf(w, "🚀 AIM Inventory CLI\n")
		fmt.Fprintf(w, "Store: %s\n", rt.cfg.Store.Driver)
		if c.config.ScenarioDir != "" {
			fmt.Fprintf(w, "Scenario: %s\n", c.config.ScenarioDir)
		}
		fmt.Fprintf(w, "Output format: %s\n\n", c.config.Format)
	}

	threshold := rt.cfg.Reports.FailureRateThreshold
	if c.config.Threshold >= 0 {
		threshold = c.config.Threshold
	}

	start := time.Now()
	report, err := c.buildReport(ctx, rt, threshold)
	if err != nil {
		return err
	}

	return output.Generate(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Elapsed:   time.Since(start),
		Writer:    w,
	})
}

func (c *ReportCommand) buildReport(ctx context.Context, rt *runtime, threshold float64) (*output.Report, error) {
	leadTimes, err := rt.core.Reports.LeadTimeReport()
	if err != nil {
		return nil, fmt.Errorf("error building lead time report: %w", err)
	}

	failureRates, err := rt.core.Reports.FailureRateReport(threshold)
	if err != nil {
		return nil, fmt.Errorf("error building failure rate report: %w", err)
	}

	var revisions []*entities.HardwareRevision
	if c.config.Revision != "" {
		rev, err := rt.store.GetRevision(entities.RevisionID(c.config.Revision))
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	} else {
		revisions, err = rt.store.ListRevisions()
		if err != nil {
			return nil, fmt.Errorf("error listing revisions: %w", err)
		}
	}

	report := &output.Report{
		LeadTimes:            leadTimes,
		FailureRateThreshold: threshold,
		FailureRates:         failureRates,
		Buildability:         make([]output.Buildability, 0, len(revisions)),
		Warnings:             make([]string, 0),
	}
	for _, rev := range revisions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shortfalls, err := rt.core.Verifier.VerifyBuildability(rev.ID)
		if err != nil {
			return nil, fmt.Errorf("error verifying %s: %w", rev.ID, err)
		}
		report.Buildability = append(report.Buildability, output.Buildability{
			RevisionID: rev.ID,
			Name:       rev.Name,
			Buildable:  len(shortfalls) == 0,
			Shortfalls: shortfalls,
		})

		check, err := rt.core.Integrity.CheckRevision(rev.ID)
		if err != nil {
			return nil, fmt.Errorf("error checking %s: %w", rev.ID, err)
		}
		report.Warnings = append(report.Warnings, check.Errors...)
	}

	kits, err := rt.core.Integrity.CheckKits()
	if err != nil {
		return nil, fmt.Errorf("error checking kits: %w", err)
	}
	report.Warnings = append(report.Warnings, kits.Errors...)
	return report, nil
}

// showHelp displays the help message
func showHelp(w io.Writer) {
	fmt.Fprintf(w, `AIM - Hardware inventory reasoning for lab and data-center builds

USAGE:
    aim -scenario <directory>              # Report on a CSV scenario
    aim -serve [-config aim.yaml]          # Run the HTTP API
    aim -demo                              # Run the automated demo

OPTIONS:
    -config <file>      YAML configuration file (optional)
    -scenario <dir>     Scenario directory containing CSV files
    -revision <id>      Only verify this hardware revision
    -threshold <rate>   Failure-rate threshold (default: from config, 0.05)
    -output <dir>       Output directory for results (required for csv)
    -format <fmt>       Output format: text, json, csv (default: text)
    -serve              Start the HTTP API server
    -demo               Run the automated demo against an in-memory store
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── components.csv  # Component catalog
    ├── inventory.csv   # Stock records (optional)
    └── revisions.csv   # Hardware revision BOM lines (optional)

CSV FILE FORMATS:

components.csv:
    id,vendor_name,manufacturer_name,model,name,estimated_lead_time,actual_lead_time,failure_rate,cost,cost_date,order_link
    CPU,Digikey,Intel,Xeon 6438,CPU,4 weeks,35,0.06,1200.00,2025-01-15,https://www.digikey.com/cpu

inventory.csv:
    id,component_id,state,quantity,serial_number,kit_id
    INV-1,SSD,on-hand-ready,3,,

revisions.csv:
    revision_id,name,component_id,quantity
    REV-A,Server,CPU,2

ENVIRONMENT:
    AIM_STORE_DRIVER, AIM_SQLITE_PATH, AIM_HTTP_ADDR, AIM_LOG_LEVEL,
    AIM_SCENARIO_DIR, AIM_FAILURE_RATE_THRESHOLD

EXAMPLES:
    # Report on a scenario with verbose output
    aim -scenario scenarios/server -verbose

    # Check one revision and write CSV files
    aim -scenario scenarios/server -revision REV-A -format csv -output results/

    # Serve the API from a SQLite database
    AIM_STORE_DRIVER=sqlite AIM_SQLITE_PATH=aim.db aim -serve
`)
}
