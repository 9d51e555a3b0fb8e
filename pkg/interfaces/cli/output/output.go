package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
	// Writer receives stdout output; nil means os.Stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Buildability is the verification outcome for one hardware revision
type Buildability struct {
	RevisionID entities.RevisionID `json:"revision_id"`
	Name       string              `json:"name"`
	Buildable  bool                `json:"buildable"`
	Shortfalls []dto.Shortfall     `json:"shortfalls"`
}

// Report bundles the projections printed by the report command
type Report struct {
	LeadTimes            []dto.LeadTimeRow    `json:"lead_times"`
	FailureRateThreshold float64              `json:"failure_rate_threshold"`
	FailureRates         []dto.FailureRateRow `json:"failure_rates"`
	Buildability         []Buildability       `json:"buildability"`
	Warnings             []string             `json:"warnings"`
}

// Generate creates output in the specified format
func Generate(report *Report, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *Report, config Config) error {
	w := config.writer()

	fmt.Fprintf(w, "📊 Inventory Report Summary\n")
	fmt.Fprintf(w, "===========================\n\n")

	fmt.Fprintf(w, "Components: %d\n", len(report.LeadTimes))
	fmt.Fprintf(w, "High Failure Rate (>= %g): %d\n", report.FailureRateThreshold, len(report.FailureRates))
	fmt.Fprintf(w, "Revisions Checked: %d\n", len(report.Buildability))
	if config.Verbose {
		fmt.Fprintf(w, "Elapsed: %v\n", config.Elapsed)
	}
	fmt.Fprintln(w)

	if len(report.LeadTimes) > 0 {
		fmt.Fprintf(w, "⏱️  Lead Times:\n")
		fmt.Fprintf(w, "%-20s %-20s %-12s\n", "Component", "Estimated", "Actual Days")
		fmt.Fprintf(w, "%-20s %-20s %-12s\n", "--------------------", "--------------------", "------------")
		for _, row := range report.LeadTimes {
			fmt.Fprintf(w, "%-20s %-20s %-12d\n", row.ComponentID, row.EstimatedLeadTime, row.ActualLeadTime)
		}
		fmt.Fprintln(w)
	}

	if len(report.FailureRates) > 0 {
		fmt.Fprintf(w, "⚠️  High Failure Rate Components:\n")
		fmt.Fprintf(w, "%-20s %-12s\n", "Component", "Failure Rate")
		fmt.Fprintf(w, "%-20s %-12s\n", "--------------------", "------------")
		for _, row := range report.FailureRates {
			fmt.Fprintf(w, "%-20s %-12.4f\n", row.ComponentID, row.FailureRate)
		}
		fmt.Fprintln(w)
	}

	for _, b := range report.Buildability {
		if b.Buildable {
			fmt.Fprintf(w, "✅ %s (%s) is buildable\n", b.RevisionID, b.Name)
			continue
		}
		fmt.Fprintf(w, "❌ %s (%s) is short:\n", b.RevisionID, b.Name)
		fmt.Fprintf(w, "  %-20s %-10s %-10s %-10s\n", "Component", "Required", "Available", "Missing")
		for _, s := range b.Shortfalls {
			fmt.Fprintf(w, "  %-20s %-10d %-10d %-10d\n", s.ComponentID, s.Required, s.Available, s.Missing())
		}
	}
	if len(report.Buildability) > 0 {
		fmt.Fprintln(w)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "🔍 Integrity Warnings:\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *Report, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "aim_report.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one CSV file per projection
func generateCSVOutput(report *Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	leadTimeFile := filepath.Join(config.OutputDir, "lead_times.csv")
	if err := writeCSV(leadTimeFile, leadTimeRecords(report.LeadTimes)); err != nil {
		return fmt.Errorf("failed to write lead times CSV: %w", err)
	}

	failureFile := filepath.Join(config.OutputDir, "failure_rates.csv")
	if err := writeCSV(failureFile, failureRateRecords(report.FailureRates)); err != nil {
		return fmt.Errorf("failed to write failure rates CSV: %w", err)
	}

	shortfallFile := filepath.Join(config.OutputDir, "shortfalls.csv")
	if err := writeCSV(shortfallFile, shortfallRecords(report.Buildability)); err != nil {
		return fmt.Errorf("failed to write shortfalls CSV: %w", err)
	}

	if config.Verbose {
		w := config.writer()
		fmt.Fprintf(w, "💾 CSV results saved to:\n")
		fmt.Fprintf(w, "  Lead Times: %s\n", leadTimeFile)
		fmt.Fprintf(w, "  Failure Rates: %s\n", failureFile)
		fmt.Fprintf(w, "  Shortfalls: %s\n", shortfallFile)
	}
	return nil
}

func writeCSV(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}

func leadTimeRecords(rows []dto.LeadTimeRow) [][]string {
	records := [][]string{{"component_id", "estimated_lead_time", "actual_lead_time"}}
	for _, row := range rows {
		records = append(records, []string{string(row.ComponentID), row.EstimatedLeadTime, strconv.Itoa(row.ActualLeadTime)})
	}
	return records
}

func failureRateRecords(rows []dto.FailureRateRow) [][]string {
	records := [][]string{{"component_id", "failure_rate"}}
	for _, row := range rows {
		records = append(records, []string{string(row.ComponentID), strconv.FormatFloat(row.FailureRate, 'g', -1, 64)})
	}
	return records
}

func shortfallRecords(results []Buildability) [][]string {
	records := [][]string{{"revision_id", "component_id", "required", "available"}}
	for _, b := range results {
		for _, s := range b.Shortfalls {
			records = append(records, []string{
				string(b.RevisionID),
				string(s.ComponentID),
				strconv.FormatInt(int64(s.Required), 10),
				strconv.FormatInt(int64(s.Available), 10),
			})
		}
	}
	return records
}

// CostHistory prints a component's cost history
func CostHistory(w io.Writer, id entities.ComponentID, points []dto.CostPoint) {
	fmt.Fprintf(w, "💲 Cost history for %s:\n", id)
	if len(points) == 0 {
		fmt.Fprintf(w, "  (no observations)\n")
		return
	}
	for _, p := range points {
		fmt.Fprintf(w, "  Value: %s, Date: %s\n", p.Value.StringFixed(2), p.Date.Format(time.RFC3339))
	}
}
