package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/domain/repositories"
)

// Scenario file names expected in a scenario directory
const (
	ComponentsFile = "components.csv"
	InventoryFile  = "inventory.csv"
	RevisionsFile  = "revisions.csv"
)

var (
	componentsHeader = []string{"id", "vendor_name", "manufacturer_name", "model", "name", "estimated_lead_time", "actual_lead_time", "failure_rate", "cost", "cost_date", "order_link"}
	inventoryHeader  = []string{"id", "component_id", "state", "quantity", "serial_number", "kit_id"}
	revisionsHeader  = []string{"revision_id", "name", "component_id", "quantity"}
)

// Loader handles loading inventory scenarios from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Summary counts the records seeded by LoadScenario
type Summary struct {
	Components int
	Inventory  int
	Revisions  int
	// Skipped counts records whose id was already in the store
	Skipped int
}

// LoadScenario reads the three scenario files from dir and inserts their
// records into store. A missing inventory or revisions file is treated as empty.
// Records whose id already exists are left untouched and counted as skipped,
// so seeding a persistent store again, or after a partial run, is safe.
func (l *Loader) LoadScenario(dir string, store repositories.Store) (Summary, error) {
	var summary Summary

	components, err := l.LoadComponents(filepath.Join(dir, ComponentsFile))
	if err != nil {
		return summary, err
	}
	for _, c := range components {
		if _, err := store.InsertComponent(c); err != nil {
			if errors.Is(err, entities.ErrAlreadyExists) {
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("seed component %s: %w", c.ID, err)
		}
		summary.Components++
	}

	inventory, err := l.LoadInventory(filepath.Join(dir, InventoryFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return summary, err
	}
	for _, item := range inventory {
		if _, err := store.InsertInventory(item); err != nil {
			if errors.Is(err, entities.ErrAlreadyExists) {
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("seed inventory %s: %w", item.ID, err)
		}
		summary.Inventory++
	}

	revisions, err := l.LoadRevisions(filepath.Join(dir, RevisionsFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return summary, err
	}
	for _, rev := range revisions {
		if _, err := store.InsertRevision(rev); err != nil {
			if errors.Is(err, entities.ErrAlreadyExists) {
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("seed hardware revision %s: %w", rev.ID, err)
		}
		summary.Revisions++
	}

	return summary, nil
}

// LoadComponents loads components from a CSV file
func (l *Loader) LoadComponents(filename string) ([]*entities.Component, error) {
	records, err := readCSV(filename, "components", componentsHeader)
	if err != nil {
		return nil, err
	}

	var components []*entities.Component
	for i, record := range records {
		component, err := parseComponent(record)
		if err != nil {
			return nil, fmt.Errorf("components CSV row %d: %w", i+2, err)
		}
		components = append(components, component)
	}
	return components, nil
}

// LoadInventory loads inventory records from a CSV file
func (l *Loader) LoadInventory(filename string) ([]*entities.InventoryItem, error) {
	records, err := readCSV(filename, "inventory", inventoryHeader)
	if err != nil {
		return nil, err
	}

	var items []*entities.InventoryItem
	for i, record := range records {
		item, err := parseInventoryItem(record)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadRevisions loads hardware revisions from a CSV file holding one row per
// BOM line. Rows sharing a revision_id are merged in file order.
func (l *Loader) LoadRevisions(filename string) ([]*entities.HardwareRevision, error) {
	records, err := readCSV(filename, "revisions", revisionsHeader)
	if err != nil {
		return nil, err
	}

	var revisions []*entities.HardwareRevision
	byID := make(map[entities.RevisionID]*entities.HardwareRevision)
	for i, record := range records {
		id := entities.RevisionID(strings.TrimSpace(record[0]))
		if id == "" {
			return nil, fmt.Errorf("revisions CSV row %d: revision_id cannot be empty", i+2)
		}

		rev, seen := byID[id]
		if !seen {
			rev = &entities.HardwareRevision{ID: id, Name: strings.TrimSpace(record[1]), Components: []entities.BOMLine{}}
			byID[id] = rev
			revisions = append(revisions, rev)
		}

		// A revision with no parts is written as a single row with an empty component
		if strings.TrimSpace(record[2]) == "" {
			continue
		}
		// An omitted quantity means one unit
		var quantity int64
		if raw := strings.TrimSpace(record[3]); raw != "" {
			quantity, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("revisions CSV row %d: invalid quantity: %s", i+2, record[3])
			}
		}
		line, err := entities.NewBOMLine(entities.ComponentID(strings.TrimSpace(record[2])), entities.Quantity(quantity))
		if err != nil {
			return nil, fmt.Errorf("revisions CSV row %d: %w", i+2, err)
		}
		rev.Components = append(rev.Components, *line)
	}

	for _, rev := range revisions {
		if err := rev.Validate(); err != nil {
			return nil, fmt.Errorf("revisions CSV revision %s: %w", rev.ID, err)
		}
	}
	return revisions, nil
}

// readCSV opens filename, checks its header and returns the data rows.
// A missing file yields an error wrapping fs.ErrNotExist.
func readCSV(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	return parseCSV(file, kind, expectedHeader)
}

func parseCSV(r io.Reader, kind string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseComponent(record []string) (*entities.Component, error) {
	field := func(i int) string { return strings.TrimSpace(record[i]) }

	c := &entities.Component{
		ID:                entities.ComponentID(field(0)),
		VendorName:        field(1),
		ManufacturerName:  field(2),
		Model:             field(3),
		Name:              field(4),
		EstimatedLeadTime: field(5),
		OrderLink:         field(10),
		Costs:             []entities.CostObservation{},
	}

	if s := field(6); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid actual_lead_time: %s", s)
		}
		c.ActualLeadTime = days
	}

	if s := field(7); s != "" {
		rate, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid failure_rate: %s", s)
		}
		c.FailureRate = rate
	}

	if s := field(8); s != "" {
		value, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid cost: %s", s)
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("invalid cost: %s (must be non-negative)", s)
		}
		at, err := time.Parse("2006-01-02", field(9))
		if err != nil {
			return nil, fmt.Errorf("invalid cost_date format: %s (expected YYYY-MM-DD)", field(9))
		}
		c.AppendCost(value, at)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseInventoryItem(record []string) (*entities.InventoryItem, error) {
	field := func(i int) string { return strings.TrimSpace(record[i]) }

	state, err := entities.ParseInventoryState(field(2))
	if err != nil {
		return nil, err
	}

	quantity, err := strconv.ParseInt(field(3), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[3])
	}

	item := &entities.InventoryItem{
		ID:           entities.InventoryID(field(0)),
		ComponentID:  entities.ComponentID(field(1)),
		State:        state,
		Quantity:     entities.Quantity(quantity),
		SerialNumber: field(4),
		KitID:        field(5),
		StateHistory: []entities.StateChange{},
		SubItems:     []entities.InventoryID{},
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}
