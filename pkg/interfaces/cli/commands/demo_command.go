package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/interfaces/cli/output"
)

// DemoCommand walks through the core operations against the configured store
type DemoCommand struct {
	config Config
}

// NewDemoCommand creates a new demo command
func NewDemoCommand(config Config) *DemoCommand {
	return &DemoCommand{config: config}
}

// Execute runs the demo
func (c *DemoCommand) Execute(ctx context.Context) error {
	rt, err := bootstrap(c.config.ConfigPath, "", c.config.Verbose)
	if err != nil {
		return err
	}
	defer rt.close()

	w := c.config.stdout()
	core := rt.core

	fmt.Fprintf(w, "\n--- AIM Automated Demo ---\n")

	comp, err := entities.NewComponent("DemoVendor", "DemoManu")
	if err != nil {
		return err
	}
	comp.Name = "Demo component"
	created, err := rt.store.InsertComponent(comp)
	if err != nil {
		return fmt.Errorf("create component: %w", err)
	}
	fmt.Fprintf(w, "Added component: %s (%s / %s)\n", created.ID, created.VendorName, created.ManufacturerName)

	updated, err := core.Ledger.RecordCost(created.ID, decimal.RequireFromString("123.45"))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Updated component cost: %s\n", updated.Cost.StringFixed(2))

	items, err := core.Inventory.Stock(&entities.InventoryItem{ComponentID: created.ID, State: entities.Ordered, Quantity: 2})
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintf(w, "Added inventory: %s\n", item.ID)
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		moved, err := core.Inventory.SetState(item.ID, entities.Received, "demo")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Updated inventory %s state to: %s\n", moved.ID, moved.State)
	}

	rev, err := entities.NewHardwareRevision("DemoRev", entities.BOMLine{ComponentID: created.ID, Quantity: 2})
	if err != nil {
		return err
	}
	savedRev, err := rt.store.InsertRevision(rev)
	if err != nil {
		return fmt.Errorf("create hardware revision: %w", err)
	}
	fmt.Fprintf(w, "Added hardware revision: %s (%s)\n", savedRev.ID, savedRev.Name)

	shortfalls, err := core.Verifier.VerifyBuildability(savedRev.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Buildable with received stock: %t (%d short lines)\n", len(shortfalls) == 0, len(shortfalls))

	for _, item := range items {
		if _, err := core.Inventory.SetState(item.ID, entities.OnHandReady, "demo"); err != nil {
			return err
		}
	}
	shortfalls, err = core.Verifier.VerifyBuildability(savedRev.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Buildable once on hand: %t\n", len(shortfalls) == 0)

	if _, err := core.Ledger.RecordCost(created.ID, decimal.RequireFromString("200.00")); err != nil {
		return err
	}
	points, err := core.Reports.CostHistoryReport(created.ID)
	if err != nil {
		return err
	}
	output.CostHistory(w, created.ID, points)

	if core.Events != nil {
		trail, err := core.Events.ReadAllEvents(0)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Audit events recorded: %d\n", len(trail))
	}

	fmt.Fprintf(w, "--- End of AIM Automated Demo ---\n\n")
	return nil
}
