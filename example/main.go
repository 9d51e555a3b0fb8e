package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/vsinha/aim/pkg/application/services"
	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/infrastructure/events"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/memory"
)

func main() {
	store := memory.NewStore()
	audit := events.NewInMemoryEventStore(nil)
	core := services.NewCore(store, services.Options{Events: audit})

	// Catalog a GPU and a riser for an inference node
	gpu := addComponent(store, "GPU", "H100 SXM", 0.03)
	riser := addComponent(store, "RISER", "PCIe Gen5 riser", 0.08)

	if _, err := core.Ledger.RecordCost(gpu, decimal.RequireFromString("27500.00")); err != nil {
		log.Fatal(err)
	}
	if _, err := core.Ledger.RecordCost(gpu, decimal.RequireFromString("26900.00")); err != nil {
		log.Fatal(err)
	}

	rev, err := entities.NewHardwareRevision("Inference node rev 1",
		entities.BOMLine{ComponentID: gpu, Quantity: 8},
		entities.BOMLine{ComponentID: riser, Quantity: 8},
	)
	if err != nil {
		log.Fatal(err)
	}
	saved, err := store.InsertRevision(rev)
	if err != nil {
		log.Fatal(err)
	}

	stock(core, gpu, entities.OnHandReady, 8)
	stock(core, riser, entities.Ordered, 8)

	fmt.Println("🖥️  Inference node buildability")
	shortfalls, err := core.Verifier.VerifyBuildability(saved.ID)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range shortfalls {
		fmt.Printf("  %s: need %d, have %d\n", s.ComponentID, s.Required, s.Available)
	}
	fmt.Printf("  Buildable: %v\n\n", len(shortfalls) == 0)

	check, err := core.Allocation.ValidateAllocation(gpu, 8)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Allocate 8 GPUs: sufficient=%v (available %d)\n\n", check.Sufficient, check.Available)

	history, err := core.Reports.CostHistoryReport(gpu)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("💰 GPU cost history")
	for _, point := range history {
		fmt.Printf("  %s on %s\n", point.Value.StringFixed(2), point.Date.Format("2006-01-02"))
	}

	flagged, err := core.Reports.FailureRateReport(services.DefaultFailureRateThreshold)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("\n⚠️  Components at or above the failure-rate threshold")
	for _, row := range flagged {
		fmt.Printf("  %s: %.2f\n", row.ComponentID, row.FailureRate)
	}

	trail, _ := audit.ReadAllEvents(0)
	fmt.Printf("\n📜 %d audit events recorded\n", len(trail))
}

func addComponent(store *memory.Store, id, name string, failureRate float64) entities.ComponentID {
	c, err := entities.NewComponent("Supermicro", "NVIDIA")
	if err != nil {
		log.Fatal(err)
	}
	c.ID = entities.ComponentID(id)
	c.Name = name
	c.FailureRate = failureRate
	saved, err := store.InsertComponent(c)
	if err != nil {
		log.Fatal(err)
	}
	return saved.ID
}

func stock(core *services.Core, id entities.ComponentID, state entities.InventoryState, qty entities.Quantity) {
	template, err := entities.NewInventoryItem(id, state, qty)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := core.Inventory.Stock(template); err != nil {
		log.Fatal(err)
	}
}
