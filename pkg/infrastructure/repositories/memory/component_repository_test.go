package memory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/aim/pkg/domain/entities"
)

func TestComponentRepository_CRUD(t *testing.T) {
	repo := NewStore(sequentialIDs())

	comp, err := entities.NewComponent("Digikey", "Intel")
	if err != nil {
		t.Fatalf("Failed to build component: %v", err)
	}
	comp.Name = "CPU"

	saved, err := repo.InsertComponent(comp)
	if err != nil {
		t.Fatalf("Failed to insert component: %v", err)
	}

	updated, err := repo.UpdateComponent(saved.ID, func(c *entities.Component) error {
		c.FailureRate = 0.02
		c.EstimatedLeadTime = "6 weeks"
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to update component: %v", err)
	}
	if updated.FailureRate != 0.02 || updated.EstimatedLeadTime != "6 weeks" {
		t.Errorf("Unexpected updated component: %+v", updated)
	}

	_, err = repo.UpdateComponent(saved.ID, func(c *entities.Component) error {
		c.VendorName = ""
		return nil
	})
	if !entities.IsValidation(err) {
		t.Errorf("Expected validation error for blank vendor, got %v", err)
	}

	if err := repo.DeleteComponent(saved.ID); err != nil {
		t.Fatalf("Failed to delete component: %v", err)
	}
	if _, err := repo.GetComponent(saved.ID); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestComponentRepository_ConcurrentUpdatesKeepEveryObservation(t *testing.T) {
	repo := NewStore()
	saved, _ := repo.InsertComponent(&entities.Component{VendorName: "V", ManufacturerName: "M"})

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.UpdateComponent(saved.ID, func(c *entities.Component) error {
				c.AppendCost(decimal.NewFromInt(int64(i)), time.Now())
				return nil
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	final, _ := repo.GetComponent(saved.ID)
	if len(final.Costs) != writers {
		t.Fatalf("Expected %d observations, got %d", writers, len(final.Costs))
	}
	last := final.Costs[len(final.Costs)-1].Value
	if !final.Cost.Equal(last) {
		t.Errorf("Expected snapshot %s to equal last observation %s", final.Cost, last)
	}
}

func TestHardwareRevisionRepository_CRUD(t *testing.T) {
	repo := NewStore(sequentialIDs())

	rev, _ := entities.NewHardwareRevision("RevA", entities.BOMLine{ComponentID: "CPU", Quantity: 2})
	saved, err := repo.InsertRevision(rev)
	if err != nil {
		t.Fatalf("Failed to insert revision: %v", err)
	}

	fetched, err := repo.GetRevision(saved.ID)
	if err != nil {
		t.Fatalf("Failed to get revision: %v", err)
	}
	if fetched.Name != "RevA" || len(fetched.Components) != 1 {
		t.Errorf("Unexpected revision: %+v", fetched)
	}

	renamed, err := repo.UpdateRevision(saved.ID, func(r *entities.HardwareRevision) error {
		r.Name = "RevB"
		r.Components = append(r.Components, entities.BOMLine{ComponentID: "RAM", Quantity: 4})
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to update revision: %v", err)
	}
	if renamed.Name != "RevB" || len(renamed.Components) != 2 {
		t.Errorf("Unexpected updated revision: %+v", renamed)
	}

	all, _ := repo.ListRevisions()
	if len(all) != 1 {
		t.Errorf("Expected 1 revision, got %d", len(all))
	}

	if err := repo.DeleteRevision(saved.ID); err != nil {
		t.Fatalf("Failed to delete revision: %v", err)
	}
	if _, err := repo.GetRevision(saved.ID); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
