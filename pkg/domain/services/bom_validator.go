package services

import (
	"fmt"

	"github.com/vsinha/aim/pkg/domain/entities"
)

// BOMValidator checks structural integrity of revisions and kits.
// Stores keep references by convention only, so nothing else catches a
// revision line naming a deleted component or a kit that contains itself.
type BOMValidator struct{}

// NewBOMValidator creates a new BOM validator
func NewBOMValidator() *BOMValidator {
	return &BOMValidator{}
}

// ValidationResult contains the results of validation
type ValidationResult struct {
	UnknownComponents  []entities.BOMLine
	RepeatedComponents []entities.ComponentID
	HasCycles          bool
	CyclePaths         [][]entities.InventoryID
	DanglingSubItems   []entities.InventoryID
	Errors             []string
}

// Valid reports whether no problems were found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		UnknownComponents:  make([]entities.BOMLine, 0),
		RepeatedComponents: make([]entities.ComponentID, 0),
		CyclePaths:         make([][]entities.InventoryID, 0),
		DanglingSubItems:   make([]entities.InventoryID, 0),
		Errors:             make([]string, 0),
	}
}

// ValidateRevision checks a revision's lines against the component catalog.
// Repeated component ids are reported but are not errors; they are legal
// and only matter to the assembly-mode buildability check.
func (v *BOMValidator) ValidateRevision(rev *entities.HardwareRevision, catalog []*entities.Component) *ValidationResult {
	result := newValidationResult()

	known := make(map[entities.ComponentID]bool, len(catalog))
	for _, c := range catalog {
		known[c.ID] = true
	}

	seen := make(map[entities.ComponentID]int)
	for _, line := range rev.Components {
		if !known[line.ComponentID] {
			result.UnknownComponents = append(result.UnknownComponents, line)
		}
		seen[line.ComponentID]++
		if seen[line.ComponentID] == 2 {
			result.RepeatedComponents = append(result.RepeatedComponents, line.ComponentID)
		}
	}

	for _, line := range result.UnknownComponents {
		result.Errors = append(result.Errors, fmt.Sprintf("revision %s references unknown component %s", rev.ID, line.ComponentID))
	}

	return result
}

// ValidateKits checks the sub-item graph of the inventory for members that
// do not exist and for kits that contain themselves
func (v *BOMValidator) ValidateKits(items []*entities.InventoryItem) *ValidationResult {
	result := newValidationResult()

	adjacency := make(map[entities.InventoryID][]entities.InventoryID, len(items))
	for _, item := range items {
		adjacency[item.ID] = item.SubItems
	}

	for _, item := range items {
		for _, member := range item.SubItems {
			if _, exists := adjacency[member]; !exists {
				result.DanglingSubItems = append(result.DanglingSubItems, member)
				result.Errors = append(result.Errors, fmt.Sprintf("kit %s lists missing member %s", item.ID, member))
			}
		}
	}

	result.CyclePaths = v.detectCycles(items, adjacency)
	result.HasCycles = len(result.CyclePaths) > 0
	for _, cycle := range result.CyclePaths {
		result.Errors = append(result.Errors, fmt.Sprintf("kit cycle detected: %v", cycle))
	}

	return result
}

// detectCycles runs a DFS from every record in list order
func (v *BOMValidator) detectCycles(items []*entities.InventoryItem, adjacency map[entities.InventoryID][]entities.InventoryID) [][]entities.InventoryID {
	visited := make(map[entities.InventoryID]bool)
	onStack := make(map[entities.InventoryID]bool)
	cycles := make([][]entities.InventoryID, 0)

	for _, item := range items {
		if !visited[item.ID] {
			v.dfsDetectCycle(item.ID, adjacency, visited, onStack, nil, &cycles)
		}
	}

	return cycles
}

func (v *BOMValidator) dfsDetectCycle(
	current entities.InventoryID,
	adjacency map[entities.InventoryID][]entities.InventoryID,
	visited map[entities.InventoryID]bool,
	onStack map[entities.InventoryID]bool,
	path []entities.InventoryID,
	cycles *[][]entities.InventoryID,
) {
	visited[current] = true
	onStack[current] = true
	path = append(path, current)

	for _, child := range adjacency[current] {
		if _, exists := adjacency[child]; !exists {
			continue
		}
		if !visited[child] {
			v.dfsDetectCycle(child, adjacency, visited, onStack, path, cycles)
		} else if onStack[child] {
			for i, id := range path {
				if id == child {
					cycle := make([]entities.InventoryID, 0, len(path)-i+1)
					cycle = append(cycle, path[i:]...)
					cycle = append(cycle, child)
					*cycles = append(*cycles, cycle)
					break
				}
			}
		}
	}

	onStack[current] = false
}
