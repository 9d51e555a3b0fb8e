package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vsinha/aim/pkg/domain/entities"
)

func componentID(r *http.Request) entities.ComponentID {
	return entities.ComponentID(chi.URLParam(r, "id"))
}

func (h *Handler) createComponent(w http.ResponseWriter, r *http.Request) {
	var c entities.Component
	if err := decode(r, &c); err != nil {
		h.writeError(w, r, err)
		return
	}
	// Cost history is only written through the cost endpoint
	c.Cost = nil
	c.Costs = []entities.CostObservation{}

	saved, err := h.core.Store.InsertComponent(&c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) listComponents(w http.ResponseWriter, r *http.Request) {
	components, err := h.core.Store.ListComponents()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, components)
}

func (h *Handler) getComponent(w http.ResponseWriter, r *http.Request) {
	c, err := h.core.Store.GetComponent(componentID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// updateComponent replaces the descriptive fields and keeps the cost history
func (h *Handler) updateComponent(w http.ResponseWriter, r *http.Request) {
	var req entities.Component
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.core.Store.UpdateComponent(componentID(r), func(c *entities.Component) error {
		req.ID = c.ID
		req.Cost = c.Cost
		req.Costs = c.Costs
		*c = req
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := h.core.Store.DeleteComponent(componentID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type costRequest struct {
	Value *decimal.Decimal `json:"value"`
}

func (h *Handler) recordCost(w http.ResponseWriter, r *http.Request) {
	var req costRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Value == nil {
		h.writeError(w, r, &entities.ValidationError{Field: "value", Reason: "is required"})
		return
	}

	updated, err := h.core.Ledger.RecordCost(componentID(r), *req.Value)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// costHistory answers an unknown component with an empty list, matching the ledger
func (h *Handler) costHistory(w http.ResponseWriter, r *http.Request) {
	points, err := h.core.Reports.CostHistoryReport(componentID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

type availabilityResponse struct {
	ComponentID entities.ComponentID `json:"component_id"`
	Available   entities.Quantity    `json:"available"`
}

// availability reports usable quantity, or checks ?requested=N against it
func (h *Handler) availability(w http.ResponseWriter, r *http.Request) {
	id := componentID(r)

	raw := r.URL.Query().Get("requested")
	if raw == "" {
		available, err := h.core.Allocation.AvailableQuantity(id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, availabilityResponse{ComponentID: id, Available: available})
		return
	}

	requested, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.writeError(w, r, &entities.ValidationError{Field: "requested", Reason: "must be an integer, got " + strconv.Quote(raw)})
		return
	}
	check, err := h.core.Allocation.ValidateAllocation(id, entities.Quantity(requested))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}
