package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
)

func inventoryID(r *http.Request) entities.InventoryID {
	return entities.InventoryID(chi.URLParam(r, "id"))
}

// stockInventory records a stocking event and returns one record per unit
func (h *Handler) stockInventory(w http.ResponseWriter, r *http.Request) {
	var template entities.InventoryItem
	if err := decode(r, &template); err != nil {
		h.writeError(w, r, err)
		return
	}
	if template.Quantity == 0 {
		template.Quantity = 1
	}

	created, err := h.core.Inventory.Stock(&template)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	var (
		items []*entities.InventoryItem
		err   error
	)
	if id := r.URL.Query().Get("component_id"); id != "" {
		items, err = h.core.Store.ListInventoryByComponent(entities.ComponentID(id))
	} else {
		items, err = h.core.Store.ListInventory()
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	item, err := h.core.Store.GetInventory(inventoryID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteInventory(w http.ResponseWriter, r *http.Request) {
	if err := h.core.Store.DeleteInventory(inventoryID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateInventory changes any of the record's fields; omitted fields are kept
func (h *Handler) updateInventory(w http.ResponseWriter, r *http.Request) {
	var patch dto.InventoryPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.core.Inventory.Update(inventoryID(r), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type stateRequest struct {
	State string `json:"state"`
	Note  string `json:"note"`
}

func (h *Handler) setInventoryState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	state, err := entities.ParseInventoryState(req.State)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.core.Inventory.SetState(inventoryID(r), state, req.Note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type kitRequest struct {
	KitID       string                 `json:"kit_id"`
	ComponentID entities.ComponentID   `json:"component_id"`
	State       string                 `json:"state"`
	Members     []entities.InventoryID `json:"members"`
}

func (h *Handler) kitInventory(w http.ResponseWriter, r *http.Request) {
	var req kitRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	state, err := entities.ParseInventoryState(req.State)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	kit, err := h.core.Inventory.Kit(req.KitID, req.ComponentID, state, req.Members...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, kit)
}

func (h *Handler) validateKits(w http.ResponseWriter, r *http.Request) {
	result, err := h.core.Integrity.CheckKits()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newValidationResponse(result))
}
