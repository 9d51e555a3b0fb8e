package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vsinha/aim/pkg/application/dto"
	"github.com/vsinha/aim/pkg/domain/entities"
	domain "github.com/vsinha/aim/pkg/domain/services"
)

func revisionID(r *http.Request) entities.RevisionID {
	return entities.RevisionID(chi.URLParam(r, "id"))
}

func (h *Handler) createRevision(w http.ResponseWriter, r *http.Request) {
	var req entities.HardwareRevision
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	rev, err := entities.NewHardwareRevision(req.Name, req.Components...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rev.ID = req.ID

	saved, err := h.core.Store.InsertRevision(rev)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) listRevisions(w http.ResponseWriter, r *http.Request) {
	revisions, err := h.core.Store.ListRevisions()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, revisions)
}

func (h *Handler) getRevision(w http.ResponseWriter, r *http.Request) {
	rev, err := h.core.Store.GetRevision(revisionID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *Handler) updateRevision(w http.ResponseWriter, r *http.Request) {
	var req entities.HardwareRevision
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.core.Store.UpdateRevision(revisionID(r), func(rev *entities.HardwareRevision) error {
		rev.Name = req.Name
		rev.Components = entities.WithDefaultQuantities(req.Components)
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteRevision(w http.ResponseWriter, r *http.Request) {
	if err := h.core.Store.DeleteRevision(revisionID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type buildabilityResponse struct {
	RevisionID entities.RevisionID `json:"revision_id"`
	Buildable  bool                `json:"buildable"`
	Shortfalls []dto.Shortfall     `json:"shortfalls"`
}

// buildability runs the per-line check, or the netted one with ?mode=assembly
func (h *Handler) buildability(w http.ResponseWriter, r *http.Request) {
	id := revisionID(r)

	var (
		shortfalls []dto.Shortfall
		err        error
	)
	switch mode := r.URL.Query().Get("mode"); mode {
	case "", "line":
		shortfalls, err = h.core.Verifier.VerifyBuildability(id)
	case "assembly":
		shortfalls, err = h.core.Verifier.VerifyAssembly(id)
	default:
		err = &entities.ValidationError{Field: "mode", Reason: "must be line or assembly, got " + mode}
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, buildabilityResponse{
		RevisionID: id,
		Buildable:  len(shortfalls) == 0,
		Shortfalls: shortfalls,
	})
}

type validationResponse struct {
	Valid              bool                     `json:"valid"`
	UnknownComponents  []entities.BOMLine       `json:"unknown_components,omitempty"`
	RepeatedComponents []entities.ComponentID   `json:"repeated_components,omitempty"`
	CyclePaths         [][]entities.InventoryID `json:"cycle_paths,omitempty"`
	DanglingSubItems   []entities.InventoryID   `json:"dangling_sub_items,omitempty"`
	Errors             []string                 `json:"errors"`
}

func newValidationResponse(result *domain.ValidationResult) validationResponse {
	return validationResponse{
		Valid:              result.Valid(),
		UnknownComponents:  result.UnknownComponents,
		RepeatedComponents: result.RepeatedComponents,
		CyclePaths:         result.CyclePaths,
		DanglingSubItems:   result.DanglingSubItems,
		Errors:             result.Errors,
	}
}

func (h *Handler) validateRevision(w http.ResponseWriter, r *http.Request) {
	result, err := h.core.Integrity.CheckRevision(revisionID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newValidationResponse(result))
}
