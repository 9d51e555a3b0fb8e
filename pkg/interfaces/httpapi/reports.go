package httpapi

import (
	"net/http"
	"strconv"

	"github.com/vsinha/aim/pkg/domain/entities"
)

func (h *Handler) leadTimeReport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.core.Reports.LeadTimeReport()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) failureRateReport(w http.ResponseWriter, r *http.Request) {
	threshold := h.threshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, r, &entities.ValidationError{Field: "threshold", Reason: "must be a number, got " + strconv.Quote(raw)})
			return
		}
		threshold = parsed
	}

	rows, err := h.core.Reports.FailureRateReport(threshold)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
