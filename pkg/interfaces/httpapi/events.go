package httpapi

import (
	"net/http"
	"strconv"

	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/infrastructure/events"
)

// listEvents returns the audit trail, optionally one stream (?stream=) or
// from a global position (?from=)
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	if h.core.Events == nil {
		writeJSON(w, http.StatusOK, []events.BaseEvent{})
		return
	}

	from := 0
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeError(w, r, &entities.ValidationError{Field: "from", Reason: "must be a non-negative integer, got " + strconv.Quote(raw)})
			return
		}
		from = parsed
	}

	var (
		list []events.Event
		err  error
	)
	if stream := r.URL.Query().Get("stream"); stream != "" {
		list, err = h.core.Events.ReadEvents(stream, from+1)
	} else {
		list, err = h.core.Events.ReadAllEvents(from)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events.Snapshot(list))
}
