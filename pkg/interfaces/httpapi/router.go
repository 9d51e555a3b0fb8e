// Package httpapi exposes the inventory reasoning services over HTTP
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/application/services"
	"github.com/vsinha/aim/pkg/infrastructure/logging"
)

// Options configures the router
type Options struct {
	Logger *zap.Logger
	// Gatherer backs /metrics; nil leaves the endpoint unmounted
	Gatherer prometheus.Gatherer
	// FailureRateThreshold is used when a request omits ?threshold
	FailureRateThreshold float64
}

// Handler serves the HTTP API over one Core
type Handler struct {
	core      *services.Core
	logger    *zap.Logger
	threshold float64
}

// NewRouter builds the chi router with every route mounted
func NewRouter(core *services.Core, opts Options) http.Handler {
	h := &Handler{
		core:      core,
		logger:    logging.OrNop(opts.Logger),
		threshold: opts.FailureRateThreshold,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/components", func(r chi.Router) {
		r.Post("/", h.createComponent)
		r.Get("/", h.listComponents)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getComponent)
			r.Put("/", h.updateComponent)
			r.Delete("/", h.deleteComponent)
			r.Post("/cost", h.recordCost)
			r.Get("/cost-history", h.costHistory)
			r.Get("/availability", h.availability)
		})
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.stockInventory)
		r.Get("/", h.listInventory)
		r.Post("/kits", h.kitInventory)
		r.Get("/kits/validation", h.validateKits)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getInventory)
			r.Put("/", h.updateInventory)
			r.Delete("/", h.deleteInventory)
			r.Put("/state", h.setInventoryState)
		})
	})

	r.Route("/hardware-revisions", func(r chi.Router) {
		r.Post("/", h.createRevision)
		r.Get("/", h.listRevisions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getRevision)
			r.Put("/", h.updateRevision)
			r.Delete("/", h.deleteRevision)
			r.Get("/buildability", h.buildability)
			r.Get("/validation", h.validateRevision)
		})
	})

	r.Get("/events", h.listEvents)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/lead-time", h.leadTimeReport)
		r.Get("/failure-rate", h.failureRateReport)
		r.Get("/cost-history/{id}", h.costHistory)
	})

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
