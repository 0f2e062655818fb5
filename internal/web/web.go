// Package web serves the query interface of the gateway.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/sharkmon/internal/reading"
	"github.com/tamzrod/sharkmon/internal/status"
)

// Deps are the read-only collaborators of the handlers.
type Deps struct {
	Readings  interface{ Snapshot() reading.Reading }
	Status    interface{ Snapshot() status.Snapshot }
	Gatherer  prometheus.Gatherer // nil disables /metrics
	IndexFile string
	Logger    *slog.Logger
}

type handlers struct {
	deps Deps
}

// NewRouter wires the routes:
//
//	GET /power    smoothed reading as JSON
//	GET /status   link status as JSON
//	GET /metrics  Prometheus exposition
//	GET /         static index page
func NewRouter(d Deps) *mux.Router {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	h := &handlers{deps: d}

	r := mux.NewRouter()
	r.HandleFunc("/power", h.power).Methods(http.MethodGet)
	r.HandleFunc("/status", h.status).Methods(http.MethodGet)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	return r
}

func (h *handlers) power(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.deps.Readings.Snapshot())
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.deps.Status.Snapshot())
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, h.deps.IndexFile)
}

func (h *handlers) writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.deps.Logger.Error("malformed JSON", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.deps.Logger.Debug("response write failed", "error", err)
	}
}
