// Package httpapi is the consumer surface of the ledger: a JSON API
// read by the dashboard UI, plus proxy endpoints for the external
// scheme-matching and report-generation services.
package httpapi

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/ledger"
	"fintrack/internal/report"
	"fintrack/internal/schemes"
	"fintrack/internal/stats"
)

type Server struct {
	http.Server

	ledger  *ledger.Store
	schemes *schemes.Client // nil when the service is not configured
	report  *report.Client  // nil when the service is not configured
	logger  *slog.Logger

	statsCache statsCache
}

// statsCache memoizes the latest stats snapshot, keyed on the ledger
// version and the calendar day (the weekly window moves at midnight).
// A stale version is never served: every mutation bumps the version
// and invalidates the entry.
type statsCache struct {
	mu      sync.Mutex
	version uint64
	day     string
	snap    stats.Snapshot
	valid   bool
}

func (c *statsCache) get(version uint64, day string) (stats.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.version != version || c.day != day {
		return stats.Snapshot{}, false
	}
	return c.snap, true
}

func (c *statsCache) put(version uint64, day string, snap stats.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version = version
	c.day = day
	c.snap = snap
	c.valid = true
}

func NewServer(addr string, store *ledger.Store, schemesClient *schemes.Client, reportClient *report.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		ledger:  store,
		schemes: schemesClient,
		report:  reportClient,
		logger:  logger.With("component", "http"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/expenses", s.handleExpenses)
	mux.HandleFunc("/api/expenses/", s.handleExpenseByID)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/settings/monthly-target", s.handleMonthlyTarget)
	mux.HandleFunc("/api/settings/savings", s.handleSavings)
	mux.HandleFunc("/api/settings/goal", s.handleGoal)
	mux.HandleFunc("/api/schemes/match", s.handleSchemeMatch)
	mux.HandleFunc("/api/reports/generate", s.handleGenerateReport)

	s.Server = http.Server{
		Addr:    addr,
		Handler: logRequests(logger, mux),
	}
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// logRequests logs method, path, status and duration for every request.
func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
