package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/bryanwahyu/truthlens/internal/domain/analysis"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      atomic.Uint64
	RequestsInProgress atomic.Int64
	RequestsSuccess    atomic.Uint64
	RequestsFailed     atomic.Uint64

	AnalysesTotal    atomic.Uint64
	AnalysesDegraded atomic.Uint64
	FallbackAnalysis atomic.Uint64
	FallbackStory    atomic.Uint64
	FallbackReport   atomic.Uint64

	StartTime time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// ObserveAnalysis counts one finished pipeline run and the steps that fell
// back.
func (m *Metrics) ObserveAnalysis(fallbacks []string) {
	m.AnalysesTotal.Add(1)
	if len(fallbacks) > 0 {
		m.AnalysesDegraded.Add(1)
	}
	for _, step := range fallbacks {
		switch step {
		case analysis.StepAnalysis:
			m.FallbackAnalysis.Add(1)
		case analysis.StepStoryPrompt:
			m.FallbackStory.Add(1)
		case analysis.StepDetailedReport:
			m.FallbackReport.Add(1)
		}
	}
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() map[string]any {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]any{
		"requests_total":       m.RequestsTotal.Load(),
		"requests_in_progress": m.RequestsInProgress.Load(),
		"requests_success":     m.RequestsSuccess.Load(),
		"requests_failed":      m.RequestsFailed.Load(),
		"analyses_total":       m.AnalysesTotal.Load(),
		"analyses_degraded":    m.AnalysesDegraded.Load(),
		"fallbacks": map[string]uint64{
			analysis.StepAnalysis:       m.FallbackAnalysis.Load(),
			analysis.StepStoryPrompt:    m.FallbackStory.Load(),
			analysis.StepDetailedReport: m.FallbackReport.Load(),
		},
		"uptime_seconds": time.Since(m.StartTime).Seconds(),
		"memory": map[string]any{
			"alloc_bytes":       mem.Alloc,
			"total_alloc_bytes": mem.TotalAlloc,
			"sys_bytes":         mem.Sys,
			"num_gc":            mem.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// Middleware tracks request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsTotal.Add(1)
		m.RequestsInProgress.Add(1)
		defer m.RequestsInProgress.Add(-1)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			m.RequestsSuccess.Add(1)
		} else {
			m.RequestsFailed.Add(1)
		}
	})
}

// Handler returns metrics as JSON
func (m *Metrics) Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.Snapshot())
}
