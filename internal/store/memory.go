package store

import (
	"errors"
	"sync"
	"time"

	"github.com/C-dan93/oil-price-analysis-uk/internal/integrate"
)

var (
	// ErrNoRuns is returned when no pipeline run has completed yet.
	ErrNoRuns = errors.New("no completed pipeline runs")
)

// Run records one completed pipeline execution. The uploaded CSV is the only
// durable output; this history just serves the HTTP API.
type Run struct {
	CompletedAt time.Time                   `json:"completedAt"`
	BlobName    string                      `json:"blobName"`
	Rows        int                         `json:"rows"`
	Dataset     integrate.IntegratedDataset `json:"dataset"`
}

// RunStore is a concurrency-safe in-memory history of pipeline runs.
type RunStore struct {
	mu   sync.RWMutex
	runs []Run

	// retention configuration
	maxRuns int           // max number of runs kept
	maxAge  time.Duration // optional max age for runs
}

// NewRunStore creates a RunStore with optional limits.
// If maxRuns is <= 0, it is treated as unlimited.
func NewRunStore(maxRuns int, maxAge time.Duration) *RunStore {
	return &RunStore{
		maxRuns: maxRuns,
		maxAge:  maxAge,
	}
}

// SaveRun appends a completed run and enforces retention.
func (s *RunStore) SaveRun(run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, run)

	// Enforce retention by count.
	if s.maxRuns > 0 && len(s.runs) > s.maxRuns {
		over := len(s.runs) - s.maxRuns
		s.runs = s.runs[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs); i++ {
			if !s.runs[i].CompletedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.runs) {
			s.runs = s.runs[i:]
		}
	}
}

// Latest returns the most recent completed run.
func (s *RunStore) Latest() (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return s.runs[len(s.runs)-1], nil
}

// Recent returns up to limit runs, newest first. limit <= 0 means all.
func (s *RunStore) Recent(limit int) []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Run, 0, n)
	for i := len(s.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.runs[i])
	}
	return out
}
