package pipeline

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/sentable/core"
)

// ProgressMonitor is a RunMonitor that reports classification progress to a
// writer, typically os.Stderr. Progress is printed every reportInterval
// records and once more on Finish.
type ProgressMonitor struct {
	writer         io.Writer
	reportInterval int
	total          int
	current        int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

var _ RunMonitor = (*ProgressMonitor)(nil)

// NewProgressMonitor creates a progress monitor.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N records
func NewProgressMonitor(writer io.Writer, reportInterval int) *ProgressMonitor {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressMonitor{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// Start begins tracking a run of totalRecords records.
func (p *ProgressMonitor) Start(totalRecords, _ int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.total = totalRecords
	p.current = 0
	p.lastReported = 0
}

// BatchStart is a no-op; progress is tracked per completed batch.
func (p *ProgressMonitor) BatchStart(_, _ int) {}

// BatchDone advances progress by the size of the completed batch.
func (p *ProgressMonitor) BatchDone(_ int, results []core.ClassificationResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current += len(results)
	if p.current > p.total {
		p.current = p.total
	}

	// Report if we've crossed a report interval
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// BatchFailed is a no-op; a failed batch still completes with sentinel
// results and is counted through BatchDone.
func (p *ProgressMonitor) BatchFailed(_ int, _ error) {}

func (p *ProgressMonitor) EntityInserted(_ string) {}

func (p *ProgressMonitor) EntityFailed(_ string, _ error) {}

// Finish marks the run as complete and prints final progress.
func (p *ProgressMonitor) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer) // Print newline after final progress
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressMonitor) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressMonitor) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%) - %.1f records/s",
		p.current, p.total, percentage, rate)
}
