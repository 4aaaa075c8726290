package pipeline

import "github.com/poiesic/sentable/core"

// RunMonitor provides hooks to observe a classification run.
// Implement this interface to track batch progress and persistence outcomes.
type RunMonitor interface {
	Start(totalRecords, totalBatches int)
	BatchStart(batch, size int)
	BatchDone(batch int, results []core.ClassificationResult)
	BatchFailed(batch int, err error)
	EntityInserted(rowKey string)
	EntityFailed(rowKey string, err error)
	Finish()
}

// noopMonitor is a no-op implementation of RunMonitor
type noopMonitor struct{}

var _ RunMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ int)                                  {}
func (n *noopMonitor) BatchStart(_, _ int)                             {}
func (n *noopMonitor) BatchDone(_ int, _ []core.ClassificationResult) {}
func (n *noopMonitor) BatchFailed(_ int, _ error)                     {}
func (n *noopMonitor) EntityInserted(_ string)                        {}
func (n *noopMonitor) EntityFailed(_ string, _ error)                 {}
func (n *noopMonitor) Finish()                                        {}
