package upload

import "github.com/punithg/memic-go/core"

// PollMonitor provides hooks to observe the wait-for-ready loop.
// Implement this interface to surface progress while a file moves through
// the remote processing pipeline.
type PollMonitor interface {
	Start(projectId, fileId string)
	Check(file *core.File)
	Finish(file *core.File, err error)
}

// noopMonitor is a no-op implementation of PollMonitor
type noopMonitor struct{}

var _ PollMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)            {}
func (n *noopMonitor) Check(_ *core.File)           {}
func (n *noopMonitor) Finish(_ *core.File, _ error) {}
