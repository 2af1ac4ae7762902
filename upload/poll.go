package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/punithg/memic-go/core"
)

// WaitForReady polls a file's status at a constant interval until it is
// ready, the pipeline reports a terminal failure, the wall-clock deadline
// passes, or ctx is canceled. There is no backoff: the remote pipeline's
// stages are coarse enough that a fixed interval is the right shape.
//
// A *_failed status aborts immediately with a *ProcessingError carrying the
// server's error message; exceeding the deadline fails with an error
// wrapping ErrPollTimeout that reports the last-seen status.
func (u *Uploader) WaitForReady(ctx context.Context, projectId, fileId string, opts ...UploadOption) (*core.File, error) {
	return u.waitForReady(ctx, projectId, fileId, u.applyOptions(opts))
}

func (u *Uploader) waitForReady(ctx context.Context, projectId, fileId string, o *uploadOptions) (*core.File, error) {
	deadline := time.Now().Add(o.pollTimeout)
	o.monitor.Start(projectId, fileId)

	for {
		file, err := u.GetStatus(ctx, projectId, fileId)
		if err != nil {
			o.monitor.Finish(nil, err)
			return nil, err
		}
		o.monitor.Check(file)

		if file.Status == core.StatusReady {
			o.monitor.Finish(file, nil)
			return file, nil
		}

		if file.Status.IsFailed() {
			err := &ProcessingError{Status: file.Status, Message: file.ErrorMessage}
			o.monitor.Finish(file, err)
			return nil, err
		}

		if !time.Now().Before(deadline) {
			err := fmt.Errorf("%w: current status %s", ErrPollTimeout, file.Status)
			o.monitor.Finish(file, err)
			return nil, err
		}

		u.logger.Debug("file still processing", "file_id", fileId, "status", file.Status)

		timer := time.NewTimer(o.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			o.monitor.Finish(file, ctx.Err())
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
