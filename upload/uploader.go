package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/punithg/memic-go/core"
	"github.com/punithg/memic-go/transport"
)

const (
	// DefaultPollInterval is the pause between status checks.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollTimeout bounds the total wall-clock time spent waiting for
	// a file to become ready.
	DefaultPollTimeout = 5 * time.Minute

	// Uploads can be large; the direct storage PUT gets a far longer
	// timeout than ordinary API calls.
	storageTimeoutFactor = 10

	fallbackMimeType = "application/octet-stream"
)

// Uploader runs the three-step presigned upload flow and the status poll
// loop for a project's files.
type Uploader struct {
	transport    *transport.Client
	storage      *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *slog.Logger
}

// Option configures an Uploader.
type Option func(*Uploader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) error {
		if logger == nil {
			logger = slog.Default()
		}
		u.logger = logger
		return nil
	}
}

// WithPollInterval sets the default pause between status checks.
func WithPollInterval(interval time.Duration) Option {
	return func(u *Uploader) error {
		if interval > 0 {
			u.pollInterval = interval
		}
		return nil
	}
}

// WithPollTimeout sets the default deadline for the wait loop.
func WithPollTimeout(timeout time.Duration) Option {
	return func(u *Uploader) error {
		if timeout > 0 {
			u.pollTimeout = timeout
		}
		return nil
	}
}

// WithStorageClient sets the HTTP client used for the direct storage PUT.
// Default is a client with ten times the transport timeout.
func WithStorageClient(client *http.Client) Option {
	return func(u *Uploader) error {
		if client != nil {
			u.storage = client
		}
		return nil
	}
}

// NewUploader creates an uploader on top of the given transport.
func NewUploader(t *transport.Client, opts ...Option) (*Uploader, error) {
	if t == nil {
		return nil, ErrTransportRequired
	}

	u := &Uploader{
		transport:    t,
		storage:      &http.Client{Timeout: t.Timeout() * storageTimeoutFactor},
		pollInterval: DefaultPollInterval,
		pollTimeout:  DefaultPollTimeout,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}

	return u, nil
}

// UploadOption configures a single Upload or WaitForReady call.
type UploadOption func(*uploadOptions)

type uploadOptions struct {
	referenceId  string
	metadata     map[string]any
	wait         bool
	pollInterval time.Duration
	pollTimeout  time.Duration
	monitor      PollMonitor
}

// WithReferenceID attaches a client-provided reference ID for external
// system linking.
func WithReferenceID(id string) UploadOption {
	return func(o *uploadOptions) {
		o.referenceId = id
	}
}

// WithMetadata attaches arbitrary metadata key-value pairs to the upload.
func WithMetadata(metadata map[string]any) UploadOption {
	return func(o *uploadOptions) {
		o.metadata = metadata
	}
}

// WithoutWait returns immediately after the upload is confirmed instead of
// blocking until the file is ready.
func WithoutWait() UploadOption {
	return func(o *uploadOptions) {
		o.wait = false
	}
}

// PollEvery overrides the pause between status checks for this call.
func PollEvery(interval time.Duration) UploadOption {
	return func(o *uploadOptions) {
		if interval > 0 {
			o.pollInterval = interval
		}
	}
}

// PollFor overrides the wait deadline for this call.
func PollFor(timeout time.Duration) UploadOption {
	return func(o *uploadOptions) {
		if timeout > 0 {
			o.pollTimeout = timeout
		}
	}
}

// WithMonitor registers an observer for the wait loop.
func WithMonitor(monitor PollMonitor) UploadOption {
	return func(o *uploadOptions) {
		if monitor != nil {
			o.monitor = monitor
		}
	}
}

func (u *Uploader) applyOptions(opts []UploadOption) *uploadOptions {
	o := &uploadOptions{
		wait:         true,
		pollInterval: u.pollInterval,
		pollTimeout:  u.pollTimeout,
		monitor:      &noopMonitor{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type initResponse struct {
	FileId    core.ID `json:"file_id"`
	UploadURL string  `json:"upload_url"`
	ExpiresIn int     `json:"expires_in"`
}

// Upload sends a local file to a project using the presigned URL flow:
// init to obtain a file ID and presigned URL, a direct PUT of the raw bytes
// to storage, and a confirm that queues the file for remote processing.
// Unless WithoutWait is given, the call then blocks until the file reaches
// a terminal status.
//
// A nonexistent path fails with ErrFileNotFound before any network call.
func (u *Uploader) Upload(ctx context.Context, projectId, filePath string, opts ...UploadOption) (*core.File, error) {
	o := u.applyOptions(opts)

	info, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("stat %s: %w", filePath, err)
	}

	size := info.Size()
	mimeType := detectMimeType(filePath)

	payload := map[string]any{
		"filename":  filepath.Base(filePath),
		"size":      size,
		"mime_type": mimeType,
	}
	if o.referenceId != "" {
		payload["reference_id"] = o.referenceId
	}
	if len(o.metadata) > 0 {
		payload["metadata"] = o.metadata
	}

	var init initResponse
	path := fmt.Sprintf("/projects/%s/files/init", projectId)
	if err := u.transport.DoJSON(ctx, http.MethodPost, path, payload, nil, &init); err != nil {
		return nil, err
	}

	u.logger.Debug("upload initialized", "file_id", init.FileId, "size", size, "mime_type", mimeType)

	if err := u.store(ctx, init.UploadURL, filePath, size, mimeType); err != nil {
		return nil, err
	}

	confirmPath := fmt.Sprintf("/projects/%s/files/%s/confirm", projectId, init.FileId)
	raw, err := u.transport.Do(ctx, http.MethodPost, confirmPath, nil, nil)
	if err != nil {
		return nil, err
	}
	file, err := core.DecodeFile(raw)
	if err != nil {
		return nil, err
	}

	if !o.wait {
		return file, nil
	}
	return u.waitForReady(ctx, projectId, file.Id, o)
}

// store PUTs the raw file bytes to the presigned URL. The body is not JSON,
// so this bypasses the transport's response decoding entirely; any status
// >= 400 is surfaced as an APIError carrying the storage provider's
// diagnostics. The file handle is closed on every exit path.
func (u *Uploader) store(ctx context.Context, uploadURL, filePath string, size int64, mimeType string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, f)
	if err != nil {
		return fmt.Errorf("build storage request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", mimeType)

	resp, err := u.storage.Do(req)
	if err != nil {
		return &transport.APIError{Message: fmt.Sprintf("storage upload failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return &transport.APIError{
			Message:    fmt.Sprintf("failed to upload file to storage: %s", body),
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return nil
}

// GetStatus fetches the current processing status of a file.
func (u *Uploader) GetStatus(ctx context.Context, projectId, fileId string) (*core.File, error) {
	path := fmt.Sprintf("/projects/%s/files/%s/status", projectId, fileId)
	raw, err := u.transport.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return core.DecodeFile(raw)
}

func detectMimeType(filePath string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(filePath))
	if mimeType == "" {
		return fallbackMimeType
	}
	// mime.TypeByExtension may append parameters like "; charset=utf-8";
	// storage providers expect the bare media type.
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}
