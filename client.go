// Copyright 2025 The memic-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/punithg/memic-go/core"
	"github.com/punithg/memic-go/search"
	"github.com/punithg/memic-go/transport"
	"github.com/punithg/memic-go/upload"
)

// Client is the composed entry point for the API: project listing, file
// uploads with status polling, and semantic search all route through it.
//
// Every operation blocks the calling goroutine until its HTTP exchange (or,
// for the wait loop, its terminal condition) completes. The only shared
// mutable state is the lazily cached organization identifier, so a Client
// is safe for concurrent use.
type Client struct {
	transport *transport.Client
	uploader  *upload.Uploader
	searcher  *search.Searcher
	logger    *slog.Logger
}

// NewClient creates a client from environment-derived defaults and the
// given options. The API key is mandatory, from either WithAPIKey or the
// MEMIC_API_KEY environment variable.
func NewClient(opts ...ConfigOption) (*Client, error) {
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transportOpts := []transport.Option{
		transport.WithIdentityPath(cfg.IdentityPath),
		transport.WithLogger(logger),
	}
	if cfg.HTTPClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(cfg.HTTPClient))
	}
	t, err := transport.New(cfg.BaseURL, cfg.APIKey, cfg.Timeout, transportOpts...)
	if err != nil {
		return nil, err
	}

	uploaderOpts := []upload.Option{upload.WithLogger(logger)}
	if cfg.PollInterval > 0 {
		uploaderOpts = append(uploaderOpts, upload.WithPollInterval(cfg.PollInterval))
	}
	if cfg.PollTimeout > 0 {
		uploaderOpts = append(uploaderOpts, upload.WithPollTimeout(cfg.PollTimeout))
	}
	uploader, err := upload.NewUploader(t, uploaderOpts...)
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewSearcher(t, search.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Client{
		transport: t,
		uploader:  uploader,
		searcher:  searcher,
		logger:    logger,
	}, nil
}

// OrgID returns the organization identifier behind the API key, resolving
// and caching it on first use.
func (c *Client) OrgID(ctx context.Context) (string, error) {
	return c.transport.OrgID(ctx)
}

// ListProjects lists all projects in the organization.
func (c *Client) ListProjects(ctx context.Context) ([]core.Project, error) {
	org, err := c.transport.OrgID(ctx)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/organizations/%s/projects/", org)
	raw, err := c.transport.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return core.DecodeProjects(raw)
}

// UploadFile uploads a local file to a project via the presigned URL flow
// and, unless upload.WithoutWait is given, blocks until the file is ready.
func (c *Client) UploadFile(ctx context.Context, projectId, filePath string, opts ...upload.UploadOption) (*core.File, error) {
	return c.uploader.Upload(ctx, projectId, filePath, opts...)
}

// GetFileStatus fetches the current processing status of a file.
func (c *Client) GetFileStatus(ctx context.Context, projectId, fileId string) (*core.File, error) {
	return c.uploader.GetStatus(ctx, projectId, fileId)
}

// WaitForReady polls a file until it reaches a terminal status.
func (c *Client) WaitForReady(ctx context.Context, projectId, fileId string, opts ...upload.UploadOption) (*core.File, error) {
	return c.uploader.WaitForReady(ctx, projectId, fileId, opts...)
}

// Search runs one filtered query across the organization's documents.
func (c *Client) Search(ctx context.Context, query string, opts ...search.QueryOption) (*core.SearchResults, error) {
	return c.searcher.Search(ctx, query, opts...)
}

// Uploader returns the upload flow for direct use.
func (c *Client) Uploader() *upload.Uploader {
	return c.uploader
}

// Searcher returns the search flow for direct use.
func (c *Client) Searcher() *search.Searcher {
	return c.searcher
}
