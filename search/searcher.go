package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/punithg/memic-go/core"
	"github.com/punithg/memic-go/transport"
)

const (
	// DefaultTopK is the number of results requested when not overridden.
	DefaultTopK = 10

	// DefaultMinScore is the similarity threshold applied by the server
	// when not overridden.
	DefaultMinScore = 0.7
)

// Searcher runs filtered semantic queries against the organization's search
// endpoint.
type Searcher struct {
	transport *transport.Client
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher on top of the given transport.
func NewSearcher(t *transport.Client, opts ...Option) (*Searcher, error) {
	if t == nil {
		return nil, ErrTransportRequired
	}

	s := &Searcher{
		transport: t,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// QueryOption configures a single Search call.
type QueryOption func(*queryOptions)

type queryOptions struct {
	projectId string
	fileIds   []string
	topK      int
	minScore  float64
	filters   *core.MetadataFilters
}

// InProject limits the search to a single project.
func InProject(projectId string) QueryOption {
	return func(o *queryOptions) {
		o.projectId = projectId
	}
}

// InFiles limits the search to the given files.
func InFiles(fileIds ...string) QueryOption {
	return func(o *queryOptions) {
		o.fileIds = fileIds
	}
}

// WithTopK sets the number of results requested from the server.
// The server enforces its own ceiling; the client never truncates locally.
func WithTopK(topK int) QueryOption {
	return func(o *queryOptions) {
		o.topK = topK
	}
}

// WithMinScore sets the minimum similarity score threshold.
func WithMinScore(minScore float64) QueryOption {
	return func(o *queryOptions) {
		o.minScore = minScore
	}
}

// WithFilters applies metadata filters to the search.
func WithFilters(filters *core.MetadataFilters) QueryOption {
	return func(o *queryOptions) {
		o.filters = filters
	}
}

// Search sends one filtered query and maps the response into typed results.
// The response may carry semantic chunks, a structured tabular result, or
// both; SearchResults exposes each independently.
//
// Invalid parameters fail before any network call.
func (s *Searcher) Search(ctx context.Context, query string, opts ...QueryOption) (*core.SearchResults, error) {
	o := &queryOptions{
		topK:     DefaultTopK,
		minScore: DefaultMinScore,
	}
	for _, opt := range opts {
		opt(o)
	}

	if query == "" {
		return nil, ErrEmptyQuery
	}
	if o.topK < 1 {
		return nil, ErrInvalidTopK
	}
	if o.minScore < 0 || o.minScore > 1 {
		return nil, ErrInvalidMinScore
	}
	if err := core.ValidateFilters(o.filters); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"query":     query,
		"top_k":     o.topK,
		"min_score": o.minScore,
	}
	if o.projectId != "" {
		payload["project_id"] = o.projectId
	}
	if len(o.fileIds) > 0 {
		payload["file_ids"] = o.fileIds
	}
	if o.filters != nil {
		if filters := o.filters.APIFormat(); len(filters) > 0 {
			payload["metadata_filters"] = filters
		}
	}

	org, err := s.transport.OrgID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/organizations/%s/search/", org)
	raw, err := s.transport.Do(ctx, http.MethodPost, path, payload, nil)
	if err != nil {
		return nil, err
	}

	results, err := core.DecodeSearchResults(query, raw)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search completed",
		"query", query,
		"semantic", results.Len(),
		"structured", results.HasStructured(),
		"time_ms", results.SearchTimeMs)

	return results, nil
}
