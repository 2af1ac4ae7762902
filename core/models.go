package core

import (
	"strings"
	"time"
)

// FileStatus tracks a file through the remote processing pipeline.
// Statuses only move forward; the five *_failed statuses and ready are
// terminal.
type FileStatus string

const (
	StatusUploading          FileStatus = "uploading"
	StatusUploaded           FileStatus = "uploaded"
	StatusUploadFailed       FileStatus = "upload_failed"
	StatusConversionStarted  FileStatus = "conversion_started"
	StatusConversionComplete FileStatus = "conversion_complete"
	StatusConversionFailed   FileStatus = "conversion_failed"
	StatusParsingStarted     FileStatus = "parsing_started"
	StatusParsingComplete    FileStatus = "parsing_complete"
	StatusParsingFailed      FileStatus = "parsing_failed"
	StatusChunkingStarted    FileStatus = "chunking_started"
	StatusChunkingComplete   FileStatus = "chunking_complete"
	StatusChunkingFailed     FileStatus = "chunking_failed"
	StatusEmbeddingStarted   FileStatus = "embedding_started"
	StatusEmbeddingComplete  FileStatus = "embedding_complete"
	StatusEmbeddingFailed    FileStatus = "embedding_failed"
	StatusReady              FileStatus = "ready"
)

// AllStatuses returns every known file status in pipeline order.
func AllStatuses() []FileStatus {
	return []FileStatus{
		StatusUploading,
		StatusUploaded,
		StatusUploadFailed,
		StatusConversionStarted,
		StatusConversionComplete,
		StatusConversionFailed,
		StatusParsingStarted,
		StatusParsingComplete,
		StatusParsingFailed,
		StatusChunkingStarted,
		StatusChunkingComplete,
		StatusChunkingFailed,
		StatusEmbeddingStarted,
		StatusEmbeddingComplete,
		StatusEmbeddingFailed,
		StatusReady,
	}
}

// IsFailed reports whether the status is a terminal failure.
// Failure statuses follow the naming convention of ending in "_failed", so a
// status added to the set classifies correctly without further code.
func (s FileStatus) IsFailed() bool {
	return strings.HasSuffix(string(s), "_failed")
}

// IsProcessing reports whether the file is still moving through the pipeline.
func (s FileStatus) IsProcessing() bool {
	return !s.IsFailed() && s != StatusReady
}

// IsTerminal reports whether the pipeline will make no further progress.
func (s FileStatus) IsTerminal() bool {
	return s.IsFailed() || s == StatusReady
}

// File is a document tracked by the API.
// Instances are value objects owned by the caller; the client keeps no
// reference to them after return.
type File struct {
	Id               string
	Name             string
	OriginalFilename string
	Size             int64
	MimeType         string
	ProjectId        string
	Status           FileStatus
	ReferenceId      string // Client-provided ID for external system linking
	ErrorMessage     string // Populated when Status is a *_failed status
	TotalChunks      int
	TotalEmbeddings  int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Project is a container for files within an organization.
type Project struct {
	Id             string
	Name           string
	OrganizationId string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PageRange filters search results to an inclusive page interval.
// A zero bound is treated as unset.
type PageRange struct {
	Gte int
	Lte int
}

// APIFormat returns the wire representation, omitting unset bounds.
func (r *PageRange) APIFormat() map[string]any {
	out := map[string]any{}
	if r.Gte > 0 {
		out["gte"] = r.Gte
	}
	if r.Lte > 0 {
		out["lte"] = r.Lte
	}
	return out
}

// MetadataFilters narrows a search by file metadata.
// List fields use OR semantics. Zero-valued fields are omitted from the
// serialized form.
type MetadataFilters struct {
	ReferenceId  string
	ReferenceIds []string
	PageNumber   int
	PageNumbers  []int
	PageRange    *PageRange
	Category     string
	DocumentType string
}

// APIFormat returns the sparse key-value map sent to the search endpoint.
// An empty filter set serializes to an empty map.
func (f *MetadataFilters) APIFormat() map[string]any {
	out := map[string]any{}
	if f == nil {
		return out
	}
	if f.ReferenceId != "" {
		out["reference_id"] = f.ReferenceId
	}
	if len(f.ReferenceIds) > 0 {
		out["reference_ids"] = f.ReferenceIds
	}
	if f.PageNumber > 0 {
		out["page_number"] = f.PageNumber
	}
	if len(f.PageNumbers) > 0 {
		out["page_numbers"] = f.PageNumbers
	}
	if f.PageRange != nil {
		out["page_range"] = f.PageRange.APIFormat()
	}
	if f.Category != "" {
		out["category"] = f.Category
	}
	if f.DocumentType != "" {
		out["document_type"] = f.DocumentType
	}
	return out
}

// SearchResult is a single document chunk matched by a search.
// Optional page fields are nil when the server omits them.
type SearchResult struct {
	ChunkId       string
	FileId        string
	FileName      string
	Content       string
	Score         float64
	ChunkIndex    int
	PageNumber    *int
	StartPage     *int
	EndPage       *int
	ProjectId     string
	ReferenceId   string
	Category      string
	DocumentType  string
	BoundingBoxes map[string]any
}

// ColumnInfo describes one column of a structured result.
type ColumnInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// StructuredResult holds tabular query output with column metadata.
type StructuredResult struct {
	Columns []ColumnInfo     `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Len returns the number of rows.
func (r *StructuredResult) Len() int {
	return len(r.Rows)
}

// HasData reports whether any rows were returned.
func (r *StructuredResult) HasData() bool {
	return len(r.Rows) > 0
}

// SearchRouting describes which backend path served a query.
type SearchRouting struct {
	Route          string `json:"route"` // "semantic", "structured", or "hybrid"
	Reasoning      string `json:"reasoning,omitempty"`
	ConnectorId    string `json:"connector_id,omitempty"`
	ConnectorName  string `json:"connector_name,omitempty"`
	SQLGenerated   string `json:"sql_generated,omitempty"`
	SQLExplanation string `json:"sql_explanation,omitempty"`
}

// ResultsContainer holds both result families. Semantic and structured
// results may be present simultaneously; consumers check either
// independently.
type ResultsContainer struct {
	Semantic   []SearchResult
	Structured *StructuredResult
}

// SearchResults is the typed response of one search call.
type SearchResults struct {
	Query        string
	Results      ResultsContainer
	Routing      *SearchRouting
	TotalResults int
	SearchTimeMs float64
}

// Semantic returns the ordered document-chunk results.
func (r *SearchResults) Semantic() []SearchResult {
	return r.Results.Semantic
}

// Structured returns the tabular result, or nil if the query produced none.
func (r *SearchResults) Structured() *StructuredResult {
	return r.Results.Structured
}

// Len returns the number of semantic results.
func (r *SearchResults) Len() int {
	return len(r.Results.Semantic)
}

// At returns the semantic result at index i.
func (r *SearchResults) At(i int) SearchResult {
	return r.Results.Semantic[i]
}

// HasStructured reports whether the response carried tabular data.
func (r *SearchResults) HasStructured() bool {
	return r.Results.Structured != nil && r.Results.Structured.HasData()
}

// HasDocuments reports whether the response carried semantic chunks.
func (r *SearchResults) HasDocuments() bool {
	return len(r.Results.Semantic) > 0
}
