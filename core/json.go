package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID decodes a JSON identifier that may arrive as a string or a number.
// The API is inconsistent about numeric ids across endpoints; either form
// is coerced to its string representation.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: identifier %s is neither string nor number", ErrMalformedResponse, data)
	}
	*id = ID(n.String())
	return nil
}

type fileWire struct {
	Id               ID         `json:"id"`
	Name             string     `json:"name"`
	OriginalFilename string     `json:"original_filename"`
	Size             int64      `json:"size"`
	MimeType         string     `json:"mime_type"`
	ProjectId        ID         `json:"project_id"`
	Status           FileStatus `json:"status"`
	ReferenceId      string     `json:"reference_id"`
	ErrorMessage     string     `json:"error_message"`
	TotalChunks      int        `json:"total_chunks"`
	TotalEmbeddings  int        `json:"total_embeddings"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DecodeFile builds a File from an API response body.
// Confirm and status responses may omit fields; missing size and counts
// default to zero and a missing status defaults to StatusUploading.
func DecodeFile(data []byte) (*File, error) {
	var w fileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	status := w.Status
	if status == "" {
		status = StatusUploading
	}
	return &File{
		Id:               string(w.Id),
		Name:             w.Name,
		OriginalFilename: w.OriginalFilename,
		Size:             w.Size,
		MimeType:         w.MimeType,
		ProjectId:        string(w.ProjectId),
		Status:           status,
		ReferenceId:      w.ReferenceId,
		ErrorMessage:     w.ErrorMessage,
		TotalChunks:      w.TotalChunks,
		TotalEmbeddings:  w.TotalEmbeddings,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}, nil
}

type projectWire struct {
	Id             ID        `json:"id"`
	Name           string    `json:"name"`
	OrganizationId ID        `json:"organization_id"`
	IsActive       *bool     `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DecodeProjects builds the project list from an API response body.
// A body that is not a JSON array yields an empty list. A missing is_active
// field defaults to true.
func DecodeProjects(data []byte) ([]Project, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, nil
	}
	var wires []projectWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	projects := make([]Project, 0, len(wires))
	for _, w := range wires {
		active := true
		if w.IsActive != nil {
			active = *w.IsActive
		}
		projects = append(projects, Project{
			Id:             string(w.Id),
			Name:           w.Name,
			OrganizationId: string(w.OrganizationId),
			IsActive:       active,
			CreatedAt:      w.CreatedAt,
			UpdatedAt:      w.UpdatedAt,
		})
	}
	return projects, nil
}

type searchResultWire struct {
	ChunkId       ID             `json:"chunk_id"`
	FileId        ID             `json:"file_id"`
	FileName      string         `json:"file_name"`
	Content       string         `json:"content"`
	Score         float64        `json:"score"`
	ChunkIndex    int            `json:"chunk_index"`
	PageNumber    *int           `json:"page_number"`
	StartPage     *int           `json:"start_page"`
	EndPage       *int           `json:"end_page"`
	ProjectId     ID             `json:"project_id"`
	ReferenceId   string         `json:"reference_id"`
	Category      string         `json:"category"`
	DocumentType  string         `json:"document_type"`
	BoundingBoxes map[string]any `json:"bounding_boxes"`
}

func (w *searchResultWire) toResult() SearchResult {
	return SearchResult{
		ChunkId:       string(w.ChunkId),
		FileId:        string(w.FileId),
		FileName:      w.FileName,
		Content:       w.Content,
		Score:         w.Score,
		ChunkIndex:    w.ChunkIndex,
		PageNumber:    w.PageNumber,
		StartPage:     w.StartPage,
		EndPage:       w.EndPage,
		ProjectId:     string(w.ProjectId),
		ReferenceId:   w.ReferenceId,
		Category:      w.Category,
		DocumentType:  w.DocumentType,
		BoundingBoxes: w.BoundingBoxes,
	}
}

type searchResultsWire struct {
	Query        string          `json:"query"`
	Results      json.RawMessage `json:"results"`
	Routing      *SearchRouting  `json:"routing"`
	TotalResults *int            `json:"total_results"`
	SearchTimeMs float64         `json:"search_time_ms"`
}

type resultsContainerWire struct {
	Semantic   []searchResultWire `json:"semantic"`
	Structured *StructuredResult  `json:"structured"`
}

// DecodeSearchResults builds SearchResults from an API response body.
//
// The search endpoint returns results in one of two shapes: a flat array of
// semantic chunks, or an object separating "semantic" chunks from an optional
// "structured" tabular result. Both decode into the same container.
//
// Missing per-result fields take permissive defaults. A missing total_results
// defaults to the semantic count; the result list is never truncated locally.
func DecodeSearchResults(query string, data []byte) (*SearchResults, error) {
	var w searchResultsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	container, err := decodeResults(w.Results)
	if err != nil {
		return nil, err
	}

	if w.Query != "" {
		query = w.Query
	}
	total := len(container.Semantic)
	if w.TotalResults != nil {
		total = *w.TotalResults
	}

	return &SearchResults{
		Query:        query,
		Results:      container,
		Routing:      w.Routing,
		TotalResults: total,
		SearchTimeMs: w.SearchTimeMs,
	}, nil
}

func decodeResults(raw json.RawMessage) (ResultsContainer, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ResultsContainer{}, nil
	}

	if raw[0] == '[' {
		var wires []searchResultWire
		if err := json.Unmarshal(raw, &wires); err != nil {
			return ResultsContainer{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return ResultsContainer{Semantic: toResults(wires)}, nil
	}

	var w resultsContainerWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return ResultsContainer{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return ResultsContainer{
		Semantic:   toResults(w.Semantic),
		Structured: w.Structured,
	}, nil
}

func toResults(wires []searchResultWire) []SearchResult {
	if len(wires) == 0 {
		return nil
	}
	results := make([]SearchResult, 0, len(wires))
	for i := range wires {
		results = append(results, wires[i].toResult())
	}
	return results
}
