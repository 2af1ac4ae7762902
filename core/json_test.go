package core

import (
	"errors"
	"testing"
)

func TestDecodeFileMinimalResponse(t *testing.T) {
	// Confirm/status responses may omit almost everything.
	file, err := DecodeFile([]byte(`{"id": "file-1"}`))
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	if file.Id != "file-1" {
		t.Errorf("Id = %q, want file-1", file.Id)
	}
	if file.Size != 0 {
		t.Errorf("Size = %d, want 0", file.Size)
	}
	if file.Status != StatusUploading {
		t.Errorf("Status = %q, want %q", file.Status, StatusUploading)
	}
	if file.TotalChunks != 0 || file.TotalEmbeddings != 0 {
		t.Errorf("counts = %d/%d, want 0/0", file.TotalChunks, file.TotalEmbeddings)
	}
}

func TestDecodeFileFullResponse(t *testing.T) {
	body := `{
		"id": "file-1",
		"name": "doc.pdf",
		"original_filename": "doc.pdf",
		"size": 1024,
		"mime_type": "application/pdf",
		"project_id": "proj-1",
		"status": "ready",
		"reference_id": "lesson_1",
		"total_chunks": 12,
		"total_embeddings": 12,
		"created_at": "2025-06-01T10:00:00Z"
	}`
	file, err := DecodeFile([]byte(body))
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	if file.Status != StatusReady {
		t.Errorf("Status = %q, want ready", file.Status)
	}
	if file.Size != 1024 {
		t.Errorf("Size = %d, want 1024", file.Size)
	}
	if file.TotalChunks != 12 {
		t.Errorf("TotalChunks = %d, want 12", file.TotalChunks)
	}
	if file.ReferenceId != "lesson_1" {
		t.Errorf("ReferenceId = %q, want lesson_1", file.ReferenceId)
	}
	if file.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want parsed timestamp")
	}
}

func TestDecodeFileCoercesNumericIds(t *testing.T) {
	file, err := DecodeFile([]byte(`{"id": 42, "project_id": 7, "status": "uploaded"}`))
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if file.Id != "42" {
		t.Errorf("Id = %q, want \"42\"", file.Id)
	}
	if file.ProjectId != "7" {
		t.Errorf("ProjectId = %q, want \"7\"", file.ProjectId)
	}
}

func TestDecodeFileMalformed(t *testing.T) {
	_, err := DecodeFile([]byte(`not json`))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("DecodeFile() error = %v, want ErrMalformedResponse", err)
	}
}

func TestDecodeProjects(t *testing.T) {
	body := `[
		{"id": "proj-1", "name": "Project 1", "organization_id": "org-1", "is_active": true},
		{"id": "proj-2", "name": "Project 2", "organization_id": "org-1", "is_active": false},
		{"id": "proj-3", "name": "Project 3", "organization_id": "org-1"}
	]`
	projects, err := DecodeProjects([]byte(body))
	if err != nil {
		t.Fatalf("DecodeProjects() error = %v", err)
	}

	if len(projects) != 3 {
		t.Fatalf("len = %d, want 3", len(projects))
	}
	if !projects[0].IsActive {
		t.Error("projects[0].IsActive = false, want true")
	}
	if projects[1].IsActive {
		t.Error("projects[1].IsActive = true, want false")
	}
	// Missing is_active defaults to true.
	if !projects[2].IsActive {
		t.Error("projects[2].IsActive = false, want default true")
	}
}

func TestDecodeProjectsNonArray(t *testing.T) {
	projects, err := DecodeProjects([]byte(`{"detail": "unexpected"}`))
	if err != nil {
		t.Fatalf("DecodeProjects() error = %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("len = %d, want 0", len(projects))
	}
}

func TestDecodeSearchResultsFlatList(t *testing.T) {
	body := `{
		"query": "key findings",
		"results": [
			{"chunk_id": "c1", "file_id": "f1", "file_name": "doc.pdf", "content": "finding one", "score": 0.91, "chunk_index": 4, "page_number": 2},
			{"chunk_id": 17, "file_id": 3}
		],
		"total_results": 2,
		"search_time_ms": 41.5
	}`
	results, err := DecodeSearchResults("key findings", []byte(body))
	if err != nil {
		t.Fatalf("DecodeSearchResults() error = %v", err)
	}

	if results.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", results.Len())
	}
	first := results.At(0)
	if first.Score != 0.91 || first.ChunkIndex != 4 {
		t.Errorf("first = %+v", first)
	}
	if first.PageNumber == nil || *first.PageNumber != 2 {
		t.Errorf("PageNumber = %v, want 2", first.PageNumber)
	}

	// Permissive defaults plus id coercion on the sparse second result.
	second := results.At(1)
	if second.ChunkId != "17" || second.FileId != "3" {
		t.Errorf("coerced ids = %q/%q", second.ChunkId, second.FileId)
	}
	if second.Content != "" || second.Score != 0 || second.ChunkIndex != 0 {
		t.Errorf("defaults not applied: %+v", second)
	}
	if second.PageNumber != nil {
		t.Errorf("PageNumber = %v, want nil", second.PageNumber)
	}

	if results.TotalResults != 2 {
		t.Errorf("TotalResults = %d, want 2", results.TotalResults)
	}
	if results.SearchTimeMs != 41.5 {
		t.Errorf("SearchTimeMs = %v, want 41.5", results.SearchTimeMs)
	}
}

func TestDecodeSearchResultsContainer(t *testing.T) {
	body := `{
		"results": {
			"semantic": [{"chunk_id": "c1", "content": "chunk", "score": 0.8}],
			"structured": {
				"columns": [{"name": "region", "type": "varchar"}],
				"rows": [{"region": "EMEA"}, {"region": "APAC"}]
			}
		},
		"routing": {"route": "hybrid", "reasoning": "query mentions revenue", "sql_generated": "SELECT region FROM sales"}
	}`
	results, err := DecodeSearchResults("revenue by region", []byte(body))
	if err != nil {
		t.Fatalf("DecodeSearchResults() error = %v", err)
	}

	// Query falls back to the request when the response omits it.
	if results.Query != "revenue by region" {
		t.Errorf("Query = %q", results.Query)
	}
	if !results.HasDocuments() || !results.HasStructured() {
		t.Errorf("HasDocuments = %v, HasStructured = %v, want both true", results.HasDocuments(), results.HasStructured())
	}
	if results.Structured().Len() != 2 {
		t.Errorf("Structured().Len() = %d, want 2", results.Structured().Len())
	}
	if results.Routing == nil || results.Routing.Route != "hybrid" {
		t.Errorf("Routing = %+v", results.Routing)
	}
	if results.Routing.SQLGenerated == "" {
		t.Error("SQLGenerated empty, want generated SQL")
	}
	// total_results missing: defaults to the semantic count.
	if results.TotalResults != 1 {
		t.Errorf("TotalResults = %d, want 1", results.TotalResults)
	}
}

func TestDecodeSearchResultsEmpty(t *testing.T) {
	results, err := DecodeSearchResults("anything", []byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeSearchResults() error = %v", err)
	}
	if results.Len() != 0 || results.HasStructured() {
		t.Errorf("expected empty results, got %+v", results)
	}
	if results.Query != "anything" {
		t.Errorf("Query = %q, want request query", results.Query)
	}
	if results.TotalResults != 0 || results.SearchTimeMs != 0 {
		t.Errorf("defaults not applied: total=%d time=%v", results.TotalResults, results.SearchTimeMs)
	}
}
