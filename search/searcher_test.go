package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punithg/memic-go/core"
	"github.com/punithg/memic-go/transport"
)

const testOrgId = "org-123-456"

// searchServer answers the identity endpoint and records the payload of
// search requests.
func searchServer(t *testing.T, response string) (*transport.Client, *map[string]any, *atomic.Int32) {
	t.Helper()
	var payload map[string]any
	var searchCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case transport.DefaultIdentityPath:
			fmt.Fprintf(w, `{"organization_id": %q}`, testOrgId)
		case fmt.Sprintf("/organizations/%s/search/", testOrgId):
			searchCalls.Add(1)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.Write([]byte(response))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := transport.New(server.URL, "mk_test_key", 5*time.Second)
	require.NoError(t, err)
	return client, &payload, &searchCalls
}

func TestNewSearcher(t *testing.T) {
	t.Run("nil transport", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrTransportRequired, err)
	})

	t.Run("valid", func(t *testing.T) {
		client, _, _ := searchServer(t, `{}`)
		s, err := NewSearcher(client)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestSearchPayloadDefaults(t *testing.T) {
	client, payload, _ := searchServer(t, `{"results": []}`)
	s, err := NewSearcher(client)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "key findings")
	require.NoError(t, err)

	assert.Equal(t, "key findings", (*payload)["query"])
	assert.Equal(t, float64(DefaultTopK), (*payload)["top_k"])
	assert.Equal(t, DefaultMinScore, (*payload)["min_score"])

	// Optional inputs stay out of the payload entirely when unset.
	assert.NotContains(t, *payload, "project_id")
	assert.NotContains(t, *payload, "file_ids")
	assert.NotContains(t, *payload, "metadata_filters")
}

func TestSearchPayloadWithOptions(t *testing.T) {
	projectId := uuid.NewString()
	client, payload, _ := searchServer(t, `{"results": []}`)
	s, err := NewSearcher(client)
	require.NoError(t, err)

	filters := &core.MetadataFilters{
		ReferenceId: "TG_G1_Math",
		PageRange:   &core.PageRange{Gte: 1, Lte: 50},
	}
	_, err = s.Search(context.Background(), "fractions",
		InProject(projectId),
		InFiles("f1", "f2"),
		WithTopK(5),
		WithMinScore(0.5),
		WithFilters(filters))
	require.NoError(t, err)

	assert.Equal(t, projectId, (*payload)["project_id"])
	assert.Equal(t, []any{"f1", "f2"}, (*payload)["file_ids"])
	assert.Equal(t, float64(5), (*payload)["top_k"])
	assert.Equal(t, 0.5, (*payload)["min_score"])

	sent, ok := (*payload)["metadata_filters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "TG_G1_Math", sent["reference_id"])
	assert.Equal(t, map[string]any{"gte": float64(1), "lte": float64(50)}, sent["page_range"])
}

func TestSearchEmptyFiltersOmitted(t *testing.T) {
	client, payload, _ := searchServer(t, `{"results": []}`)
	s, err := NewSearcher(client)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "anything", WithFilters(&core.MetadataFilters{}))
	require.NoError(t, err)
	assert.NotContains(t, *payload, "metadata_filters")
}

func TestSearchDoesNotTruncateLocally(t *testing.T) {
	// The server ignored top_k=1 and returned two results; the client
	// reports exactly what the server sent.
	response := `{
		"results": [
			{"chunk_id": "c1", "content": "one", "score": 0.9},
			{"chunk_id": "c2", "content": "two", "score": 0.8}
		],
		"total_results": 2
	}`
	client, _, _ := searchServer(t, response)
	s, err := NewSearcher(client)
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "findings", WithTopK(1))
	require.NoError(t, err)
	assert.Equal(t, 2, results.Len())
	assert.Equal(t, 2, results.TotalResults)
}

func TestSearchStructuredResponse(t *testing.T) {
	response := `{
		"results": {
			"semantic": [],
			"structured": {
				"columns": [{"name": "total", "type": "integer"}],
				"rows": [{"total": 991}]
			}
		},
		"routing": {"route": "structured", "connector_name": "warehouse"}
	}`
	client, _, _ := searchServer(t, response)
	s, err := NewSearcher(client)
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "total revenue")
	require.NoError(t, err)
	assert.False(t, results.HasDocuments())
	require.True(t, results.HasStructured())
	assert.Equal(t, "structured", results.Routing.Route)
	assert.Equal(t, "warehouse", results.Routing.ConnectorName)
}

func TestSearchValidation(t *testing.T) {
	client, _, searchCalls := searchServer(t, `{}`)
	s, err := NewSearcher(client)
	require.NoError(t, err)

	ctx := context.Background()
	tests := []struct {
		name    string
		query   string
		opts    []QueryOption
		wantErr error
	}{
		{"empty query", "", nil, ErrEmptyQuery},
		{"zero top_k", "q", []QueryOption{WithTopK(0)}, ErrInvalidTopK},
		{"negative min_score", "q", []QueryOption{WithMinScore(-0.1)}, ErrInvalidMinScore},
		{"min_score above one", "q", []QueryOption{WithMinScore(1.5)}, ErrInvalidMinScore},
		{
			"invalid filters", "q",
			[]QueryOption{WithFilters(&core.MetadataFilters{PageRange: &core.PageRange{Gte: 9, Lte: 2}})},
			core.ErrInvalidFilters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Search(ctx, tt.query, tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, searchCalls.Load(), "validation failures must not reach the network")
}

func TestSearchAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid API key"}`))
	}))
	t.Cleanup(server.Close)

	client, err := transport.New(server.URL, "mk_bad_key", time.Second)
	require.NoError(t, err)
	s, err := NewSearcher(client)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "anything")
	var authErr *transport.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid API key", authErr.Message)
}
