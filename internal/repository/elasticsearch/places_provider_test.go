package elasticsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-places/internal/domain"
)

const hitsBody = `{
  "hits": {
    "total": {"value": 2},
    "hits": [
      {"_id": "a1", "_source": {"id": "p1", "name": "Cal Pep", "address": "Plaça de les Olles, 8", "types": ["restaurant"], "rating": 4.6, "location": {"lat": 41.3836, "lon": 2.1830}}},
      {"_id": "a2", "_source": {"name": "Bar del Pla", "location": {"lat": 41.3860, "lon": 2.1790}}}
    ]
  }
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *elasticsearch.Client) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	require.NoError(t, err)

	return server, client
}

func TestPlacesProvider_TextSearch(t *testing.T) {
	req := domain.SearchRequest{
		Origin:   domain.Coordinate{Lat: 41.3851, Lng: 2.1734},
		RadiusKm: 55,
		Query:    "restaurant",
	}

	t.Run("successful search", func(t *testing.T) {
		server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/places/_search", r.URL.Path)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(LimitPlaces), body["size"])

			filter := body["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].(map[string]interface{})
			geo := filter["geo_distance"].(map[string]interface{})
			assert.Equal(t, "55.000km", geo["distance"])

			w.Write([]byte(hitsBody))
		})
		defer server.Close()

		provider := NewPlacesProvider(client, "places", zap.NewNop())

		resp, err := provider.TextSearch(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOK, resp.Status)
		require.Len(t, resp.Results, 2)

		assert.Equal(t, "p1", resp.Results[0].ID)
		assert.Equal(t, "Cal Pep", resp.Results[0].Name)
		assert.Equal(t, domain.Coordinate{Lat: 41.3836, Lng: 2.1830}, resp.Results[0].Location)
		require.NotNil(t, resp.Results[0].Rating)
		assert.Equal(t, 4.6, *resp.Results[0].Rating)

		// falls back to the document _id
		assert.Equal(t, "a2", resp.Results[1].ID)
		assert.Equal(t, "elasticsearch", provider.Name())
	})

	t.Run("no hits", func(t *testing.T) {
		server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"hits":{"total":{"value":0},"hits":[]}}`))
		})
		defer server.Close()

		resp, err := NewPlacesProvider(client, "places", zap.NewNop()).TextSearch(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusZeroResults, resp.Status)
	})

	t.Run("unauthorized is request denied", func(t *testing.T) {
		server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"type":"security_exception"},"status":401}`))
		})
		defer server.Close()

		resp, err := NewPlacesProvider(client, "places", zap.NewNop()).TextSearch(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRequestDenied, resp.Status)
	})

	t.Run("server error is a failure", func(t *testing.T) {
		server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom","status":500}`))
		})
		defer server.Close()

		_, err := NewPlacesProvider(client, "places", zap.NewNop()).TextSearch(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestStatusFromHTTP(t *testing.T) {
	assert.Equal(t, domain.StatusRequestDenied, statusFromHTTP(http.StatusForbidden))
	assert.Equal(t, domain.StatusOverQueryLimit, statusFromHTTP(http.StatusTooManyRequests))
	assert.Equal(t, domain.StatusNotFound, statusFromHTTP(http.StatusNotFound))
	assert.Equal(t, domain.StatusInvalidRequest, statusFromHTTP(http.StatusBadRequest))
	assert.Equal(t, domain.ProviderStatus(""), statusFromHTTP(http.StatusServiceUnavailable))
}

func TestBuildQuery(t *testing.T) {
	query := buildQuery(domain.SearchRequest{
		Origin:   domain.Coordinate{Lat: 1, Lng: 2},
		RadiusKm: 1.5,
		Query:    "cafe",
	})

	data, err := json.Marshal(query)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"distance":"1.500km"`)
	assert.Contains(t, string(data), `"query":"cafe"`)
	assert.Contains(t, string(data), `"location":{"lat":1,"lon":2}`)
}
