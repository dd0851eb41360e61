package openmeteo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breathesafe/breathesafe/internal/geocode/openmeteo"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Pune", r.URL.Query().Get("name"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))

		response := map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"name":      "Pune",
					"admin1":    "Maharashtra",
					"country":   "India",
					"latitude":  18.51957,
					"longitude": 73.85535,
				},
				{
					"name":      "Pune Cantonment",
					"admin1":    "Maharashtra",
					"country":   "India",
					"latitude":  18.5,
					"longitude": 73.88,
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{BaseURL: server.URL})

	candidates, err := client.Search(context.Background(), "Pune")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Pune", candidates[0].Name)
	assert.Equal(t, "Maharashtra", candidates[0].Admin1)
	assert.Equal(t, "India", candidates[0].Country)
	assert.Equal(t, 18.51957, candidates[0].Lat)
	assert.Equal(t, 73.85535, candidates[0].Lon)
}

func TestClient_Search_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Open-Meteo omits the results key entirely on a miss.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{BaseURL: server.URL})

	candidates, err := client.Search(context.Background(), "Xyzzyville")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestClient_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{BaseURL: server.URL})

	_, err := client.Search(context.Background(), "Pune")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}
