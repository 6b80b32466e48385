package fatsecret

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/DenGolivets/tracker-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, searchBody string) (*httptest.Server, *int32) {
	t.Helper()
	var tokenCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/connect/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client-id", user)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":86400}`))
	})
	mux.HandleFunc("/rest/server.api", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "foods.search", r.URL.Query().Get("method"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &tokenCalls
}

func newTestClient(server *httptest.Server) *Client {
	return New(config.FatSecretConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     server.URL + "/connect/token",
		APIURL:       server.URL + "/rest/server.api",
	})
}

func TestSearchFoods(t *testing.T) {
	server, tokenCalls := newTestServer(t, `{
		"foods": {
			"food": [
				{"food_id": "1", "food_name": "Chicken Breast", "food_description": "Per 100g - 165kcal", "brand_name": ""},
				{"food_id": "2", "food_name": "Chicken Soup ", "food_description": "Per 250g - 90kcal", "brand_name": "Acme"}
			]
		}
	}`)
	client := newTestClient(server)

	results, err := client.SearchFoods(context.Background(), "chicken")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Chicken Breast", results[0].Name)
	assert.Equal(t, "Chicken Soup", results[1].Name)
	assert.Equal(t, "Acme", results[1].Brand)

	// Second search reuses the cached token.
	_, err = client.SearchFoods(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(tokenCalls))
}

func TestSearchFoodsSingleResultObject(t *testing.T) {
	// The platform returns an object instead of an array for a single hit.
	server, _ := newTestServer(t, `{
		"foods": {
			"food": {"food_id": "7", "food_name": "Kefir", "food_description": "Per 100ml - 41kcal"}
		}
	}`)
	client := newTestClient(server)

	results, err := client.SearchFoods(context.Background(), "kefir")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Kefir", results[0].Name)
}

func TestSearchFoodsNoResults(t *testing.T) {
	server, _ := newTestServer(t, `{"foods": {}}`)
	client := newTestClient(server)

	results, err := client.SearchFoods(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := New(config.FatSecretConfig{
		ClientID:     "bad",
		ClientSecret: "bad",
		TokenURL:     server.URL + "/connect/token",
		APIURL:       server.URL + "/rest/server.api",
	})

	_, err := client.SearchFoods(context.Background(), "chicken")
	assert.Error(t, err)
}
