package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitMercariSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method, "should search via POST")
		assert.NotEmpty(t, req.Header.Get("DPoP"), "should attach a DPoP proof")
		assert.Equal(t, "web", req.Header.Get("X-Platform"), "should claim web platform")

		var search mercariSearchRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&search), "request body should be valid JSON")
		assert.Equal(t, "switch oled", search.SearchCondition.Keyword, "should search requested keyword")
		assert.Equal(t, []string{"STATUS_SOLD_OUT"}, search.SearchCondition.Status, "should filter sold-out listings")
		assert.NotEmpty(t, search.SearchSessionID, "should carry a search session id")

		wrt.Header().Set("Content-Type", "application/json")
		_, _ = wrt.Write([]byte(`{
			"items": [
				{"id": "m111", "name": "Switch OLED white", "price": 28000, "status": "sold_out", "updated": 1700000000},
				{"id": "m222", "name": "Switch OLED neon", "price": 26500, "status": "sold_out", "updated": 0},
				{"id": "m333", "name": "broken listing", "price": -1, "status": "sold_out", "updated": 1700000000}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	mercari := newMercari(srv.Client(), srv.URL, zerolog.Nop())

	records := mercari.Search(context.TODO(), "switch oled", 30)

	require.Len(t, records, 2, "should drop the record with negative price")
	assert.Equal(t, models.PriceRecord{
		Name:   "Switch OLED white",
		Price:  28000,
		Status: models.StatusSold,
		Date:   "2023-11-14",
		URL:    "https://jp.mercari.com/item/m111",
		Source: models.SourceMercari,
	}, records[0], "should map the first item")
	assert.Empty(t, records[1].Date, "should leave date empty when source reports none")
}

func TestUnitMercariSearchCapsAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.Header().Set("Content-Type", "application/json")
		_, _ = wrt.Write([]byte(`{"items": [
			{"id": "1", "name": "a", "price": 100, "updated": 0},
			{"id": "2", "name": "b", "price": 200, "updated": 0},
			{"id": "3", "name": "c", "price": 300, "updated": 0}
		]}`))
	}))
	t.Cleanup(srv.Close)

	mercari := newMercari(srv.Client(), srv.URL, zerolog.Nop())

	records := mercari.Search(context.TODO(), "anything", 2)

	require.Len(t, records, 2, "should cap records at limit")
	assert.Equal(t, "a", records[0].Name, "should keep native order when truncating")
}

func TestUnitMercariSearchNeverFails(t *testing.T) {
	tests := map[string]struct {
		handler http.Handler
	}{
		"server error": {
			handler: http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
				wrt.WriteHeader(http.StatusInternalServerError)
			}),
		},
		"malformed payload": {
			handler: http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
				_, _ = wrt.Write([]byte(`{"items": [{`))
			}),
		},
		"unexpected shape": {
			handler: http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
				_, _ = wrt.Write([]byte(`"just a string"`))
			}),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			mercari := newMercari(srv.Client(), srv.URL, zerolog.Nop())

			records := mercari.Search(context.TODO(), "anything", 10)

			assert.Empty(t, records, "should absorb the failure into an empty result")
		})
	}
}

func TestUnitMercariSearchUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := srv.Client()
	srv.Close()

	mercari := newMercari(client, srv.URL, zerolog.Nop())

	records := mercari.Search(context.TODO(), "anything", 10)

	assert.Empty(t, records, "should absorb connection errors into an empty result")
}

func TestUnitDpopProof(t *testing.T) {
	proof, err := dpopProof("https://api.example.test/search", http.MethodPost)

	require.NoError(t, err, "shouldn't fail signing")
	// header.claims.signature
	assert.Len(t, splitJWT(proof), 3, "should produce a three-part JWT")
}

func splitJWT(token string) []string {
	parts := []string{}
	start := 0
	for i := range token {
		if token[i] == '.' {
			parts = append(parts, token[start:i])
			start = i + 1
		}
	}
	return append(parts, token[start:])
}
