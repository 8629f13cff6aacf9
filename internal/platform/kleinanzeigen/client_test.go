package kleinanzeigen

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwizard/internal/apperr"
)

const searchBody = `{"data":{"ads":[
	{"title":"Sony WH-1000XM4","description":"Kaum benutzt","price":180,
	 "metadata":{"details_text":"Art: Kopfhörer | Zustand: Sehr Gut | Versand möglich"}},
	{"title":"Sony Kopfhörer","description":"","price":"150 VB",
	 "metadata":{"details_text":"Art: Kopfhörer"}}
]}}`

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kleinanzeigen/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("ads_key"))
		assert.Equal(t, "Sony WH-1000XM4", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, searchBody)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, APIKey: "secret"})
	ads, err := client.Search(context.Background(), "Sony WH-1000XM4", 5)
	require.NoError(t, err)
	require.Len(t, ads, 2)

	assert.Equal(t, "Sony WH-1000XM4", ads[0].Title)
	assert.Equal(t, float64(180), ads[0].Price)
	assert.Equal(t, "Art: Kopfhörer | Zustand: Sehr Gut | Versand möglich", ads[0].Metadata.DetailsText)
	assert.Equal(t, "150 VB", ads[1].Price)
}

func TestSearchRaw(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, searchBody)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, APIKey: "secret"})
	raw, err := client.SearchRaw(context.Background(), "Sony", 5)
	require.NoError(t, err)
	assert.JSONEq(t, searchBody, string(raw))
}

func TestSearchUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":"invalid key"}`)
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, APIKey: "wrong"})
	_, err := client.Search(context.Background(), "Sony", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}
