package price

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwizard/internal/apperr"
	"adwizard/internal/core/process"
	"adwizard/internal/core/process/processtest"
	"adwizard/internal/platform/kleinanzeigen"
)

type fakeSearch struct {
	ads      []kleinanzeigen.SearchAd
	raw      json.RawMessage
	err      error
	gotQuery string
	gotLimit int
}

func (f *fakeSearch) Search(_ context.Context, query string, limit int) ([]kleinanzeigen.SearchAd, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.ads, f.err
}

func (f *fakeSearch) SearchRaw(_ context.Context, query string, limit int) (json.RawMessage, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.raw, f.err
}

type fakeModel struct {
	response  string
	err       error
	gotSystem string
	gotUser   string
}

func (f *fakeModel) Generate(_ context.Context, system, user string) (string, error) {
	f.gotSystem = system
	f.gotUser = user
	return f.response, f.err
}

func seedProcess(t *testing.T, store *processtest.Store, p *process.AdProcess) string {
	t.Helper()
	id, err := store.Create(context.Background(), p)
	require.NoError(t, err)
	return id
}

func identifiedProcess() *process.AdProcess {
	return &process.AdProcess{
		WizardState: process.StateIdentified,
		Identification: process.IdentificationStep{
			Status: process.StatusDone,
			Data: map[string]any{
				"brand":         "Sony",
				"model_or_type": "WH-1000XM4",
				"condition":     "Gut",
				"category":      "Elektronik/Audio & Hifi",
			},
		},
	}
}

func TestExtractCondition(t *testing.T) {
	tests := map[string]struct {
		details string
		want    *string
	}{
		"present":        {details: "Art: Kopfhörer | Zustand: Sehr Gut | Versand möglich", want: ptr("Sehr Gut")},
		"last segment":   {details: "Art: Kopfhörer | Zustand: Defekt", want: ptr("Defekt")},
		"missing marker": {details: "Art: Kopfhörer | Versand möglich", want: nil},
		"empty":          {details: "", want: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractCondition(tc.details))
		})
	}
}

func ptr(s string) *string { return &s }

func TestFetchAndStoreComparables(t *testing.T) {
	store := processtest.NewStore()
	search := &fakeSearch{ads: []kleinanzeigen.SearchAd{
		{
			Title:       "Sony WH-1000XM4 Kopfhörer",
			Description: "Kaum benutzt",
			Price:       float64(180),
			Metadata:    kleinanzeigen.AdMetadata{DetailsText: "Zustand: Sehr Gut | Versand möglich"},
		},
		{
			Title: "Sony Kopfhörer",
			Price: "150 VB",
		},
	}}
	svc := NewService(store, search, &fakeModel{})

	id := seedProcess(t, store, identifiedProcess())
	result, err := svc.FetchAndStoreComparables(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Sony WH-1000XM4", result.Query)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "Sony WH-1000XM4", search.gotQuery)
	assert.Equal(t, 5, search.gotLimit)

	p := store.Docs[id]
	require.NotNil(t, p.PriceData)
	require.Len(t, p.PriceData.Comparables, 2)
	assert.Equal(t, "Sony WH-1000XM4 Kopfhörer", p.PriceData.Comparables[0].Title)
	require.NotNil(t, p.PriceData.Comparables[0].Condition)
	assert.Equal(t, "Sehr Gut", *p.PriceData.Comparables[0].Condition)
	assert.Nil(t, p.PriceData.Comparables[1].Condition)
	assert.Equal(t, process.StateComparablesRetrieved, p.WizardState)
}

func TestFetchAndStoreComparablesIncompleteData(t *testing.T) {
	store := processtest.NewStore()
	svc := NewService(store, &fakeSearch{}, &fakeModel{})

	p := identifiedProcess()
	delete(p.Identification.Data, "model_or_type")
	id := seedProcess(t, store, p)

	_, err := svc.FetchAndStoreComparables(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Nil(t, store.Docs[id].PriceData, "comparables must stay untouched")
}

func TestFetchAndStoreComparablesNotFound(t *testing.T) {
	store := processtest.NewStore()
	svc := NewService(store, &fakeSearch{}, &fakeModel{})

	_, err := svc.FetchAndStoreComparables(context.Background(), "0123456789abcdef01234567")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSearchComparablesPassThrough(t *testing.T) {
	raw := json.RawMessage(`{"data":{"ads":[]}}`)
	search := &fakeSearch{raw: raw}
	svc := NewService(processtest.NewStore(), search, &fakeModel{})

	got, err := svc.SearchComparables(context.Background(), "Sony", 0)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, 5, search.gotLimit, "limit defaults to 5")
}

func TestSuggest(t *testing.T) {
	store := processtest.NewStore()
	model := &fakeModel{response: "```json\n{\"suggested_price\": \"150.00\", \"pricerelevante_faktoren\": \"Zustand\", \"explanation\": \"3 passende Anzeigen\"}\n```"}
	svc := NewService(store, &fakeSearch{}, model)

	p := identifiedProcess()
	p.PriceData = &process.PriceData{Comparables: []process.Comparable{
		{Title: "Sony WH-1000XM4", Price: float64(180), Condition: ptr("Sehr Gut")},
	}}
	id := seedProcess(t, store, p)

	suggestion, err := svc.Suggest(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "150,00 €", suggestion["suggested_price"])
	assert.Equal(t, "3 passende Anzeigen", suggestion["explanation"])

	stored := store.Docs[id]
	assert.Equal(t, suggestion, stored.PriceData.Suggestion)
	assert.Equal(t, process.StatePriceSuggested, stored.WizardState)

	assert.Contains(t, model.gotUser, "Produktdaten:")
	assert.Contains(t, model.gotUser, "Vergleichsanzeigen:")
	assert.Contains(t, model.gotSystem, "Preisfindung")
}

func TestSuggestNullPrice(t *testing.T) {
	store := processtest.NewStore()
	model := &fakeModel{response: `{"suggested_price": null, "explanation": "keine passenden Anzeigen"}`}
	svc := NewService(store, &fakeSearch{}, model)

	p := identifiedProcess()
	p.PriceData = &process.PriceData{Comparables: []process.Comparable{{Title: "irrelevant"}}}
	id := seedProcess(t, store, p)

	suggestion, err := svc.Suggest(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Preis auf Anfrage", suggestion["suggested_price"])
}

func TestSuggestWithoutComparables(t *testing.T) {
	store := processtest.NewStore()
	svc := NewService(store, &fakeSearch{}, &fakeModel{})

	id := seedProcess(t, store, identifiedProcess())
	_, err := svc.Suggest(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestSuggestUnparsableResponse(t *testing.T) {
	store := processtest.NewStore()
	model := &fakeModel{response: "ungefähr 150 Euro"}
	svc := NewService(store, &fakeSearch{}, model)

	p := identifiedProcess()
	p.PriceData = &process.PriceData{Comparables: []process.Comparable{{Title: "x"}}}
	id := seedProcess(t, store, p)

	_, err := svc.Suggest(context.Background(), id)
	var fe *apperr.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "ungefähr 150 Euro", fe.Raw)
	assert.Nil(t, store.Docs[id].PriceData.Suggestion)
}

func TestUpdateAttributes(t *testing.T) {
	store := processtest.NewStore()
	svc := NewService(store, &fakeSearch{}, &fakeModel{})

	id := seedProcess(t, store, identifiedProcess())
	brand, model, err := svc.UpdateAttributes(context.Background(), id, "Bose", "QC45")
	require.NoError(t, err)
	assert.Equal(t, "Bose", brand)
	assert.Equal(t, "QC45", model)

	data := store.Docs[id].Identification.Data
	assert.Equal(t, "Bose", data["brand"])
	assert.Equal(t, "QC45", data["model_or_type"])
	assert.Equal(t, "Gut", data["condition"], "unrelated fields keep their values")
}

func TestUpdateAttributesNotFound(t *testing.T) {
	svc := NewService(processtest.NewStore(), &fakeSearch{}, &fakeModel{})

	_, _, err := svc.UpdateAttributes(context.Background(), "0123456789abcdef01234567", "Bose", "QC45")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
