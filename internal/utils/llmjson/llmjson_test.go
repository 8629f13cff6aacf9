package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwizard/internal/apperr"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		text string
		want map[string]any
	}{
		"bare json": {
			text: `{"brand": "Sony", "condition": "Gut"}`,
			want: map[string]any{"brand": "Sony", "condition": "Gut"},
		},
		"json fence": {
			text: "```json\n{\"brand\": \"Sony\"}\n```",
			want: map[string]any{"brand": "Sony"},
		},
		"plain fence": {
			text: "```\n{\"brand\": \"Sony\"}\n```",
			want: map[string]any{"brand": "Sony"},
		},
		"surrounding whitespace": {
			text: "  \n{\"suggested_price\": null}\n  ",
			want: map[string]any{"suggested_price": nil},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseInvalidCarriesRawText(t *testing.T) {
	_, err := Parse("```json\nSorry, I cannot identify this product.\n```")
	require.Error(t, err)

	var fe *apperr.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Sorry, I cannot identify this product.", fe.Raw)
}

func TestUnfence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, Unfence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, Unfence(`{"a":1}`))
}
