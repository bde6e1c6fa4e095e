package archive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/memoria/internal/store"
)

var sample = []store.Memory{
	{
		ID:           "id-1",
		ImageContent: "data:image/png;base64,iVBORw0KGgo=",
		Date:         "2024-03-01",
		Comment:      "beach day",
		Timestamp:    "2024-03-01T12:00:00Z",
	},
	{
		ID:           "id-2",
		ImageContent: "photos/sunset.jpg",
		Date:         "2024-02-14",
		Comment:      "sunset walk",
		Timestamp:    "2024-02-14T20:00:00Z",
	},
}

func roundTrip(t *testing.T, format string) []store.Fields {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sample, format))
	fields, err := Import(&buf, format)
	require.NoError(t, err)
	return fields
}

func TestRoundTripJSON(t *testing.T) {
	fields := roundTrip(t, FormatJSON)
	require.Len(t, fields, 2)
	assert.Equal(t, "beach day", fields[0].Comment)
	assert.Equal(t, "2024-02-14", fields[1].Date)
	assert.Equal(t, sample[1].ImageContent, fields[1].ImageContent)
}

func TestRoundTripYAML(t *testing.T) {
	fields := roundTrip(t, FormatYAML)
	require.Len(t, fields, 2)
	assert.Equal(t, sample[0].ImageContent, fields[0].ImageContent)
	assert.Equal(t, "sunset walk", fields[1].Comment)
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Export(&buf, sample, "xml"))
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an array", `{"imageContent":"x","date":"2024-01-01","comment":"c"}`},
		{"missing comment", `[{"imageContent":"x","date":"2024-01-01"}]`},
		{"empty image", `[{"imageContent":"","date":"2024-01-01","comment":"c"}]`},
		{"malformed date", `[{"imageContent":"x","date":"01/01/2024","comment":"c"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.doc), FormatJSON)
			assert.Error(t, err)
		})
	}
}

func TestImportUnknownFormat(t *testing.T) {
	_, err := Import(strings.NewReader("[]"), "toml")
	assert.Error(t, err)
}
