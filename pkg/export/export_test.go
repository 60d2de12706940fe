package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Columns: []Column{
			{Key: "id", Title: "ID", Width: 1},
			{Key: "notes", Title: "Notes", Width: 4},
		},
		Rows: []map[string]string{
			{"id": "c5", "notes": "Contains offensive language, with a comma"},
			{"id": "c7", "notes": strings.Repeat("long ", 80)},
		},
	}
}

func TestCSVRenderQuotesFields(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Notes", lines[0])
	assert.Equal(t, `c5,"Contains offensive language, with a comma"`, lines[1])
}

func TestCSVRequiresColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Moderation history")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestColumnWidthsFillPage(t *testing.T) {
	widths := columnWidths([]Column{{Width: 1}, {}, {Width: 2}})
	assert.InDelta(t, pageWidthLandscape, widths[0]+widths[1]+widths[2], 0.001)
	assert.InDelta(t, widths[0], widths[1], 0.001)
}
