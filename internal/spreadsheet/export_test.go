package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

var exportColumns = []core.Column{
	{Key: "nom", Label: "Nom"},
	{Key: "montant", Label: "Montant", Render: func(e core.Entity) string {
		return core.FieldString(e, "montant") + " €"
	}},
}

var exportItems = []core.Entity{
	core.Record{"id": 1, "nom": "Dupont, Marie", "montant": 120.5},
	core.Record{"id": 2, "nom": "Martin", "montant": 80},
}

func TestCSVExporter(t *testing.T) {
	var buf bytes.Buffer
	e := NewCSVExporter(exportColumns)

	require.NoError(t, e.Export(&buf, exportItems))

	want := "\xEF\xBB\xBFNom,Montant\n\"Dupont, Marie\",120.5 €\nMartin,80 €\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, ".csv", e.FileExtension())
	assert.Contains(t, e.ContentType(), "text/csv")
}

func TestCSVExporter_Semicolon(t *testing.T) {
	var buf bytes.Buffer
	e := &CSVExporter{Columns: exportColumns[:1], Comma: ';'}

	require.NoError(t, e.Export(&buf, exportItems))

	assert.Equal(t, "Nom\nDupont, Marie\nMartin\n", buf.String())
}

func TestXLSXExporter(t *testing.T) {
	var buf bytes.Buffer
	e := NewXLSXExporter(exportColumns)

	require.NoError(t, e.Export(&buf, exportItems))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Nom", "Montant"},
		{"Dupont, Marie", "120.5 €"},
		{"Martin", "80 €"},
	}, rows)
	assert.Equal(t, ".xlsx", e.FileExtension())
}

func TestExporters_EmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter(exportColumns).Export(&buf, nil))
	assert.Equal(t, "\xEF\xBB\xBFNom,Montant\n", buf.String())
}
