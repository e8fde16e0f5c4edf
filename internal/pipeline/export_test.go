package pipeline

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"metaharvest/internal/record"
)

const exportFixture = `{
	"isShownAt": "https://x.org/digital/collection/maps/id/42",
	"dataProvider": "Example Library",
	"object": "https://x.org/utils/getthumbnail/collection/maps/id/42",
	"@id": "http://dp.la/api/items/abc",
	"sourceResource": {
		"title": ["Map of Ohio"],
		"identifier": ["maps:42"],
		"subject": [{"name": "Rivers"}, {"name": "Lakes"}],
		"temporal": [{"displayDate": "1901-1910", "begin": "1901"}, {"displayDate": "ignored"}],
		"language": [{"iso639_3": "eng", "name": "English"}, {"iso639_3": "fra", "name": "French"}],
		"creator": ["Smith", "Jones"],
		"format": [],
		"rights": "Public domain",
		"extent": {"height": 12}
	}
}`

func TestBuildExportRow(t *testing.T) {
	rows := BuildExportRows([]*record.Record{mustRecord(t, exportFixture)})
	require.Len(t, rows, 1)
	row := rows[0]

	require.Equal(t, []string{
		"url", "dataProvider", "thumbnail", "dplaIdentifier",
		"title", "subject", "displayDate", "languageCode", "language",
		"creator", "format", "rights", "extent",
	}, row.Columns())

	want := map[string]string{
		"url":            "https://x.org/digital/collection/maps/id/42",
		"dataProvider":   "Example Library",
		"thumbnail":      "https://x.org/utils/getthumbnail/collection/maps/id/42",
		"dplaIdentifier": "http://dp.la/api/items/abc",
		"title":          "Map of Ohio",
		"subject":        "Rivers|Lakes",
		"displayDate":    "1901-1910",
		"languageCode":   "eng|fra",
		"language":       "English|French",
		"creator":        "Smith|Jones",
		"format":         "",
		"rights":         "Public domain",
		"extent":         `{"height":12}`,
	}
	for column, value := range want {
		got, ok := row.Get(column)
		require.True(t, ok, column)
		require.Equal(t, value, got, column)
	}
	_, ok := row.Get("identifier")
	require.False(t, ok)
	_, ok = row.Get("temporal")
	require.False(t, ok)
}

func TestBuildExportRowLenientEntries(t *testing.T) {
	rec := mustRecord(t, `{"sourceResource": {"subject": ["Plain"], "language": ["English"], "temporal": ["1900"]}}`)
	row := BuildExportRows([]*record.Record{rec})[0]

	subject, _ := row.Get("subject")
	require.Equal(t, "Plain", subject)
	code, _ := row.Get("languageCode")
	require.Equal(t, "", code)
	name, _ := row.Get("language")
	require.Equal(t, "English", name)
	display, _ := row.Get("displayDate")
	require.Equal(t, "", display)

	url, ok := row.Get("url")
	require.True(t, ok)
	require.Equal(t, "", url)
}

func TestWriteCSVHeaderUnion(t *testing.T) {
	first := mustRecord(t, `{"isShownAt": "u1", "sourceResource": {"title": ["A"], "creator": ["X", "Y"]}}`)
	second := mustRecord(t, `{"isShownAt": "u2", "sourceResource": {"subject": [{"name": "S"}], "title": ["B, with comma"]}}`)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, BuildExportRows([]*record.Record{first, second})))

	lines, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"url", "dataProvider", "thumbnail", "dplaIdentifier", "title", "creator", "subject"},
		{"u1", "", "", "", "A", "X|Y", ""},
		{"u2", "", "", "", "B, with comma", "", "S"},
	}, lines)
}

func TestWriteCSVNoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	require.Empty(t, buf.String())
}

func TestExportRecordsToCSVOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "export.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))
	require.NoError(t, os.WriteFile(out, []byte("stale,content\nthat,is,long,er\n"), 0o644))

	require.NoError(t, ExportRecordsToCSV([]*record.Record{mustRecord(t, exportFixture)}, out))

	blob, err := os.ReadFile(out)
	require.NoError(t, err)
	lines, err := csv.NewReader(bytes.NewReader(blob)).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "url", lines[0][0])
	require.NotContains(t, string(blob), "stale")
}

func TestExportRecordsToCSVCreatesDirs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "export.csv")
	require.NoError(t, ExportRecordsToCSV([]*record.Record{mustRecord(t, exportFixture)}, out))
	_, err := os.Stat(out)
	require.NoError(t, err)
}
