package pipeline

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"metaharvest/internal"
	"metaharvest/internal/record"
)

const multiValueSeparator = "|"

// BuildExportRows flattens normalized records into CSV rows.
func BuildExportRows(records []*record.Record) []*internal.ExportRow {
	rows := make([]*internal.ExportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, buildExportRow(rec))
	}
	return rows
}

func buildExportRow(rec *record.Record) *internal.ExportRow {
	row := internal.NewExportRow()
	row.Set("url", topLevelCell(rec, "isShownAt"))
	row.Set("dataProvider", topLevelCell(rec, "dataProvider"))
	row.Set("thumbnail", topLevelCell(rec, "object"))
	row.Set("dplaIdentifier", topLevelCell(rec, "@id"))

	raw, _ := rec.Get("sourceResource")
	source, ok := raw.(*record.Record)
	if !ok {
		return row
	}

	for _, field := range source.Keys() {
		if field == "identifier" {
			continue
		}
		value, _ := source.Get(field)
		list, isList := value.([]any)
		if !isList {
			row.Set(field, formatCell(value))
			continue
		}

		switch {
		case len(list) == 0:
			row.Set(field, "")
		case field == "subject":
			names := make([]string, 0, len(list))
			for _, subject := range list {
				names = append(names, entryValue(subject, "name"))
			}
			row.Set(field, strings.Join(names, multiValueSeparator))
		case field == "temporal":
			row.Set("displayDate", entryField(list[0], "displayDate"))
		case field == "language":
			codes := make([]string, 0, len(list))
			names := make([]string, 0, len(list))
			for _, lang := range list {
				codes = append(codes, entryField(lang, "iso639_3"))
				names = append(names, entryValue(lang, "name"))
			}
			row.Set("languageCode", strings.Join(codes, multiValueSeparator))
			row.Set("language", strings.Join(names, multiValueSeparator))
		case len(list) == 1:
			row.Set(field, formatCell(list[0]))
		default:
			cells := make([]string, 0, len(list))
			for _, item := range list {
				cells = append(cells, formatCell(item))
			}
			row.Set(field, strings.Join(cells, multiValueSeparator))
		}
	}

	return row
}

// WriteCSV writes a header of every column in first-seen order followed by
// one line per row. Columns a row lacks are left empty.
func WriteCSV(w io.Writer, rows []*internal.ExportRow) error {
	if len(rows) == 0 {
		return nil
	}

	header := []string{}
	seen := map[string]struct{}{}
	for _, row := range rows {
		for _, column := range row.Columns() {
			if _, ok := seen[column]; ok {
				continue
			}
			seen[column] = struct{}{}
			header = append(header, column)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	line := make([]string, len(header))
	for _, row := range rows {
		for i, column := range header {
			value, _ := row.Get(column)
			line[i] = value
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRecordsToCSV writes records to outputPath, replacing any existing file.
func ExportRecordsToCSV(records []*record.Record, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, BuildExportRows(records)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func topLevelCell(rec *record.Record, key string) string {
	value, _ := rec.Get(key)
	return formatCell(value)
}

// entryField reads key from a nested record entry.
func entryField(entry any, key string) string {
	nested, ok := entry.(*record.Record)
	if !ok {
		return ""
	}
	value, _ := nested.Get(key)
	return formatCell(value)
}

// entryValue is entryField, but a bare scalar entry stands for itself.
func entryValue(entry any, key string) string {
	if _, ok := entry.(*record.Record); ok {
		return entryField(entry, key)
	}
	return formatCell(entry)
}

func formatCell(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	blob, err := record.Marshal(v)
	if err != nil {
		return ""
	}
	return string(blob)
}
