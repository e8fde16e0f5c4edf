package internal

// LanguageEntry is a resolved language: ISO 639-3 code plus reference name.
type LanguageEntry struct {
	ISO6393 string `json:"iso639_3"`
	Name    string `json:"name"`
}

// ExportRow is one flattened CSV row. Columns keep first-set order.
type ExportRow struct {
	columns []string
	values  map[string]string
}

func NewExportRow() *ExportRow {
	return &ExportRow{values: map[string]string{}}
}

// Set assigns a column. Re-setting an existing column keeps its position.
func (r *ExportRow) Set(column, value string) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

func (r *ExportRow) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

func (r *ExportRow) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}
