package pipeline

import (
	"metaharvest/internal/record"
	"metaharvest/internal/util"
)

// SplitFields are the only fields whose values get re-split on ";".
var SplitFields = []string{"subject", "date", "language"}

// SplitValues re-splits the SplitFields of rec in place. String values are
// split on ";" and trimmed, with empty tokens and nulls dropped; nested
// lists are flattened. Other leaves are kept as they are.
func SplitValues(rec *record.Record) *record.Record {
	for _, field := range SplitFields {
		value, ok := rec.Get(field)
		if !ok {
			continue
		}
		out := []any{}
		for _, leaf := range util.Flatten(value) {
			if leaf == nil {
				continue
			}
			s, ok := leaf.(string)
			if !ok {
				out = append(out, leaf)
				continue
			}
			for _, token := range util.SplitSemicolons(s) {
				out = append(out, token)
			}
		}
		rec.Set(field, out)
	}
	return rec
}
