package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"metaharvest/internal/record"
	"metaharvest/internal/util"
)

// GetMetadata resolves a dot-delimited field path against rec and returns
// the leaf values split on ";" with whitespace collapsed. A path segment
// that is absent, or that lands on something other than a record, yields
// ErrFieldNotFound.
func GetMetadata(field string, rec *record.Record) ([]string, error) {
	var current any = rec
	for _, segment := range strings.Split(field, ".") {
		node, ok := current.(*record.Record)
		if !ok || node == nil {
			return nil, errors.Wrapf(ErrFieldNotFound, "%s: parent of %q is not a record", field, segment)
		}
		value, ok := node.Get(segment)
		if !ok {
			return nil, errors.Wrapf(ErrFieldNotFound, "%s: missing %q", field, segment)
		}
		current = value
	}

	out := []string{}
	for _, leaf := range util.Flatten(current) {
		out = append(out, leafTokens(leaf)...)
	}
	return out, nil
}

// leafTokens splits a scalar leaf on ";" and collapses whitespace. Records
// and nulls give nothing.
func leafTokens(leaf any) []string {
	s, ok := scalarString(leaf)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if cleaned := util.CollapseSpaces(part); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int, int64, float64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
