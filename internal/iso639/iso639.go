// Package iso639 resolves language names and ISO 639 codes against an
// embedded copy of the full ISO 639-3 code table.
package iso639

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

//go:embed iso639.tsv
var tableTSV []byte

type Kind int

const (
	KindName Kind = iota
	KindPart3
	KindPart2B
	KindPart2T
	KindPart1
)

// LookupOrder is the order in which a free-text token is tried.
var LookupOrder = []Kind{KindName, KindPart3, KindPart2B, KindPart2T, KindPart1}

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindPart3:
		return "part3"
	case KindPart2B:
		return "part2b"
	case KindPart2T:
		return "part2t"
	case KindPart1:
		return "part1"
	default:
		return "unknown"
	}
}

type Language struct {
	Part3  string
	Part2B string
	Part2T string
	Part1  string
	Name   string
}

// Key returns the value l is indexed under for kind. Empty means the
// language has no code of that kind.
func (l Language) Key(kind Kind) string {
	switch kind {
	case KindName:
		return l.Name
	case KindPart3:
		return l.Part3
	case KindPart2B:
		return l.Part2B
	case KindPart2T:
		return l.Part2T
	case KindPart1:
		return l.Part1
	default:
		return ""
	}
}

// Table answers exact lookups of one kind.
type Table interface {
	Lookup(kind Kind, value string) (Language, bool)
}

var loadEmbedded = sync.OnceValues(func() ([]Language, error) {
	return Parse(bytes.NewReader(tableTSV))
})

// Languages returns the embedded table rows.
func Languages() ([]Language, error) {
	langs, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	out := make([]Language, len(langs))
	copy(out, langs)
	return out, nil
}

// Parse reads a tab separated table with a header row and the columns
// part3, part2b, part2t, part1, name.
func Parse(r io.Reader) ([]Language, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = 5

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read iso639 header")
	}
	if strings.TrimSpace(header[0]) != "part3" {
		return nil, errors.Errorf("unexpected iso639 header: %v", header)
	}

	var out []Language
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read iso639 row")
		}
		lang := Language{
			Part3:  strings.TrimSpace(row[0]),
			Part2B: strings.TrimSpace(row[1]),
			Part2T: strings.TrimSpace(row[2]),
			Part1:  strings.TrimSpace(row[3]),
			Name:   strings.TrimSpace(row[4]),
		}
		if lang.Part3 == "" || lang.Name == "" {
			return nil, errors.Errorf("iso639 row missing part3 or name: %v", row)
		}
		out = append(out, lang)
	}
	return out, nil
}
