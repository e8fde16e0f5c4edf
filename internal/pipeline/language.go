package pipeline

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"metaharvest/internal"
	"metaharvest/internal/iso639"
	"metaharvest/internal/util"
)

// languageDelimiters are checked in order; only the first one present in an
// entry is used to split it.
var languageDelimiters = []string{"/", ",", ";"}

type LanguageParser struct {
	table iso639.Table
}

func NewLanguageParser(table iso639.Table) *LanguageParser {
	return &LanguageParser{table: table}
}

// Parse resolves free-text language names and legacy codes. Tokens that match
// nothing are dropped.
func (p *LanguageParser) Parse(languages []string) []internal.LanguageEntry {
	return p.parse(languages, map[string]struct{}{})
}

// parse skips tokens already in seen and records the new ones there.
func (p *LanguageParser) parse(languages []string, seen map[string]struct{}) []internal.LanguageEntry {
	tokens := splitLanguageTokens(languages, seen)
	out := make([]internal.LanguageEntry, 0, len(tokens))
	for _, token := range tokens {
		lang, ok := p.resolve(token)
		if !ok {
			continue
		}
		out = append(out, internal.LanguageEntry{ISO6393: lang.Part3, Name: lang.Name})
	}
	return out
}

func (p *LanguageParser) resolve(token string) (iso639.Language, bool) {
	for _, kind := range iso639.LookupOrder {
		value := strings.ToLower(token)
		if kind == iso639.KindName {
			value = util.Capitalize(token)
		}
		if lang, ok := p.table.Lookup(kind, value); ok {
			return lang, true
		}
	}
	return iso639.Language{}, false
}

func splitLanguageTokens(languages []string, seen map[string]struct{}) []string {
	out := make([]string, 0, len(languages))
	for _, entry := range languages {
		parts := []string{entry}
		for _, d := range languageDelimiters {
			if strings.Contains(entry, d) {
				parts = strings.Split(entry, d)
				break
			}
		}
		for _, part := range parts {
			token := norm.NFC.String(strings.TrimSpace(part))
			if token == "" {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out
}
