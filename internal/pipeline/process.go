package pipeline

import (
	"go.uber.org/zap"

	"metaharvest/internal/iso639"
	"metaharvest/internal/logger"
	"metaharvest/internal/record"
	"metaharvest/internal/util"
)

// Normalizer applies the per-record cleanup a harvest run needs before export.
type Normalizer struct {
	languages *LanguageParser
	log       *zap.Logger
}

func NewNormalizer(table iso639.Table, log *zap.Logger) *Normalizer {
	return &Normalizer{languages: NewLanguageParser(table), log: logger.OrNop(log)}
}

type NormalizeResult struct {
	Records     int
	Thumbnails  int
	BadDates    int
	NoLanguages int
}

func (n *Normalizer) NormalizeRecords(records []*record.Record) NormalizeResult {
	var res NormalizeResult
	for _, rec := range records {
		n.normalize(rec, &res)
		res.Records++
	}
	n.log.Info("records normalized",
		zap.Int("records", res.Records),
		zap.Int("thumbnails", res.Thumbnails),
		zap.Int("badDates", res.BadDates),
		zap.Int("noLanguages", res.NoLanguages),
	)
	return res
}

// NormalizeRecord splits the multi-valued sourceResource fields, turns
// subjects and languages into entry records, reformats parseable dates and
// fills a missing object with a CONTENTdm thumbnail. Entries that are
// already records stay where they are in each list.
func (n *Normalizer) NormalizeRecord(rec *record.Record) *record.Record {
	n.normalize(rec, &NormalizeResult{})
	return rec
}

func (n *Normalizer) normalize(rec *record.Record, res *NormalizeResult) {
	if raw, ok := rec.Get("sourceResource"); ok {
		if source, ok := raw.(*record.Record); ok {
			SplitValues(source)
			n.normalizeSubjects(source)
			n.normalizeLanguages(source, res)
			n.normalizeDates(source, res)
		}
	}

	if _, ok := rec.Get("object"); ok {
		return
	}
	shownAt, ok := rec.Get("isShownAt")
	if !ok {
		return
	}
	link, ok := shownAt.(string)
	if !ok {
		return
	}
	thumb, err := GenerateCDMThumbnail(n.log, link)
	if err != nil {
		return
	}
	rec.Set("object", thumb)
	res.Thumbnails++
}

func (n *Normalizer) normalizeSubjects(source *record.Record) {
	rebuildField(source, "subject", func(tokens []string) []any {
		out := make([]any, 0, len(tokens))
		for _, token := range tokens {
			subject := record.New()
			subject.Set("name", token)
			out = append(out, subject)
		}
		return out
	})
}

func (n *Normalizer) normalizeLanguages(source *record.Record, res *NormalizeResult) {
	seen := map[string]struct{}{}
	var values []string
	resolved := 0
	rebuildField(source, "language", func(tokens []string) []any {
		values = append(values, tokens...)
		entries := n.languages.parse(tokens, seen)
		resolved += len(entries)
		out := make([]any, 0, len(entries))
		for _, entry := range entries {
			lang := record.New()
			lang.Set("iso639_3", entry.ISO6393)
			lang.Set("name", entry.Name)
			out = append(out, lang)
		}
		return out
	})
	if len(values) > 0 && resolved == 0 {
		res.NoLanguages++
		n.log.Debug("no language resolved", zap.Strings("values", values))
	}
}

func (n *Normalizer) normalizeDates(source *record.Record, res *NormalizeResult) {
	rebuildField(source, "date", func(tokens []string) []any {
		out := make([]any, 0, len(tokens))
		for _, token := range tokens {
			formatted, err := ParseDate(n.log, token)
			if err != nil {
				res.BadDates++
				out = append(out, token)
				continue
			}
			out = append(out, formatted)
		}
		return out
	})
}

// rebuildField replaces field with its leaves in source order. Record
// entries are kept as they are; scalar leaves are cleaned into tokens and
// handed to convert.
func rebuildField(source *record.Record, field string, convert func(tokens []string) []any) {
	value, ok := source.Get(field)
	if !ok {
		return
	}
	out := []any{}
	for _, leaf := range util.Flatten(value) {
		if nested, ok := leaf.(*record.Record); ok {
			out = append(out, nested)
			continue
		}
		if tokens := leafTokens(leaf); len(tokens) > 0 {
			out = append(out, convert(tokens)...)
		}
	}
	source.Set(field, out)
}
