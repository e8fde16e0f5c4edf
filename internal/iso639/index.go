package iso639

// Index is an in-memory Table.
type Index struct {
	byKind map[Kind]map[string]Language
}

func BuildIndex(langs []Language) *Index {
	idx := &Index{byKind: map[Kind]map[string]Language{}}
	for _, kind := range LookupOrder {
		idx.byKind[kind] = map[string]Language{}
	}

	for _, lang := range langs {
		for _, kind := range LookupOrder {
			key := lang.Key(kind)
			if key == "" {
				continue
			}
			if _, exists := idx.byKind[kind][key]; exists {
				continue
			}
			idx.byKind[kind][key] = lang
		}
	}

	return idx
}

// Default indexes the embedded table.
func Default() (*Index, error) {
	langs, err := Languages()
	if err != nil {
		return nil, err
	}
	return BuildIndex(langs), nil
}

func (i *Index) Lookup(kind Kind, value string) (Language, bool) {
	lang, ok := i.byKind[kind][value]
	return lang, ok
}

func (i *Index) Len() int {
	return len(i.byKind[KindPart3])
}
