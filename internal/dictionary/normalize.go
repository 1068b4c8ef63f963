package dictionary

// Normalize merges provider entries that share a headword into one Entry per
// headword, in first-seen order. Phonetic variants are deduplicated on the
// (text, audio) pair, meanings are merged by part of speech and source URLs
// are deduplicated by exact string. It never fails.
func Normalize(entries []RawEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	index := make(map[string]int, len(entries))

	for _, raw := range entries {
		i, ok := index[raw.Word]
		if !ok {
			out = append(out, Entry{
				Word:       raw.Word,
				Phonetic:   nonEmpty(raw.Phonetic),
				Phonetics:  []Phonetic{},
				Meanings:   []Meaning{},
				License:    copyLicense(raw.License),
				SourceURLs: []string{},
			})
			i = len(out) - 1
			index[raw.Word] = i
		}
		merge(&out[i], raw)
	}
	return out
}

func merge(e *Entry, raw RawEntry) {
	for _, p := range raw.Phonetics {
		if nonEmpty(p.Text) == nil && nonEmpty(p.Audio) == nil {
			continue
		}
		key := phoneticKey(p.Text, p.Audio)
		if hasPhonetic(e.Phonetics, key) {
			continue
		}
		e.Phonetics = append(e.Phonetics, Phonetic{
			Text:      p.Text,
			Audio:     p.Audio,
			SourceURL: p.SourceURL,
			License:   copyLicense(p.License),
		})
	}

	for _, m := range raw.Meanings {
		defs := convertDefinitions(m.Definitions)
		if existing := findMeaning(e.Meanings, m.PartOfSpeech); existing != nil {
			existing.Definitions = append(existing.Definitions, defs...)
			existing.Synonyms = append(existing.Synonyms, m.Synonyms...)
			existing.Antonyms = append(existing.Antonyms, m.Antonyms...)
			continue
		}
		e.Meanings = append(e.Meanings, Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  defs,
			Synonyms:     appendStrings(nil, m.Synonyms),
			Antonyms:     appendStrings(nil, m.Antonyms),
		})
	}

	for _, u := range raw.SourceURLs {
		if !containsString(e.SourceURLs, u) {
			e.SourceURLs = append(e.SourceURLs, u)
		}
	}

	if e.Phonetic == nil {
		e.Phonetic = nonEmpty(raw.Phonetic)
	}
	if e.License == nil {
		e.License = copyLicense(raw.License)
	}
}

func convertDefinitions(in []RawDefinition) []Definition {
	out := make([]Definition, 0, len(in))
	for _, d := range in {
		out = append(out, Definition{
			Definition: d.Definition,
			Example:    d.Example,
			Synonyms:   appendStrings(nil, d.Synonyms),
			Antonyms:   appendStrings(nil, d.Antonyms),
		})
	}
	return out
}

func findMeaning(meanings []Meaning, partOfSpeech string) *Meaning {
	for i := range meanings {
		if meanings[i].PartOfSpeech == partOfSpeech {
			return &meanings[i]
		}
	}
	return nil
}

func phoneticKey(text, audio *string) string {
	return deref(text) + "__" + deref(audio)
}

func hasPhonetic(list []Phonetic, key string) bool {
	for _, p := range list {
		if phoneticKey(p.Text, p.Audio) == key {
			return true
		}
	}
	return false
}

// appendStrings copies src onto dst and never returns nil.
func appendStrings(dst, src []string) []string {
	if dst == nil {
		dst = make([]string, 0, len(src))
	}
	return append(dst, src...)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyLicense(l *License) *License {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
