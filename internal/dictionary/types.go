package dictionary

// License is the licensing block attached to entries and phonetics.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Raw* types mirror the upstream provider payload. Nullable text is kept as
// *string so that an absent field and an empty one can both be represented.

type RawPhonetic struct {
	Text      *string  `json:"text"`
	Audio     *string  `json:"audio"`
	SourceURL *string  `json:"sourceUrl,omitempty"`
	License   *License `json:"license,omitempty"`
}

type RawDefinition struct {
	Definition string   `json:"definition"`
	Example    *string  `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

type RawMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []RawDefinition `json:"definitions"`
	Synonyms     []string        `json:"synonyms"`
	Antonyms     []string        `json:"antonyms"`
}

type RawEntry struct {
	Word       string        `json:"word"`
	Phonetic   *string       `json:"phonetic,omitempty"`
	Phonetics  []RawPhonetic `json:"phonetics"`
	Meanings   []RawMeaning  `json:"meanings"`
	License    *License      `json:"license,omitempty"`
	SourceURLs []string      `json:"sourceUrls"`
}

// Normalized shapes. Slices are always non-nil so the JSON form carries []
// rather than null, which keeps cached and fresh payloads identical.

type Phonetic struct {
	Text      *string  `json:"text"`
	Audio     *string  `json:"audio"`
	SourceURL *string  `json:"sourceUrl,omitempty"`
	License   *License `json:"license,omitempty"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Example    *string  `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms"`
}

type Entry struct {
	Word       string     `json:"word"`
	Phonetic   *string    `json:"phonetic"`
	Phonetics  []Phonetic `json:"phonetics"`
	Meanings   []Meaning  `json:"meanings"`
	License    *License   `json:"license,omitempty"`
	SourceURLs []string   `json:"sourceUrls"`
}
