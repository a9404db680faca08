package blame

import "encoding/json"

// Record is the annotation for one line. It is either a full record carrying
// the revision's log text and highlight colour, or an alias deferring to the
// line that holds the full record.
type Record struct {
	Alias int // owner line of an alias record; zero for full records
	Start int // first line of the block; zero on aliases that do not begin a block
	Text  string
	Color string
}

// IsAlias reports whether r defers to another line.
func (r Record) IsAlias() bool {
	return r.Alias != 0
}

type fullJSON struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	Color string `json:"color"`
}

type aliasJSON struct {
	Alias int `json:"alias"`
	Start int `json:"start,omitempty"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.IsAlias() {
		return json.Marshal(aliasJSON{Alias: r.Alias, Start: r.Start})
	}
	return json.Marshal(fullJSON{Text: r.Text, Start: r.Start, Color: r.Color})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Alias int    `json:"alias"`
		Start int    `json:"start"`
		Text  string `json:"text"`
		Color string `json:"color"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{Alias: raw.Alias, Start: raw.Start, Text: raw.Text, Color: raw.Color}
	return nil
}

// Annotations maps line numbers to their records. Lines that are uncommitted,
// or whose revision is too old to highlight, have no entry.
// It encodes as a JSON object keyed by decimal line number.
type Annotations map[int]Record
