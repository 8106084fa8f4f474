// Package roster turns the extracted text of a swim-meet program PDF into a
// structured race roster: events, heats with lane assignments, and the
// alternate lists that trail them.
package roster

// Gender codes used throughout the roster model. Source wording that maps to
// none of these leaves the field empty.
const (
	GenderWomen = "W"
	GenderMen   = "M"
	GenderMixed = "X"
)

// Heat is one heat or final within an event. Lanes maps lane number (0-9) to
// the normalized swimmer name; absent lanes are simply missing keys.
type Heat struct {
	RawLabel string         `json:"raw_label"`
	Label    string         `json:"label"`
	Lanes    map[int]string `json:"lanes"`
}

// NewHeat creates a heat with an empty lane map.
func NewHeat(rawLabel, label string) *Heat {
	return &Heat{
		RawLabel: rawLabel,
		Label:    label,
		Lanes:    make(map[int]string),
	}
}

// Event is one race: a numbered, gendered event holding its heats in program
// order. EventCode is the shorthand distance+stroke token (e.g. "50FS",
// "200IM", "100FLY MC").
type Event struct {
	Number    int     `json:"number"`
	Gender    string  `json:"gender"`
	EventCode string  `json:"event_code"`
	AgeGroup  string  `json:"age_group"`
	Heats     []*Heat `json:"heats"`
}

// AlternateEntry is one row of an alternates block. Event-identifying fields
// are copied from the owning event at the time the row is parsed; HeatLabel
// is the label of the event's most recently opened heat.
type AlternateEntry struct {
	EventNo   int    `json:"event_no"`
	Gender    string `json:"gender"`
	EventCode string `json:"event_code"`
	AgeGroup  string `json:"age_group"`
	HeatLabel string `json:"heat_label"`
	AltGroup  string `json:"alt_group"`
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Team      string `json:"team"`
	Prelim    string `json:"prelim"`
}

// Document is the parse result consumed by all renderers.
type Document struct {
	Title      string           `json:"title"`
	Events     []*Event         `json:"events"`
	Alternates []AlternateEntry `json:"alternates"`
}

// HeatCount returns the total number of heats across all events, which is
// also the number of rows the primary output table will hold.
func (d *Document) HeatCount() int {
	n := 0
	for _, ev := range d.Events {
		n += len(ev.Heats)
	}
	return n
}
