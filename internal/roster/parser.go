package roster

import (
	"errors"
	"strings"
)

// ErrNoText reports a document whose text extraction produced no usable
// lines. It is the only failure the parser surfaces; everything else
// degrades to partial output.
var ErrNoText = errors.New("no text lines to parse")

// Parser folds a line sequence into a Document. Each parse call owns its own
// Parser value, so concurrent parses of different documents need no
// coordination.
type Parser struct {
	// MaxHeatsPerEvent caps the heats retained per event; 0 means
	// unlimited. Lane rows after the cap are dropped until the next heat
	// or event header.
	MaxHeatsPerEvent int

	currentEvent    *Event
	currentHeat     *Heat
	inAlternates    bool
	currentAltGroup string

	events     []*Event
	alternates []AlternateEntry
}

// NewParser creates a parser with the given per-event heat cap (0 =
// unlimited).
func NewParser(maxHeatsPerEvent int) *Parser {
	return &Parser{MaxHeatsPerEvent: maxHeatsPerEvent}
}

// ParsePages parses one text blob per page, splitting each into lines. Page
// order and line order within a page are preserved. The title is inferred
// from the first page's opening lines.
func (p *Parser) ParsePages(pages []string) (*Document, error) {
	var lines []string
	for _, page := range pages {
		for _, raw := range strings.Split(page, "\n") {
			if line := strings.TrimSpace(raw); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return nil, ErrNoText
	}

	var firstPageLines []string
	if len(pages) > 0 {
		for _, raw := range strings.Split(pages[0], "\n") {
			firstPageLines = append(firstPageLines, strings.TrimSpace(raw))
		}
	}

	doc, err := p.ParseLines(lines)
	if err != nil {
		return nil, err
	}
	doc.Title = InferDayTitle(firstPageLines)
	return doc, nil
}

// ParseLines parses an already-split sequence of non-empty trimmed lines.
func (p *Parser) ParseLines(lines []string) (*Document, error) {
	if len(lines) == 0 {
		return nil, ErrNoText
	}

	for _, line := range lines {
		p.consume(line)
	}
	if p.currentEvent != nil {
		p.events = append(p.events, p.currentEvent)
		p.currentEvent = nil
		p.currentHeat = nil
	}

	return &Document{
		Events:     p.events,
		Alternates: p.alternates,
	}, nil
}

// consume advances the state machine by one line. Classifier priority is
// fixed: event header first (unconditionally starts a fresh event context),
// then boilerplate, alternates heading, heat header, alternate row (while in
// an alternates block), lane row. Anything else is dropped.
func (p *Parser) consume(line string) {
	if hdr, ok := ParseEventHeader(line); ok {
		if p.currentEvent != nil {
			p.events = append(p.events, p.currentEvent)
		}
		p.currentEvent = &Event{
			Number:    hdr.Number,
			Gender:    hdr.Gender,
			EventCode: hdr.EventCode,
			AgeGroup:  hdr.AgeGroup,
		}
		p.currentHeat = nil
		p.inAlternates = false
		p.currentAltGroup = ""
		return
	}

	// Pre-event boilerplate: nothing to attach lines to yet.
	if p.currentEvent == nil {
		return
	}

	if isBoilerplate(line) {
		return
	}

	if isAlternatesHeading(line) {
		p.inAlternates = true
		p.currentAltGroup = multiSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
		return
	}

	if label, ok := ParseHeatHeader(line); ok {
		p.inAlternates = false
		p.currentAltGroup = ""
		if p.MaxHeatsPerEvent > 0 && len(p.currentEvent.Heats) >= p.MaxHeatsPerEvent {
			// Cap reached: drop lane rows until the next heat or event.
			p.currentHeat = nil
			return
		}
		p.currentHeat = NewHeat(line, label)
		p.currentEvent.Heats = append(p.currentEvent.Heats, p.currentHeat)
		return
	}

	if p.inAlternates {
		row, ok := ParseAlternateLine(line)
		if !ok || len(p.currentEvent.Heats) == 0 {
			// Alternates before any heat exists have no heat to belong
			// to; dropped by policy.
			return
		}
		lastHeat := p.currentEvent.Heats[len(p.currentEvent.Heats)-1]
		p.alternates = append(p.alternates, AlternateEntry{
			EventNo:   p.currentEvent.Number,
			Gender:    p.currentEvent.Gender,
			EventCode: p.currentEvent.EventCode,
			AgeGroup:  p.currentEvent.AgeGroup,
			HeatLabel: lastHeat.Label,
			AltGroup:  p.currentAltGroup,
			Rank:      row.Rank,
			Name:      row.Name,
			Team:      row.Team,
			Prelim:    row.Prelim,
		})
		return
	}

	if lane, name, ok := ParseLaneLine(line); ok && p.currentHeat != nil {
		// Last write wins on duplicate lane numbers.
		p.currentHeat.Lanes[lane] = name
	}
}

// ParsePages is the package-level convenience entry point: a fresh parser
// per call.
func ParsePages(pages []string, maxHeatsPerEvent int) (*Document, error) {
	return NewParser(maxHeatsPerEvent).ParsePages(pages)
}
