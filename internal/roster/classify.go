package roster

import (
	"regexp"
	"strconv"
	"strings"
)

// Line classifiers. Each one tests a single whitespace-trimmed line against
// one pattern family and either rejects it or returns the extracted fields.
// They hold no state; ordering policy lives in the parser.

var (
	eventHeaderRe = regexp.MustCompile(`(?i)^Event\s+(\d+)\s+(Girls|Women|Boys|Men|Mixed)\s+(.+)$`)
	distStrokeRe  = regexp.MustCompile(`(?i)(\d+)\s+LC\s+Meter\s+(.+)$`)
	distMeterRe   = regexp.MustCompile(`(?i)(\d+)\s+Meter\s+(.+)$`)
	heatHeaderRe  = regexp.MustCompile(`(?i)^(Final|Heat)\s+(.+)$`)
	laneLineRe    = regexp.MustCompile(`^([0-9])\s+(.*)$`)
	rankLineRe    = regexp.MustCompile(`^(\d+)\s+(.*)$`)
	meetCodeRe    = regexp.MustCompile(`^\d{4}-\d{2}\b`)

	bareAgeRe  = regexp.MustCompile(`^\d{1,2}$`)
	sexAgeRe   = regexp.MustCompile(`(?i)^[MWX]\d{1,2}$`)
	mcTokenRe  = regexp.MustCompile(`(?i)^S[A-Z]{0,2}\d{1,2}$`)
	laneTimeRe = regexp.MustCompile(`(?i)^(NT|\d{1,2}:\d{2}\.\d{2})$`)
	prelimRe   = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\.\d{2}$|^\d{1,2}\.\d{2}$|^NT$`)
)

// EventHeader holds the fields extracted from an event-header line.
type EventHeader struct {
	Number    int
	Gender    string
	EventCode string
	AgeGroup  string
}

// ParseEventHeader recognizes lines like
//
//	Event 1  Girls 15 & Over 50 LC Meter Freestyle
//
// returning (1, "W", "50FS", "15 & Over"). The trailing "<dist> LC Meter
// <stroke>" segment is located first ("LC" optional); everything before it
// is the age group. A "Multi-Class" marker in the stroke phrase is stripped
// before stroke coding and suffixes the event code with " MC". When no
// distance/stroke segment exists at all, the whole uppercased remainder
// becomes the event code and the age group stays empty.
func ParseEventHeader(line string) (EventHeader, bool) {
	line = multiSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	m := eventHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return EventHeader{}, false
	}

	number, err := strconv.Atoi(m[1])
	if err != nil {
		return EventHeader{}, false
	}
	gender := genderCode(m[2])
	rest := strings.TrimSpace(m[3])

	loc := distStrokeRe.FindStringSubmatchIndex(rest)
	if loc == nil {
		loc = distMeterRe.FindStringSubmatchIndex(rest)
	}
	if loc == nil {
		// Worst-case degradation, not a rejection.
		return EventHeader{
			Number:    number,
			Gender:    gender,
			EventCode: strings.ToUpper(rest),
		}, true
	}

	dist := rest[loc[2]:loc[3]]
	strokeRaw := multiSpaceRe.ReplaceAllString(strings.TrimSpace(rest[loc[4]:loc[5]]), " ")

	isMultiClass := multiClassRe.MatchString(strokeRaw)
	stroke := strings.TrimSpace(multiClassRe.ReplaceAllString(strokeRaw, ""))
	stroke = multiSpaceRe.ReplaceAllString(stroke, " ")

	code := dist + strokeCode(stroke)
	if isMultiClass {
		code += " MC"
	}

	return EventHeader{
		Number:    number,
		Gender:    gender,
		EventCode: code,
		AgeGroup:  strings.TrimSpace(rest[:loc[0]]),
	}, true
}

// ParseHeatHeader recognizes heat/final header lines and returns the cleaned
// label:
//
//	"Final  1a  Super Final"  -> "1a Super Final"
//	"Final  1b  15 Year Olds" -> "1b"
//	"Heat 2"                  -> "2"
func ParseHeatHeader(line string) (string, bool) {
	line = multiSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	m := heatHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return CleanHeatLabel(strings.TrimSpace(m[2])), true
}

// ParseLaneLine recognizes lane rows: a single digit 0-9, then the swimmer
// name, then age/team/seed columns. The name is the maximal leading token
// run before the first bare age, sex+age token (W17), multi-class code
// (SM9), "NT", or mm:ss.cc time. Rows with an empty name run are rejected.
func ParseLaneLine(line string) (int, string, bool) {
	m := laneLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, "", false
	}
	lane := int(m[1][0] - '0')

	var nameTokens []string
	for _, tok := range strings.Fields(m[2]) {
		if bareAgeRe.MatchString(tok) || sexAgeRe.MatchString(tok) ||
			mcTokenRe.MatchString(tok) || laneTimeRe.MatchString(tok) {
			break
		}
		nameTokens = append(nameTokens, tok)
	}
	if len(nameTokens) == 0 {
		return 0, "", false
	}

	name := NormalizeName(strings.Join(nameTokens, " "))
	if name == "" {
		return 0, "", false
	}
	return lane, name, true
}

// AlternateRow holds the fields extracted from one alternates-list row.
type AlternateRow struct {
	Rank   int
	Name   string
	Team   string
	Prelim string
}

// ParseAlternateLine recognizes alternates rows:
//
//	1 Shumack, Heidi 16 Sopac 26.25
//	2 Hamilton (V), Nafanua 15 Samoa 27.74
//
// The name run stops at the first bare age, sex+age token, or multi-class
// code. Among the tokens after it, the first prelim-shaped token (m:ss.cc,
// ss.cc, or NT) is the prelim and the tokens before it the team; with no
// time-shaped token the last token is taken as the prelim.
func ParseAlternateLine(line string) (AlternateRow, bool) {
	line = multiSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	m := rankLineRe.FindStringSubmatch(line)
	if m == nil {
		return AlternateRow{}, false
	}
	rank, err := strconv.Atoi(m[1])
	if err != nil {
		return AlternateRow{}, false
	}

	tokens := strings.Fields(m[2])
	var nameTokens []string
	idxAge := -1
	for i, tok := range tokens {
		if bareAgeRe.MatchString(tok) || sexAgeRe.MatchString(tok) || mcTokenRe.MatchString(tok) {
			idxAge = i
			break
		}
		nameTokens = append(nameTokens, tok)
	}
	if len(nameTokens) == 0 {
		return AlternateRow{}, false
	}

	row := AlternateRow{
		Rank: rank,
		Name: NormalizeName(strings.Join(nameTokens, " ")),
	}

	if idxAge >= 0 {
		rem := tokens[idxAge+1:]
		for j, tok := range rem {
			if prelimRe.MatchString(tok) {
				row.Team = strings.TrimSpace(strings.Join(rem[:j], " "))
				row.Prelim = tok
				break
			}
		}
		if row.Prelim == "" && len(rem) > 0 {
			row.Prelim = rem[len(rem)-1]
			row.Team = strings.TrimSpace(strings.Join(rem[:len(rem)-1], " "))
		}
	}
	row.Team = strings.ToUpper(row.Team)

	return row, true
}

// isAlternatesHeading reports whether the line opens an alternates block.
func isAlternatesHeading(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), "alternates")
}

// isBoilerplate reports whether the line is program chrome to skip: repeated
// column headers, the "Finals Program" banner, or a YYYY-NN meet code.
func isBoilerplate(line string) bool {
	low := strings.ToLower(line)
	switch {
	case strings.HasPrefix(low, "lane "),
		strings.HasPrefix(low, "name "),
		strings.HasPrefix(low, "age "),
		strings.HasPrefix(low, "team "),
		strings.HasPrefix(low, "finals program"):
		return true
	}
	return meetCodeRe.MatchString(line)
}
