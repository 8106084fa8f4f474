package roster

import (
	"regexp"
	"strings"
)

var (
	visitorMarkerRe = regexp.MustCompile(`(?i)\(\s*V\s*\)`)
	trailingMCRe    = regexp.MustCompile(`(?i)\s+S[A-Z]{0,2}\d{1,2}\s*$`)
	commaSpaceRe    = regexp.MustCompile(`,\s+`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
	multiClassRe    = regexp.MustCompile(`(?i)\bmulti\s*-?\s*class\b`)
)

// NormalizeName canonicalizes a swimmer name: the "(V)" visitor marker and a
// trailing multi-class code (SM9, SB9, S14, ...) are removed, comma spacing
// is normalized to ", ", runs of whitespace collapse, and the result is
// uppercased.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = visitorMarkerRe.ReplaceAllString(name, "")
	name = trailingMCRe.ReplaceAllString(name, "")

	name = strings.ReplaceAll(name, " ,", ",")
	name = strings.ReplaceAll(name, ",", ", ")
	name = commaSpaceRe.ReplaceAllString(name, ", ")
	name = multiSpaceRe.ReplaceAllString(name, " ")

	return strings.ToUpper(strings.TrimSpace(name))
}

// strokeCode maps a stroke phrase to its shorthand. Matching is by substring
// so wording variants ("Freestyle", "Free Relay") still resolve. Unknown
// strokes fall back to the phrase with whitespace squeezed out, uppercased.
func strokeCode(stroke string) string {
	s := strings.ToLower(strings.TrimSpace(stroke))
	switch {
	case strings.Contains(s, "free"):
		return "FS"
	case strings.Contains(s, "back"):
		return "BK"
	case strings.Contains(s, "breast"):
		return "BR"
	case strings.Contains(s, "butter"), strings.Contains(s, "fly"):
		return "FLY"
	case strings.Contains(s, "medley"), s == "im":
		return "IM"
	}
	return strings.ToUpper(multiSpaceRe.ReplaceAllString(stroke, ""))
}

// genderCode maps a program gender word to W/M/X. Anything else yields the
// empty string rather than a guessed value.
func genderCode(word string) string {
	switch strings.ToLower(word) {
	case "girls", "women":
		return GenderWomen
	case "boys", "men":
		return GenderMen
	case "mixed":
		return GenderMixed
	}
	return ""
}

// Age-descriptor phrases that some programs append to heat labels. Range
// patterns must run before single-age patterns: "12-13 Years Olds" would
// otherwise match the "13 Years Olds" tail first and leave a stray "12".
var agePhraseRes = []*regexp.Regexp{
	// 12-13 Years & Old / 12-16 Years Olds / 12 - 13 Years Old
	regexp.MustCompile(`(?i)\b\d{1,2}\s*-\s*\d{1,2}\s*Years?\s*(?:&|and)?\s*Olds?\b`),
	// 12-16 Years (no Old/Over word)
	regexp.MustCompile(`(?i)\b\d{1,2}\s*-\s*\d{1,2}\s*Years?\b`),
	// 17 Years & Over / 17 Years and Under
	regexp.MustCompile(`(?i)\b\d{1,2}\s*Years?\s*(?:&|and)\s*(?:Over|Under)\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s*(?:&|and)\s*(?:Over|Under)\b`),
	// 15 Year Olds / 15 Years Old
	regexp.MustCompile(`(?i)\b\d{1,2}\s*Years?\s*Olds?\b`),
	// "Years & Over" with the number token lost upstream
	regexp.MustCompile(`(?i)\bYears?\s*(?:&|and)\s*(?:Over|Under)\b`),
}

var bareTrailingAgeRe = regexp.MustCompile(`^(\S+)\s+\d{1,2}$`)

// CleanHeatLabel strips age-descriptor phrases from a heat label, keeping
// the heat identifier and any non-age descriptor ("Super Final"). Cleaning
// is idempotent: an already-clean label passes through unchanged.
//
//	"1b 15 Year Olds"      -> "1b"
//	"2a 12-13 Years & Old" -> "2a"
//	"5a 12"                -> "5a"
//	"1a Super Final"       -> "1a Super Final"
func CleanHeatLabel(label string) string {
	s := multiSpaceRe.ReplaceAllString(strings.TrimSpace(label), " ")

	// Unicode dashes appear in some programs; fold them into '-'.
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")

	for _, re := range agePhraseRes {
		s = re.ReplaceAllString(s, "")
	}

	s = strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))

	// Trailing separators must go before bare-age removal can match.
	s = strings.TrimSpace(strings.TrimRight(s, "- "))

	// "3a 12" is a heat id followed by a leftover bare age.
	s = bareTrailingAgeRe.ReplaceAllString(s, "$1")

	return strings.TrimSpace(s)
}
