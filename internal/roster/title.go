package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRangeRe = regexp.MustCompile(`-\s*(\d{1,2}/\d{1,2}/\d{4})\s+to\s+(\d{1,2}/\d{1,2}/\d{4})`)
	nightRe     = regexp.MustCompile(`(?i)Night\s+(One|Two|Three|Four|Five|Six|Seven|Eight|Nine|Ten|\d+)`)
)

var nightWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// InferDayTitle derives the report title from the first page's opening
// lines: line 1 carries the meet date range ("- 6/12/2025 to 10/12/2025",
// day first), line 2 the session ("Night Three"). The session date is the
// range start plus night-1 days. A missed date range leaves the date blank;
// a missed night defaults to 1. Title inference never fails.
func InferDayTitle(firstPageLines []string) string {
	var meetLine, programLine string
	if len(firstPageLines) > 0 {
		meetLine = firstPageLines[0]
	}
	if len(firstPageLines) > 1 {
		programLine = firstPageLines[1]
	}

	var startDate time.Time
	haveStart := false
	if m := dateRangeRe.FindStringSubmatch(meetLine); m != nil {
		if d, err := time.Parse("2/1/2006", m[1]); err == nil {
			startDate = d
			haveStart = true
		}
	}

	nightNo := 1
	if m := nightRe.FindStringSubmatch(programLine); m != nil {
		token := strings.ToLower(m[1])
		if n, ok := nightWords[token]; ok {
			nightNo = n
		} else if n, err := strconv.Atoi(token); err == nil {
			nightNo = n
		}
	}

	dateStr := ""
	if haveStart {
		dateStr = startDate.AddDate(0, 0, nightNo-1).Format("02/01/2006")
	}
	return fmt.Sprintf("Day %d Heats - %s", nightNo, dateStr)
}
