// Package render flattens a parsed roster document into the fixed tabular
// layouts the analysts work from, and writes them as XLSX or delimited text.
package render

import (
	"fmt"
	"strconv"

	"github.com/lanezero/heatsheet/internal/roster"
)

const laneCount = 10

const analystCount = 4

// HeatsHeaders is the column order of the primary table: one row per heat,
// event-identifying columns first so consecutive heat rows of one event can
// be visually merged.
var HeatsHeaders = heatsHeaders()

// AlternatesHeaders is the column order of the alternates table.
var AlternatesHeaders = []string{
	"#", "Gender", "Event", "Age Group", "Heat",
	"Alt Group", "Alt Rank", "Name", "Team", "Prelims",
}

func heatsHeaders() []string {
	headers := []string{"#", "Gender", "Event", "Age Group", "Heat", "Cal"}
	for i := 0; i < laneCount; i++ {
		headers = append(headers, fmt.Sprintf("Lane %d", i))
	}
	for i := 1; i <= analystCount; i++ {
		headers = append(headers, fmt.Sprintf("Analyst %d", i))
	}
	return headers
}

// EventRows flattens events into heat rows in document order. The Cal and
// Analyst columns are intentionally blank; they are filled in by hand.
func EventRows(events []*roster.Event) [][]string {
	var rows [][]string
	for _, ev := range events {
		for _, heat := range ev.Heats {
			row := []string{
				strconv.Itoa(ev.Number),
				ev.Gender,
				ev.EventCode,
				ev.AgeGroup,
				heat.Label,
				"", // Cal
			}
			for lane := 0; lane < laneCount; lane++ {
				row = append(row, heat.Lanes[lane])
			}
			for i := 0; i < analystCount; i++ {
				row = append(row, "")
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// AlternateRows flattens alternate entries in document order.
func AlternateRows(alternates []roster.AlternateEntry) [][]string {
	var rows [][]string
	for _, a := range alternates {
		rows = append(rows, []string{
			strconv.Itoa(a.EventNo),
			a.Gender,
			a.EventCode,
			a.AgeGroup,
			a.HeatLabel,
			a.AltGroup,
			strconv.Itoa(a.Rank),
			a.Name,
			a.Team,
			a.Prelim,
		})
	}
	return rows
}
