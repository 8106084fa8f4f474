package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const programPageOne = `NZ Open Championships - 6/12/2025 to 10/12/2025
Finals Program - Night Two
2025-12 Meet Code
Event 1  Girls 15 & Over 50 LC Meter Freestyle
Lane Name Age Team Seed Time
Final  1a  Super Final
3 Smith, Jane 14 NT
4 Chen, Amy 15 52.10
5 Hamilton (V), Nafanua SM9 15 Samoa 53.00
Final  1b  15 Year Olds
2 Nguyen, Mai 15 54.20
Alternates - Women 50 Free
1 Shumack, Heidi 16 Sopac 26.25
2 Hamilton (V), Nafanua 15 Samoa 27.74
not a roster line at all
`

const programPageTwo = `Finals Program
Event 2 Boys 200 LC Meter IM Multi-Class
Heat 1
1 Jones, Billy S14 14 Tigers 2:31.00
6 Doe, John 15 NT
`

func TestParsePagesEndToEnd(t *testing.T) {
	doc, err := ParsePages([]string{programPageOne, programPageTwo}, 0)
	require.NoError(t, err)

	assert.Equal(t, "Day 2 Heats - 07/12/2025", doc.Title)
	require.Len(t, doc.Events, 2)
	assert.Equal(t, 3, doc.HeatCount())

	ev1 := doc.Events[0]
	assert.Equal(t, 1, ev1.Number)
	assert.Equal(t, "W", ev1.Gender)
	assert.Equal(t, "50FS", ev1.EventCode)
	assert.Equal(t, "15 & Over", ev1.AgeGroup)
	require.Len(t, ev1.Heats, 2)

	heatA := ev1.Heats[0]
	assert.Equal(t, "1a Super Final", heatA.Label)
	assert.Equal(t, "SMITH, JANE", heatA.Lanes[3])
	assert.Equal(t, "CHEN, AMY", heatA.Lanes[4])
	assert.Equal(t, "HAMILTON, NAFANUA", heatA.Lanes[5])

	heatB := ev1.Heats[1]
	assert.Equal(t, "1b", heatB.Label)
	assert.Equal(t, "NGUYEN, MAI", heatB.Lanes[2])

	ev2 := doc.Events[1]
	assert.Equal(t, 2, ev2.Number)
	assert.Equal(t, "M", ev2.Gender)
	assert.Equal(t, "200IM MC", ev2.EventCode)
	require.Len(t, ev2.Heats, 1)
	assert.Equal(t, "1", ev2.Heats[0].Label)
	assert.Equal(t, "JONES, BILLY", ev2.Heats[0].Lanes[1])
	assert.Equal(t, "DOE, JOHN", ev2.Heats[0].Lanes[6])

	require.Len(t, doc.Alternates, 2)
	alt := doc.Alternates[1]
	assert.Equal(t, 1, alt.EventNo)
	assert.Equal(t, "W", alt.Gender)
	assert.Equal(t, "50FS", alt.EventCode)
	assert.Equal(t, "15 & Over", alt.AgeGroup)
	// Alternates attach to the most recently opened heat of their event.
	assert.Equal(t, "1b", alt.HeatLabel)
	assert.Equal(t, "Alternates - Women 50 Free", alt.AltGroup)
	assert.Equal(t, 2, alt.Rank)
	assert.Equal(t, "HAMILTON, NAFANUA", alt.Name)
	assert.Equal(t, "SAMOA", alt.Team)
	assert.Equal(t, "27.74", alt.Prelim)
}

func TestParsePagesEmptyInput(t *testing.T) {
	_, err := ParsePages(nil, 0)
	assert.ErrorIs(t, err, ErrNoText)

	_, err = ParsePages([]string{"", "\n  \n"}, 0)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestAlternateBeforeAnyHeatIsDropped(t *testing.T) {
	lines := []string{
		"Event 1 Girls 50 LC Meter Freestyle",
		"Alternates",
		"1 Shumack, Heidi 16 Sopac 26.25",
		"Heat 1",
		"3 Smith, Jane 14 NT",
	}
	doc, err := NewParser(0).ParseLines(lines)
	require.NoError(t, err)
	assert.Empty(t, doc.Alternates)
	require.Len(t, doc.Events, 1)
	require.Len(t, doc.Events[0].Heats, 1)
	assert.Equal(t, "SMITH, JANE", doc.Events[0].Heats[0].Lanes[3])
}

func TestPreEventLinesDiscarded(t *testing.T) {
	lines := []string{
		"Some venue header",
		"3 Smith, Jane 14 NT",
		"Heat 1",
		"Event 1 Girls 50 LC Meter Freestyle",
		"Heat 1",
		"3 Smith, Jane 14 NT",
	}
	doc, err := NewParser(0).ParseLines(lines)
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	require.Len(t, doc.Events[0].Heats, 1)
}

func TestHeatCap(t *testing.T) {
	lines := []string{
		"Event 1 Girls 50 LC Meter Freestyle",
		"Heat 1",
		"1 Smith, Jane 14 NT",
		"Heat 2",
		"2 Chen, Amy 15 NT",
		"Heat 3",
		"3 Nguyen, Mai 15 NT",
		"Event 2 Boys 100 LC Meter Backstroke",
		"Heat 1",
		"4 Doe, John 15 NT",
	}
	doc, err := NewParser(2).ParseLines(lines)
	require.NoError(t, err)
	require.Len(t, doc.Events, 2)

	ev1 := doc.Events[0]
	require.Len(t, ev1.Heats, 2, "third heat exceeds the cap")
	// The capped heat's lane rows vanish with it.
	for _, h := range ev1.Heats {
		assert.NotContains(t, h.Lanes, 3)
	}
	// The cap is per event; the next event starts fresh.
	require.Len(t, doc.Events[1].Heats, 1)
	assert.Equal(t, "DOE, JOHN", doc.Events[1].Heats[0].Lanes[4])
}

func TestDuplicateLaneLastWriteWins(t *testing.T) {
	lines := []string{
		"Event 1 Girls 50 LC Meter Freestyle",
		"Heat 1",
		"4 Smith, Jane 14 NT",
		"4 Chen, Amy 15 NT",
	}
	doc, err := NewParser(0).ParseLines(lines)
	require.NoError(t, err)
	heat := doc.Events[0].Heats[0]
	require.Len(t, heat.Lanes, 1)
	assert.Equal(t, "CHEN, AMY", heat.Lanes[4])
}

func TestHeatWithNoLaneRowsIsRetained(t *testing.T) {
	lines := []string{
		"Event 1 Girls 50 LC Meter Freestyle",
		"Heat 1",
		"Heat 2",
		"3 Smith, Jane 14 NT",
	}
	doc, err := NewParser(0).ParseLines(lines)
	require.NoError(t, err)
	require.Len(t, doc.Events[0].Heats, 2)
	assert.Empty(t, doc.Events[0].Heats[0].Lanes)
	assert.Equal(t, "SMITH, JANE", doc.Events[0].Heats[1].Lanes[3])
}

func TestEventHeaderResetsAlternatesMode(t *testing.T) {
	lines := []string{
		"Event 1 Girls 50 LC Meter Freestyle",
		"Heat 1",
		"3 Smith, Jane 14 NT",
		"Alternates",
		"1 Shumack, Heidi 16 Sopac 26.25",
		"Event 2 Boys 100 LC Meter Backstroke",
		"Heat 1",
		"2 Doe, John 15 NT",
	}
	doc, err := NewParser(0).ParseLines(lines)
	require.NoError(t, err)
	require.Len(t, doc.Alternates, 1)
	assert.Equal(t, 1, doc.Alternates[0].EventNo)
	// Lane rows of event 2 parse as lanes again, not as alternates.
	assert.Equal(t, "DOE, JOHN", doc.Events[1].Heats[0].Lanes[2])
}

func TestUnrecognizedLinesNeverFail(t *testing.T) {
	lines := []string{
		"Event 1 Girls 50 LC Meter Freestyle",
		"@@@ totally malformed @@@",
		strings.Repeat("x", 500),
		"Heat 1",
		"3 Smith, Jane 14 NT",
	}
	doc, err := NewParser(0).ParseLines(lines)
	require.NoError(t, err)
	assert.Equal(t, "SMITH, JANE", doc.Events[0].Heats[0].Lanes[3])
}
