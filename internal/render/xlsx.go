package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lanezero/heatsheet/internal/roster"
)

const (
	heatsSheet      = "Heats"
	alternatesSheet = "Alternates"

	headerFill = "D9D9D9"
	borderGrey = "999999"
)

// Per-event banding colors, cycled in event order.
var pastelFills = []string{"FFF2CC", "DDEBF7", "E2F0D9"}

// WorkbookBytes renders the document as an XLSX workbook with a "Heats"
// sheet and an "Alternates" sheet.
func WorkbookBytes(doc *roster.Document) ([]byte, error) {
	f, err := Workbook(doc)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Workbook builds the styled workbook. Heat rows of one event are
// contiguous, banded with one fill, and their event-identity columns are
// merged vertically so each event reads as a block.
func Workbook(doc *roster.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", heatsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeHeatsSheet(f, styles, doc); err != nil {
		return nil, err
	}
	if err := writeAlternatesSheet(f, styles, doc); err != nil {
		return nil, err
	}

	return f, nil
}

// sheetStyles caches the style IDs shared by both sheets.
type sheetStyles struct {
	title      int
	header     int
	center     int
	left       int
	bandCenter []int
	bandLeft   []int
}

func newSheetStyles(f *excelize.File) (*sheetStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: borderGrey},
		{Type: "right", Style: 1, Color: borderGrey},
		{Type: "top", Style: 1, Color: borderGrey},
		{Type: "bottom", Style: 1, Color: borderGrey},
	}

	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Border:    thin,
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return nil, fmt.Errorf("center style: %w", err)
	}

	left, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return nil, fmt.Errorf("left style: %w", err)
	}

	s := &sheetStyles{title: title, header: header, center: center, left: left}
	for _, color := range pastelFills {
		fill := excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}

		bandCenter, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Fill:      fill,
			Border:    thin,
		})
		if err != nil {
			return nil, fmt.Errorf("band style: %w", err)
		}
		bandLeft, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Fill:      fill,
			Border:    thin,
		})
		if err != nil {
			return nil, fmt.Errorf("band style: %w", err)
		}
		s.bandCenter = append(s.bandCenter, bandCenter)
		s.bandLeft = append(s.bandLeft, bandLeft)
	}
	return s, nil
}

func writeHeatsSheet(f *excelize.File, styles *sheetStyles, doc *roster.Document) error {
	ncols := len(HeatsHeaders)

	if err := writeTitleAndHeaders(f, styles, heatsSheet, doc.Title, HeatsHeaders); err != nil {
		return err
	}

	row := 3
	for idx, ev := range doc.Events {
		band := idx % len(pastelFills)
		startRow := row

		for _, heat := range ev.Heats {
			values := []any{ev.Number, ev.Gender, ev.EventCode, ev.AgeGroup, heat.Label, ""}
			for lane := 0; lane < laneCount; lane++ {
				values = append(values, heat.Lanes[lane])
			}
			for i := 0; i < analystCount; i++ {
				values = append(values, "")
			}

			for col, val := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return fmt.Errorf("cell name: %w", err)
				}
				if err := f.SetCellValue(heatsSheet, cell, val); err != nil {
					return fmt.Errorf("set cell %s: %w", cell, err)
				}
				style := styles.bandCenter[band]
				if col >= 6 {
					// Lane and analyst columns read better left-aligned.
					style = styles.bandLeft[band]
				}
				if err := f.SetCellStyle(heatsSheet, cell, cell, style); err != nil {
					return fmt.Errorf("style cell %s: %w", cell, err)
				}
			}
			row++
		}

		// Merge event-identity columns across the event's heat rows.
		if row-1 > startRow {
			for col := 1; col <= 4; col++ {
				top, _ := excelize.CoordinatesToCellName(col, startRow)
				bottom, _ := excelize.CoordinatesToCellName(col, row-1)
				if err := f.MergeCell(heatsSheet, top, bottom); err != nil {
					return fmt.Errorf("merge %s:%s: %w", top, bottom, err)
				}
			}
		}
	}

	widths := map[int]float64{1: 5, 2: 8, 3: 10, 4: 14, 5: 18, 6: 6}
	for i := 0; i < laneCount; i++ {
		widths[7+i] = 22
	}
	for i := 0; i < analystCount; i++ {
		widths[7+laneCount+i] = 10
	}
	if err := setColWidths(f, heatsSheet, widths); err != nil {
		return err
	}

	return freezeHeaderRows(f, heatsSheet, ncols)
}

func writeAlternatesSheet(f *excelize.File, styles *sheetStyles, doc *roster.Document) error {
	if _, err := f.NewSheet(alternatesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	title := doc.Title + " (Alternates)"
	if err := writeTitleAndHeaders(f, styles, alternatesSheet, title, AlternatesHeaders); err != nil {
		return err
	}

	for i, a := range doc.Alternates {
		values := []any{
			a.EventNo, a.Gender, a.EventCode, a.AgeGroup, a.HeatLabel,
			a.AltGroup, a.Rank, a.Name, a.Team, a.Prelim,
		}
		for col, val := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+3)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(alternatesSheet, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
			style := styles.center
			// Group, name and team columns are free text.
			if col == 5 || col == 7 || col == 8 {
				style = styles.left
			}
			if err := f.SetCellStyle(alternatesSheet, cell, cell, style); err != nil {
				return fmt.Errorf("style cell %s: %w", cell, err)
			}
		}
	}

	widths := map[int]float64{1: 5, 2: 8, 3: 10, 4: 14, 5: 18, 6: 22, 7: 10, 8: 26, 9: 18, 10: 10}
	if err := setColWidths(f, alternatesSheet, widths); err != nil {
		return err
	}

	return freezeHeaderRows(f, alternatesSheet, len(AlternatesHeaders))
}

func writeTitleAndHeaders(f *excelize.File, styles *sheetStyles, sheet, title string, headers []string) error {
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.MergeCell(sheet, "A1", last); err != nil {
		return fmt.Errorf("merge title row: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, styles.title); err != nil {
		return fmt.Errorf("style title: %w", err)
	}
	if err := f.SetRowHeight(sheet, 1, 22); err != nil {
		return fmt.Errorf("title row height: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	hdrLast, err := excelize.CoordinatesToCellName(len(headers), 2)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A2", hdrLast, styles.header); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	if err := f.SetRowHeight(sheet, 2, 20); err != nil {
		return fmt.Errorf("header row height: %w", err)
	}
	return nil
}

func setColWidths(f *excelize.File, sheet string, widths map[int]float64) error {
	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return fmt.Errorf("set column width %s: %w", name, err)
		}
	}
	return nil
}

func freezeHeaderRows(f *excelize.File, sheet string, _ int) error {
	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("freeze panes: %w", err)
	}
	return nil
}
