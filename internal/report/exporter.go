// Package report renders match rows into an xlsx workbook.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/locvowork/employee_pairs/internal/domain"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var fieldValues = map[string]func(domain.MatchRow) interface{}{
	FieldID:               func(r domain.MatchRow) interface{} { return r.ID },
	FieldFirstEmployeeID:  func(r domain.MatchRow) interface{} { return r.FirstEmployeeID },
	FieldSecondEmployeeID: func(r domain.MatchRow) interface{} { return r.SecondEmployeeID },
	FieldProjectIDs:       func(r domain.MatchRow) interface{} { return r.ProjectIDs },
	FieldDays:             func(r domain.MatchRow) interface{} { return r.Days },
}

// Exporter writes match rows using a Config layout.
type Exporter struct {
	cfg *Config
}

// NewExporter creates an exporter. A nil cfg uses DefaultConfig.
func NewExporter(cfg *Config) (*Exporter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Exporter{cfg: cfg}, nil
}

// Build renders rows into a new workbook. The caller closes the file.
func (e *Exporter) Build(rows []domain.MatchRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := e.cfg.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	if err := e.render(f, sheet, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (e *Exporter) render(f *excelize.File, sheet string, rows []domain.MatchRow) error {
	cols := e.cfg.Columns
	currentRow := 1

	if e.cfg.Title != "" {
		cell, _ := excelize.CoordinatesToCellName(1, currentRow)
		if err := f.SetCellValue(sheet, cell, e.cfg.Title); err != nil {
			return err
		}
		if len(cols) > 1 {
			endCell, _ := excelize.CoordinatesToCellName(len(cols), currentRow)
			if err := f.MergeCell(sheet, cell, endCell); err != nil {
				return err
			}
		}
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, titleStyle); err != nil {
			return err
		}
		currentRow++
	}

	headerRow := currentRow
	headerStyle, err := createStyle(f, e.cfg.HeaderStyle)
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, currentRow)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
		if headerStyle != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
				return err
			}
		}
		if col.Width > 0 {
			colName, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
				return err
			}
		}
	}
	currentRow++

	for _, row := range rows {
		values := make([]interface{}, len(cols))
		for i, col := range cols {
			values[i] = fieldValues[col.FieldName](row)
		}
		cell, _ := excelize.CoordinatesToCellName(1, currentRow)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		currentRow++
	}

	if e.cfg.HasFilter && len(rows) > 0 {
		firstCell, _ := excelize.CoordinatesToCellName(1, headerRow)
		lastCell, _ := excelize.CoordinatesToCellName(len(cols), currentRow-1)
		if err := f.AutoFilter(sheet, firstCell+":"+lastCell, nil); err != nil {
			return fmt.Errorf("set autofilter: %w", err)
		}
	}
	return nil
}

// Write renders rows and writes the workbook to w.
func (e *Exporter) Write(w io.Writer, rows []domain.MatchRow) error {
	f, err := e.Build(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// ToBytes renders rows into an in-memory workbook.
func (e *Exporter) ToBytes(rows []domain.MatchRow) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.Write(buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAs writes the workbook to path.
func (e *Exporter) SaveAs(path string, rows []domain.MatchRow) error {
	f, err := e.Build(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	if tmpl == nil {
		return 0, nil
	}

	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:  tmpl.Bold,
			Color: strings.TrimPrefix(tmpl.FontColor, "#"),
		},
	}
	if tmpl.FillColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.FillColor, "#")},
			Pattern: 1,
		}
	}
	return f.NewStyle(style)
}
