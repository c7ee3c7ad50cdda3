package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"owid-charts/internal/model"
)

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", " ", `\`, " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// SheetName derives a workbook sheet name from the chart position and title.
func SheetName(index int, c model.Chart) string {
	title := c.Title
	if title == "" {
		title = "chart"
	}
	name := sheetNameReplacer.Replace(fmt.Sprintf("%d %s", index+1, title))
	for utf8.RuneCountInString(name) > maxSheetName {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return strings.TrimSpace(name)
}

// WriteWorkbook saves the plotted points of every chart to an xlsx file,
// one sheet per chart. Missing values are left as empty cells.
func WriteWorkbook(path string, cs []model.Chart) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	defaultSheet := f.GetSheetName(0)
	for i, c := range cs {
		name := SheetName(i, c)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return errors.Wrapf(err, "name sheet %q", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return errors.Wrapf(err, "add sheet %q", name)
		}
		if err := writeSheet(f, name, c); err != nil {
			return err
		}
	}

	return errors.Wrapf(f.SaveAs(path), "save workbook %s", path)
}

func writeSheet(f *excelize.File, sheet string, c model.Chart) error {
	xHeader := model.ColumnDate
	if c.XAxis.Kind == model.AxisCategorical {
		xHeader = model.ColumnLocation
	}
	yHeader := "value"
	if len(c.Series) > 0 {
		yHeader = c.Series[0].YColumn
	}

	header := []interface{}{"series", xHeader, yHeader}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "write header of %q", sheet)
	}

	row := 2
	for _, s := range c.Series {
		for _, p := range s.Points() {
			var x interface{}
			if c.XAxis.Kind == model.AxisCategorical {
				x = p.Category
			} else if !p.Date.IsZero() {
				x = p.Date.Format(model.DateLayout)
			}
			values := []interface{}{s.Name, x}
			if p.Y.Valid {
				values = append(values, p.Y.Float64)
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return errors.Wrapf(err, "write row %d of %q", row, sheet)
			}
			row++
		}
	}
	return nil
}
