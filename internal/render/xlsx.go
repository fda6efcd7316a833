package render

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

type sheetLayout struct {
	title  string
	header []any
	row    func(r *XLSXRenderer, n int) []any
}

var sheetLayouts = []sheetLayout{
	{
		title:  "Financial Summary",
		header: []any{"Month", "Revenue", "Expenses", "Profit"},
		row: func(r *XLSXRenderer, n int) []any {
			rev := utils.IntBetween(r.rng, 50_000, 500_000)
			exp := utils.IntBetween(r.rng, 30_000, rev)
			return []any{r.docDate.AddDate(0, n-1, 0).Format("Jan 2006"), rev, exp, rev - exp}
		},
	},
	{
		title:  "Inventory",
		header: []any{"SKU", "Item", "Quantity", "Unit Cost"},
		row: func(r *XLSXRenderer, n int) []any {
			return []any{fmt.Sprintf("SKU-%05d", n), r.faker.Noun(), utils.IntBetween(r.rng, 0, 2000), float64(utils.IntBetween(r.rng, 100, 50_000)) / 100}
		},
	},
	{
		title:  "Employees",
		header: []any{"Name", "Title", "Email", "Start Date"},
		row: func(r *XLSXRenderer, n int) []any {
			return []any{r.faker.Name(), r.faker.JobTitle(), r.faker.Email(), r.dateAround(5*365*day, 0).Format("2006-01-02")}
		},
	},
	{
		title:  "Sales",
		header: []any{"Region", "Representative", "Units", "Amount"},
		row: func(r *XLSXRenderer, n int) []any {
			units := utils.IntBetween(r.rng, 1, 500)
			return []any{r.faker.State(), r.faker.Name(), units, units * utils.IntBetween(r.rng, 10, 400)}
		},
	},
}

// XLSXRenderer writes a single-sheet workbook.
type XLSXRenderer struct {
	base
}

func (r *XLSXRenderer) Render(d plan.FileDescriptor) ([]byte, error) {
	layout := utils.Choice(r.rng, sheetLayouts)

	f := excelize.NewFile()
	defer f.Close()

	sheet := layout.title
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &layout.header); err != nil {
		return nil, err
	}
	rows := utils.IntBetween(r.rng, 12, 60)
	for n := 1; n <= rows; n++ {
		cell, err := excelize.CoordinatesToCellName(1, n+1)
		if err != nil {
			return nil, err
		}
		row := layout.row(r, n)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheet, "A", "D", 20); err != nil {
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: r.faker.Name(),
		Title:   layout.title,
		Created: r.docDate.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
