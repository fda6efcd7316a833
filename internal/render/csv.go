package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// csvSchema is one kind of tabular export.
type csvSchema struct {
	header []string
	row    func(r *CSVRenderer, n int) []string
}

var csvSchemas = []csvSchema{
	{
		header: []string{"ID", "Name", "Email", "Department", "Salary"},
		row: func(r *CSVRenderer, n int) []string {
			return []string{strconv.Itoa(n), r.faker.Name(), r.faker.Email(), r.faker.JobTitle(), r.money(30_000, 150_000)}
		},
	},
	{
		header: []string{"Date", "Product", "Quantity", "Price", "Total"},
		row: func(r *CSVRenderer, n int) []string {
			qty := utils.IntBetween(r.rng, 1, 100)
			price := utils.IntBetween(r.rng, 1, 500)
			return []string{r.day(n), r.faker.Noun(), strconv.Itoa(qty), strconv.Itoa(price), strconv.Itoa(qty * price)}
		},
	},
	{
		header: []string{"Customer", "Company", "Phone", "City", "Status"},
		row: func(r *CSVRenderer, n int) []string {
			return []string{r.faker.Name(), r.faker.Company(), r.faker.Phone(), r.faker.City(), utils.Choice(r.rng, []string{"active", "inactive", "pending"})}
		},
	},
	{
		header: []string{"Timestamp", "Host", "Event", "Severity"},
		row: func(r *CSVRenderer, n int) []string {
			return []string{r.day(n) + " " + fmt.Sprintf("%02d:%02d", utils.IntBetween(r.rng, 0, 23), utils.IntBetween(r.rng, 0, 59)),
				r.faker.IPv4Address(), r.faker.Verb(), utils.Choice(r.rng, logLevels)}
		},
	},
	{
		header: []string{"SKU", "Item", "Stock", "Warehouse"},
		row: func(r *CSVRenderer, n int) []string {
			return []string{fmt.Sprintf("SKU-%05d", n), r.faker.Noun(), strconv.Itoa(utils.IntBetween(r.rng, 0, 1000)), r.faker.City()}
		},
	},
	{
		header: []string{"Invoice", "Client", "Amount", "Due"},
		row: func(r *CSVRenderer, n int) []string {
			return []string{fmt.Sprintf("INV-%d", 1000+n), r.faker.Company(), r.money(100, 25_000), r.day(n)}
		},
	},
	{
		header: []string{"Project", "Owner", "Budget", "Progress"},
		row: func(r *CSVRenderer, n int) []string {
			return []string{r.faker.BuzzWord(), r.faker.Name(), r.money(5_000, 500_000), strconv.Itoa(utils.IntBetween(r.rng, 0, 100)) + "%"}
		},
	},
	{
		header: []string{"Account", "Region", "Revenue", "Quarter"},
		row: func(r *CSVRenderer, n int) []string {
			return []string{fmt.Sprintf("ACC%04d", n), r.faker.State(), r.money(1_000, 1_000_000), fmt.Sprintf("Q%d", utils.IntBetween(r.rng, 1, 4))}
		},
	},
}

// CSVRenderer writes a header row followed by generated records.
type CSVRenderer struct {
	base
}

func (r *CSVRenderer) Render(d plan.FileDescriptor) ([]byte, error) {
	schema := utils.Choice(r.rng, csvSchemas)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(schema.header); err != nil {
		return nil, err
	}
	rows := utils.IntBetween(r.rng, 10, 50)
	for n := 1; n <= rows || (d.SizeBytes > 10_000 && uint64(buf.Len()) < d.SizeBytes); n++ {
		if err := w.Write(schema.row(r, n)); err != nil {
			return nil, err
		}
		w.Flush()
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (r *CSVRenderer) money(lo, hi int) string {
	return fmt.Sprintf("%d.%02d", utils.IntBetween(r.rng, lo, hi), utils.IntBetween(r.rng, 0, 99))
}

func (r *CSVRenderer) day(n int) string {
	return r.docDate.AddDate(0, 0, n).Format("2006-01-02")
}
