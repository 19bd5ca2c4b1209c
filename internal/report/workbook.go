package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/samandr77/microservices/reports/internal/entity"
)

const (
	SheetName   = "Reporte de Facturas"
	defaultName = "Sheet1"

	titleRow   = 1
	dateRow    = 3
	companyRow = 4
	headerRow  = 7
	firstRow   = 8

	colPartner = 1
	colNumber  = 2
	colDocType = 3
	colTerm    = 4
	colSeller  = 5
	colAmount  = 6
	colRate    = 7
	colCurr    = 8
)

var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 25},
	{"B", 20},
	{"C", 20},
	{"D", 25},
	{"E", 20},
	{"F", 15},
	{"G", 15},
	{"H", 15},
}

type Builder struct {
	companyBranch string
}

func NewBuilder(companyBranch string) *Builder {
	return &Builder{
		companyBranch: companyBranch,
	}
}

type styles struct {
	title    int
	subtitle int
	cell     int
	header   int
	partner  int
	total    int
}

// Build renders the invoices into an xlsx workbook with one sheet.
func (b *Builder) Build(invoices []entity.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName(defaultName, SheetName)
	if err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("create styles: %w", err)
	}

	err = setupPage(f)
	if err != nil {
		return nil, fmt.Errorf("setup page: %w", err)
	}

	w := &sheetWriter{f: f, sheet: SheetName}

	heading := HeadingFor(invoices)

	w.merge("A1", "H1")
	w.set(colPartner, titleRow, heading.Title, st.title)
	w.set(colPartner, dateRow, "Fecha: "+ReportDate(invoices), st.subtitle)
	w.set(colPartner, companyRow, "Empresa-Sucursal: "+b.companyBranch, st.subtitle)

	headers := []string{
		heading.PartnerColumn, "Comprobante", "Tipo de Documento", "Condición de Pago",
		"Vendedor", "Importe", "Cotización Total", "Moneda",
	}

	for i, h := range headers {
		w.set(i+1, headerRow, h, st.header)
	}

	row := firstRow

	for _, g := range GroupByPartner(invoices) {
		w.set(colPartner, row, g.Partner, st.partner)
		row++

		for _, inv := range g.Invoices {
			w.set(colPartner, row, g.Partner, st.cell)
			w.set(colNumber, row, inv.Name, st.cell)
			w.set(colDocType, row, documentType(inv.MoveType), st.cell)
			w.set(colTerm, row, paymentTerm(inv), st.cell)
			w.set(colSeller, row, salesperson(inv), st.cell)
			w.set(colAmount, row, inv.AmountTotal.InexactFloat64(), st.cell)
			w.set(colRate, row, currencyRate(inv), st.cell)
			w.set(colCurr, row, inv.Currency, st.cell)
			row++
		}

		w.set(colSeller, row, "Total", st.total)
		w.set(colAmount, row, g.Total.InexactFloat64(), st.total)

		// blank row between partners
		row += 2
	}

	for _, c := range columnWidths {
		w.width(c.col, c.width)
	}

	if w.err != nil {
		return nil, fmt.Errorf("write sheet: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  styles
		err error
	)

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&st.subtitle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Alignment: &excelize.Alignment{Horizontal: "left"},
		}},
		{&st.cell, &excelize.Style{
			Font: &excelize.Font{Size: 8},
		}},
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 8, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1D1D1B"}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&st.partner, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 8},
		}},
		{&st.total, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 8},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F2F2F2"}},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
	}

	for _, d := range defs {
		*d.dst, err = f.NewStyle(d.style)
		if err != nil {
			return styles{}, err
		}
	}

	return st, nil
}

// setupPage prints landscape, one page wide and as many pages tall as needed.
func setupPage(f *excelize.File) error {
	var (
		orientation = "landscape"
		fitToWidth  = 1
		fitToHeight = 0
		fitToPage   = true
	)

	err := f.SetPageLayout(SheetName, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		FitToWidth:  &fitToWidth,
		FitToHeight: &fitToHeight,
	})
	if err != nil {
		return err
	}

	return f.SetSheetProps(SheetName, &excelize.SheetPropsOptions{
		FitToPage: &fitToPage,
	})
}

// sheetWriter keeps the first error so cell writes read as a flat list.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value any, style int) {
	if w.err != nil {
		return
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}

	err = w.f.SetCellValue(w.sheet, cell, value)
	if err != nil {
		w.err = fmt.Errorf("set %s: %w", cell, err)
		return
	}

	err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	if err != nil {
		w.err = fmt.Errorf("style %s: %w", cell, err)
	}
}

func (w *sheetWriter) merge(from, to string) {
	if w.err != nil {
		return
	}

	w.err = w.f.MergeCell(w.sheet, from, to)
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err != nil {
		return
	}

	w.err = w.f.SetColWidth(w.sheet, col, col, width)
}
