package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"shoeshop/internal/domain"
)

const (
	fontFamily = "Helvetica"
	rowHeight  = 7.0
)

type column struct {
	title string
	width float64
	align string
}

var salaryColumns = []column{
	{"Employee", 42, "L"},
	{"Position", 32, "L"},
	{"Basic", 22, "R"},
	{"Allowances", 22, "R"},
	{"Overtime", 22, "R"},
	{"Deductions", 22, "R"},
	{"Net", 24, "R"},
}

var orderColumns = []column{
	{"Order", 24, "L"},
	{"Date", 28, "L"},
	{"Customer", 64, "L"},
	{"Status", 30, "L"},
	{"Total", 30, "R"},
}

// SalaryReport renders the payroll of one month as an A4 PDF.
func SalaryReport(month string, salaries []domain.Salary, generatedAt time.Time) ([]byte, error) {
	return render(salaryDoc(month, salaries, generatedAt))
}

// OrderReport renders the orders created in [from, to) as an A4 PDF.
// Cancelled orders are listed but left out of the totals.
func OrderReport(from, to time.Time, orders []domain.OrderTotal, generatedAt time.Time) ([]byte, error) {
	return render(orderDoc(from, to, orders, generatedAt))
}

func salaryDoc(month string, salaries []domain.Salary, generatedAt time.Time) *fpdf.Fpdf {
	pdf := newDoc(fmt.Sprintf("Salary report %s", month), generatedAt)
	header(pdf, salaryColumns)

	var basic, allowances, overtime, deductions, net float64
	pdf.SetFont(fontFamily, "", 9)
	for _, s := range salaries {
		row(pdf, salaryColumns, false,
			s.EmployeeName, s.Position, money(s.Basic), money(s.Allowances), money(s.Overtime()),
			money(s.Deductions), money(s.Net))
		basic += s.Basic
		allowances += s.Allowances
		overtime += s.Overtime()
		deductions += s.Deductions
		net += s.Net
	}

	pdf.SetFont(fontFamily, "B", 9)
	row(pdf, salaryColumns, true,
		fmt.Sprintf("Total (%d)", len(salaries)), "", money(basic), money(allowances), money(overtime),
		money(deductions), money(net))
	return pdf
}

func orderDoc(from, to time.Time, orders []domain.OrderTotal, generatedAt time.Time) *fpdf.Fpdf {
	title := fmt.Sprintf("Order report %s - %s", from.UTC().Format(time.DateOnly), to.UTC().Format(time.DateOnly))
	pdf := newDoc(title, generatedAt)
	header(pdf, orderColumns)

	var revenue float64
	counted := 0
	pdf.SetFont(fontFamily, "", 9)
	for _, o := range orders {
		row(pdf, orderColumns, false,
			shortID(o.ID), o.CreatedAt.UTC().Format(time.DateOnly), o.CustomerEmail, string(o.DeliveryStatus),
			money(o.Total))
		if o.DeliveryStatus != domain.DeliveryCancelled {
			revenue += o.Total
			counted++
		}
	}

	pdf.SetFont(fontFamily, "B", 9)
	row(pdf, orderColumns, true,
		"Total", "", fmt.Sprintf("%d orders, %d not cancelled", len(orders), counted), "", money(revenue))
	return pdf
}

func newDoc(title string, generatedAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("shoeshop", true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.UTC().Format(time.RFC3339), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	return pdf
}

func header(pdf *fpdf.Fpdf, cols []column) {
	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)
}

func row(pdf *fpdf.Fpdf, cols []column, fill bool, values ...string) {
	pdf.SetFillColor(245, 245, 245)
	for i, c := range cols {
		pdf.CellFormat(c.width, rowHeight, values[i], "1", 0, c.align, fill, 0, "")
	}
	pdf.Ln(-1)
}

func render(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
