package deductionhandler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"cardcredit/internal/domain/deduction"
	"cardcredit/internal/platform/money"
)

// Core fonts carry no Hangul glyphs, so the report uses category titles and
// a KRW suffix instead of the on-screen labels.
const pdfCurrency = " KRW"

func pdfAmount(n int64) string {
	return money.Group(n) + pdfCurrency
}

func renderBreakdownPDF(res deduction.Result, requestID string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Card spending deduction", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Card spending deduction")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(6)
	if requestID != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Reference: %s", requestID))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Annual salary: %s", pdfAmount(res.Salary)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Threshold (not eligible): %s", pdfAmount(res.Threshold)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Income bracket: %s (limits %s / %s)", res.Bracket, pdfAmount(res.Limits.Basic), pdfAmount(res.Limits.Extra)))
	pdf.Ln(10)

	widths := []float64{50, 40, 40, 20, 40}
	headers := []string{"Category", "Spend", "Eligible", "Rate", "Deduction"}
	pdf.SetFont("Helvetica", "B", 11)
	for i, header := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, header, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range res.Breakdown {
		pdf.CellFormat(widths[0], 7, row.Category.Title(), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, pdfAmount(row.Spend), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, pdfAmount(row.Eligible), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, row.Rate.Shift(2).String()+"%", "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, pdfAmount(row.Credit), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Basic deduction: %s", pdfAmount(res.Basic)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Extra deduction: %s", pdfAmount(res.Extra)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deduction: %s", pdfAmount(res.Total)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
