package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportService serializes a payment-details view into downloadable bytes.
// Column order is fixed across all three formats.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

var exportHeader = []string{
	"Room Number", "Room Type", "Guest Name", "Guest Phone", "Guest Email",
	"Payment Month", "Amount", "Payment Method", "Payment Date",
	"Payment Status", "Balance Amount", "Notes",
}

func exportRow(d PaymentDetail) []string {
	date := ""
	if d.PaymentDate != nil {
		date = d.PaymentDate.Format("2006-01-02 15:04:05")
	}
	return []string{
		d.RoomNumber,
		d.RoomType,
		d.GuestName,
		d.GuestPhone,
		d.GuestEmail,
		d.PaymentMonth,
		strconv.Itoa(d.PaymentAmount),
		d.PaymentMethod,
		date,
		d.PaymentStatus,
		strconv.Itoa(d.BalanceAmount),
		d.Notes,
	}
}

func (s *ExportService) CSV(details []PaymentDetail) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, d := range details {
		if err := w.Write(exportRow(d)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) PDF(details []PaymentDetail) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Payment Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Payment Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	widths := []float64{20, 22, 30, 24, 40, 20, 18, 24, 30, 16, 18, 35}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range exportHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, d := range details {
		for i, cell := range exportRow(d) {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) XLSX(details []PaymentDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for row, d := range details {
		for col, value := range exportRow(d) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
