// Package export renders stored records as downloadable spreadsheets.
package export

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	payrollSheet = "Payroll"
	// XLSXContentType is the media type of the workbooks built here.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var payrollHeader = []interface{}{
	"Employee", "Department", "Position", "Present Days", "Total Days", "Gross Salary", "Net Payable", "Status",
}

// PayrollFilename names the workbook of a period, e.g. payroll-2024-03.xlsx.
func PayrollFilename(month, year int) string {
	return fmt.Sprintf("payroll-%04d-%02d.xlsx", year, month)
}

// PayrollWorkbook writes one row per record under a title row and a header row.
func PayrollWorkbook(records []payroll.PayrollRecord, month, year int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	title := fmt.Sprintf("Payroll %s %d", time.Month(month), year)
	if err := f.SetCellValue(payrollSheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(payrollSheet, "A2", &payrollHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(payrollSheet, "A1", "H2", bold); err != nil {
		return nil, err
	}

	for i, r := range records {
		row := i + 3
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			deref(r.EmployeeName),
			deref(r.Department),
			deref(r.Position),
			r.PresentDays,
			r.TotalDays,
			r.GrossSalary.InexactFloat64(),
			r.NetPayable.InexactFloat64(),
			string(r.Status),
		}
		if err := f.SetSheetRow(payrollSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellStyle(payrollSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("G%d", row), money); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(payrollSheet, "A", "C", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(payrollSheet, "D", "H", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
