package export

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPayrollWorkbook(t *testing.T) {
	name := "Asha Rao"
	dept := "Packing"
	records := []payroll.PayrollRecord{
		{
			EmployeeName: &name,
			Department:   &dept,
			PresentDays:  20,
			TotalDays:    30,
			GrossSalary:  decimal.RequireFromString("20000.00"),
			NetPayable:   decimal.RequireFromString("20000.00"),
			Status:       payroll.PayrollStatusDraft,
		},
	}

	content, err := PayrollWorkbook(records, 3, 2024)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payroll", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Payroll March 2024", rows[0][0])
	assert.Equal(t, "Employee", rows[1][0])
	assert.Equal(t, "Net Payable", rows[1][6])

	assert.Equal(t, "Asha Rao", rows[2][0])
	assert.Equal(t, "Packing", rows[2][1])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "20", rows[2][3])
	assert.Equal(t, "30", rows[2][4])
	assert.Equal(t, "20000", rows[2][5])
	assert.Equal(t, "draft", rows[2][7])
}

func TestPayrollWorkbookEmpty(t *testing.T) {
	content, err := PayrollWorkbook(nil, 12, 2023)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPayrollFilename(t *testing.T) {
	assert.Equal(t, "payroll-2024-03.xlsx", PayrollFilename(3, 2024))
}
