package export

import (
	"testing"
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

func int64Ptr(v int64) *int64 { return &v }

func TestWorkbookSheets(t *testing.T) {
	employees := []models.Employee{{ID: 7, Name: "Ana Gomez", Department: "IT", Position: "Dev"}}
	hardware := []models.HardwareItem{{ID: 1, Type: "laptop", Brand: "Dell", SerialNumber: "SN-1", AssignedEmployeeID: int64Ptr(7), AssignedEmployeeName: "Ana Gomez"}}
	licenses := []models.LicenseItem{{ID: 2, SoftwareName: "Office", LicenseKey: "KEY-9", ExpirationDate: models.NewDate(2027, time.May, 1)}}
	webAccesses := []models.WebAccess{{ID: 3, ServiceName: "GitHub", URL: "https://github.com", AccessUsername: "ana", AccessPassword: "hunter2"}}

	raw, err := Workbook(employees, hardware, licenses, webAccesses)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(raw)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 4)
	assert.Equal(t, "Employees", file.Sheets[0].Name)
	assert.Equal(t, "Hardware", file.Sheets[1].Name)
	assert.Equal(t, "Licenses", file.Sheets[2].Name)
	assert.Equal(t, "Web Accesses", file.Sheets[3].Name)

	name, err := file.Sheets[0].Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana Gomez", name.String())

	serial, err := file.Sheets[1].Cell(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "SN-1", serial.String())

	assignedName, err := file.Sheets[1].Cell(1, 6)
	require.NoError(t, err)
	assert.Equal(t, "Ana Gomez", assignedName.String())
}

func TestWorkbookOmitsPasswords(t *testing.T) {
	webAccesses := []models.WebAccess{
		{ID: 3, ServiceName: "GitHub", URL: "https://github.com", AccessUsername: "ana", AccessPassword: "S3cr3t-Pa55"},
	}
	raw, err := Workbook(nil, nil, nil, webAccesses)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(raw)
	require.NoError(t, err)
	sheet := file.Sheets[3]

	require.NoError(t, sheet.ForEachRow(func(r *xlsx.Row) error {
		return r.ForEachCell(func(c *xlsx.Cell) error {
			assert.NotEqual(t, "S3cr3t-Pa55", c.String())
			return nil
		})
	}))
}

func TestWorkbookEmptyCollections(t *testing.T) {
	raw, err := Workbook(nil, nil, nil, nil)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(raw)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 4)

	// Header row still present.
	header, err := file.Sheets[0].Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "ID", header.String())
}

func TestReportFilename(t *testing.T) {
	at := time.Date(2026, 3, 14, 17, 4, 5, 0, time.UTC)
	assert.Equal(t, "ActivosTIC_Full_Report_20260314_170405.xlsx", ReportFilename(at))
}
