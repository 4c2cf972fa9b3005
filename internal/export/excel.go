// Package export builds the full inventory report workbook offered to
// administrators: one sheet per collection, with the denormalized assigned
// employee columns the backend provides for display.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx/v3"
)

// ReportFilename names the downloadable workbook from the generation time.
func ReportFilename(at time.Time) string {
	return fmt.Sprintf("ActivosTIC_Full_Report_%s.xlsx", at.Format("20060102_150405"))
}

// Workbook renders the four collections into an xlsx file. Web access
// passwords are write-only and never exported.
func Workbook(employees []models.Employee, hardware []models.HardwareItem, licenses []models.LicenseItem, webAccesses []models.WebAccess) ([]byte, error) {
	file := xlsx.NewFile()

	if err := addSheet(file, "Employees",
		[]string{"ID", "Name", "Department", "Position"},
		len(employees), func(i int) []string {
			e := employees[i]
			return []string{fmt.Sprintf("%d", e.ID), e.Name, e.Department, e.Position}
		}); err != nil {
		return nil, err
	}

	if err := addSheet(file, "Hardware",
		[]string{"ID", "Type", "Brand", "Serial Number", "Location", "Assigned Employee ID", "Assigned Employee Name"},
		len(hardware), func(i int) []string {
			h := hardware[i]
			return []string{fmt.Sprintf("%d", h.ID), h.Type, h.Brand, h.SerialNumber, h.Location, formatID(h.AssignedEmployeeID), h.AssignedEmployeeName}
		}); err != nil {
		return nil, err
	}

	if err := addSheet(file, "Licenses",
		[]string{"ID", "Software Name", "License Key", "Purchase Date", "Expiration Date", "Assigned Employee ID", "Assigned Employee Name"},
		len(licenses), func(i int) []string {
			l := licenses[i]
			return []string{fmt.Sprintf("%d", l.ID), l.SoftwareName, l.LicenseKey, l.PurchaseDate.FormValue(), l.ExpirationDate.FormValue(), formatID(l.AssignedEmployeeID), l.AssignedEmployeeName}
		}); err != nil {
		return nil, err
	}

	if err := addSheet(file, "Web Accesses",
		[]string{"ID", "Service Name", "URL", "Access Username", "Assigned Employee ID", "Assigned Employee Name"},
		len(webAccesses), func(i int) []string {
			w := webAccesses[i]
			return []string{fmt.Sprintf("%d", w.ID), w.ServiceName, w.URL, w.AccessUsername, formatID(w.AssignedEmployeeID), w.AssignedEmployeeName}
		}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func addSheet(file *xlsx.File, name string, headers []string, n int, row func(int) []string) error {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return errors.Wrapf(err, "add sheet %s", name)
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}
	for i := 0; i < n; i++ {
		r := sheet.AddRow()
		for _, v := range row(i) {
			r.AddCell().SetString(v)
		}
	}
	return nil
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}
