// Package acta renders the "Acta de Asignación de Activos TIC": the signed
// handover document listing every asset currently assigned to an employee.
// Rendering is a pure function of the identity and the assignment view; it
// performs no network calls and never mutates its inputs.
package acta

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/go-pdf/fpdf"
)

// RenderError wraps a failure of the layout engine. The caller shows a
// banner and must not retry automatically.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("acta: render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Filename names the downloadable artifact from the username and the
// generation date.
func Filename(username string, at time.Time) string {
	if username == "" {
		username = "usuario"
	}
	return fmt.Sprintf("Acta_Asignacion_%s_%s.pdf", username, at.Format("2006-01-02"))
}

const (
	pageMargin = 15.0
	contentW   = 210 - 2*pageMargin // A4 portrait
	rowH       = 6.0
)

// Render lays out the acta and returns the PDF bytes. Identical inputs
// (identity, view, GeneratedAt) produce identical bytes: the document's
// internal timestamps are pinned to the view's generation time.
func Render(identity models.Identity, view models.AssignmentView) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(view.GeneratedAt)
	pdf.SetModificationDate(view.GeneratedAt)
	// Plain content streams; the artifact stays auditable byte for byte.
	pdf.SetCompression(false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 12, tr("Acta de Asignación de Activos TIC"), "B", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Identity block: no time component on the generation date.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, tr("Información del Usuario"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Nombre de Usuario: "+orNA(identity.Username)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, tr("Email: "+orNA(identity.Email)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, tr("Fecha de Generación: "+view.GeneratedAt.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	hardwareRows := make([][]string, 0, len(view.Hardware))
	for _, item := range view.Hardware {
		hardwareRows = append(hardwareRows, []string{
			fmt.Sprintf("%d", item.ID), item.Type, item.Brand, item.SerialNumber, item.Location,
		})
	}
	section(pdf, tr, tableSpec{
		title:   "Equipos de Hardware Asignados",
		empty:   "No hay equipos de hardware asignados.",
		headers: []string{"ID", "Tipo", "Marca", "Serial", "Ubicación"},
		widths:  []float64{15, 40, 35, 50, 40},
		rows:    hardwareRows,
	})

	licenseRows := make([][]string, 0, len(view.Licenses))
	for _, item := range view.Licenses {
		licenseRows = append(licenseRows, []string{
			fmt.Sprintf("%d", item.ID), item.SoftwareName, item.LicenseKey, item.ExpirationDate.Display(),
		})
	}
	section(pdf, tr, tableSpec{
		title:   "Licencias de Software Asignadas",
		empty:   "No hay licencias de software asignadas.",
		headers: []string{"ID", "Software", "Clave", "Expiración"},
		widths:  []float64{15, 55, 70, 40},
		rows:    licenseRows,
	})

	// The access password never appears here, even though it may sit in the
	// WebAccess records in memory.
	webRows := make([][]string, 0, len(view.WebAccesses))
	for _, item := range view.WebAccesses {
		webRows = append(webRows, []string{
			fmt.Sprintf("%d", item.ID), item.ServiceName, item.URL, item.AccessUsername,
		})
	}
	section(pdf, tr, tableSpec{
		title:   "Accesos Web Asignados",
		empty:   "No hay accesos web asignados.",
		headers: []string{"ID", "Servicio", "URL", "Usuario"},
		widths:  []float64{15, 45, 75, 45},
		rows:    webRows,
	})

	signatureBlock(pdf, tr, identity.Username)

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(contentW, 5, tr("Este documento es generado automáticamente por el Sistema de Gestión de Activos TIC."), "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

type tableSpec struct {
	title   string
	empty   string
	headers []string
	widths  []float64
	rows    [][]string
}

// section renders one asset table, or its placeholder line when empty. A
// section that still fits on a fresh page is kept together; one taller than
// a page is left to the engine's automatic breaks.
func section(pdf *fpdf.Fpdf, tr func(string) string, spec tableSpec) {
	height := 8.0 + 4.0 // title + trailing gap
	if len(spec.rows) == 0 {
		height += rowH
	} else {
		height += rowH * float64(len(spec.rows)+1)
	}
	_, pageH := pdf.GetPageSize()
	if y := pdf.GetY(); y+height > pageH-pageMargin && height < pageH-2*pageMargin {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 8, tr(spec.title), "", 1, "L", false, 0, "")

	if len(spec.rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(contentW, rowH, tr(spec.empty), "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range spec.headers {
		pdf.CellFormat(spec.widths[i], rowH, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range spec.rows {
		for i, cell := range row {
			pdf.CellFormat(spec.widths[i], rowH, tr(truncate(cell, 38)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// signatureBlock always starts on a fresh page: the signatures must not be
// separable from a partial asset listing.
func signatureBlock(pdf *fpdf.Fpdf, tr func(string) string, username string) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 8, tr("Firmas"), "", 1, "L", false, 0, "")
	pdf.Ln(30)

	colW := contentW / 2
	lineW := 60.0
	y := pdf.GetY()

	left := pageMargin + (colW-lineW)/2
	right := pageMargin + colW + (colW-lineW)/2
	pdf.Line(left, y, left+lineW, y)
	pdf.Line(right, y, right+lineW, y)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetY(y + 2)
	pdf.CellFormat(colW, 6, tr("Firma del Empleado"), "", 0, "C", false, 0, "")
	pdf.CellFormat(colW, 6, tr("Firma del Responsable (Admin)"), "", 1, "C", false, 0, "")
	pdf.CellFormat(colW, 6, tr(orNA(username)), "", 1, "C", false, 0, "")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
