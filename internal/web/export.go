package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pablo-Mora/gestion-activos/internal/export"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	inv, err := s.fetchInventory(r.Context())
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		s.logger.Error().Err(err).Msg("export source load failed")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	book, err := export.Workbook(inv.Employees, inv.Hardware, inv.Licenses, inv.WebAccesses)
	if err != nil {
		s.logger.Error().Err(err).Msg("workbook build failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	filename := export.ReportFilename(s.now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(book)))
	_, _ = w.Write(book)
}
