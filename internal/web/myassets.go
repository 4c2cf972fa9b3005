package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pablo-Mora/gestion-activos/internal/acta"
	"github.com/Pablo-Mora/gestion-activos/internal/assignment"
	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

type myAssetsPage struct {
	basePage
	View models.AssignmentView
}

// loadAssignment fetches fresh collections and filters them down to the
// signed-in employee. Nothing is cached between renders.
func (s *Server) loadAssignment(ctx context.Context, identity *models.Identity) (models.AssignmentView, error) {
	token := s.sessions.Token()

	hardware, err := s.client.ListHardware(ctx, token)
	if err != nil {
		return models.AssignmentView{}, err
	}
	licenses, err := s.client.ListLicenses(ctx, token)
	if err != nil {
		return models.AssignmentView{}, err
	}
	webAccesses, err := s.client.ListWebAccesses(ctx, token)
	if err != nil {
		return models.AssignmentView{}, err
	}

	return assignment.Compute(identity.ID, hardware, licenses, webAccesses, s.now())
}

func (s *Server) handleMyAssets(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	page := myAssetsPage{basePage: basePage{Identity: identity}}

	view, err := s.loadAssignment(r.Context(), identity)
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		if errors.Is(err, assignment.ErrNoEmployeeID) {
			page.Banner = "Tu cuenta no está vinculada a un registro de empleado."
		} else {
			page.Banner = "No se pudieron cargar tus activos asignados."
		}
		s.logger.Error().Err(err).Int64("employee_id", identity.ID).Msg("assignment load failed")
		s.render(w, "myassets", page)
		return
	}

	page.View = view
	s.render(w, "myassets", page)
}

func (s *Server) handleActaDownload(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	view, err := s.loadAssignment(r.Context(), identity)
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		s.logger.Error().Err(err).Msg("acta source load failed")
		http.Redirect(w, r, "/my-assets", http.StatusSeeOther)
		return
	}

	pdfBytes, err := s.renderActa(*identity, view)
	if err != nil {
		var renderErr *acta.RenderError
		if errors.As(err, &renderErr) {
			s.logger.Error().Err(err).Msg("acta render failed")
			page := myAssetsPage{
				basePage: basePage{
					Identity: identity,
					Banner:   "No se pudo generar el acta en PDF. Inténtalo de nuevo.",
				},
				View: view,
			}
			s.render(w, "myassets", page)
			return
		}
		s.logger.Error().Err(err).Msg("acta render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	filename := acta.Filename(identity.Username, view.GeneratedAt)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	_, _ = w.Write(pdfBytes)
}
