package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// basePage carries the fields every page template expects.
type basePage struct {
	Identity *models.Identity
	Banner   string
	// DismissPath, when set, adds a dismiss button to the banner.
	DismissPath string
}

// confirmPage backs the shared delete confirmation template.
type confirmPage struct {
	basePage
	Subject string
	Action  string
	Cancel  string
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
