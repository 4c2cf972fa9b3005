package web

import (
	"errors"
	"net/http"

	"github.com/Pablo-Mora/gestion-activos/internal/directory"
)

type loginPage struct {
	basePage
	Username string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Current() != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, "login", loginPage{})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, err := s.sessions.Login(r.Context(), username, password)
	if err != nil {
		msg := "No se pudo conectar con el servidor."
		var authErr *directory.AuthError
		if errors.As(err, &authErr) {
			msg = authErr.Message
		}
		s.logger.Warn().Err(err).Str("username", username).Msg("login failed")
		s.render(w, "login", loginPage{
			basePage: basePage{Banner: msg},
			Username: username,
		})
		return
	}

	s.logger.Info().Str("username", username).Msg("login ok")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(); err != nil {
		s.logger.Error().Err(err).Msg("clearing session failed")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
