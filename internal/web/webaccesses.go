package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pablo-Mora/gestion-activos/internal/controller"
	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

type webAccessesPage struct {
	basePage
	Items      []models.WebAccess
	Employees  []models.Employee
	ShowForm   bool
	Editing    bool
	FormAction string
	Form       map[string]string
	Fields     map[string]string
}

func (s *Server) renderWebAccesses(w http.ResponseWriter, r *http.Request, page webAccessesPage) {
	page.Identity = identityFrom(r.Context())
	page.Items = s.webAccesses.Items()
	if page.ShowForm {
		page.Employees = s.employeeOptions(r.Context())
	}
	if page.Banner == "" {
		if err := s.webAccesses.LoadErr(); err != nil {
			page.Banner = "No se pudo cargar el listado de accesos web: " + err.Error()
		} else if err := s.webAccesses.SubmitErr(); err != nil {
			page.Banner = "La última operación falló: " + err.Error()
		}
		if page.Banner != "" {
			page.DismissPath = "/web-accesses/dismiss"
		}
	}
	s.render(w, "webaccesses", page)
}

func (s *Server) handleWebAccessList(w http.ResponseWriter, r *http.Request) {
	if err := s.webAccesses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderWebAccesses(w, r, webAccessesPage{})
}

func (s *Server) handleWebAccessNew(w http.ResponseWriter, r *http.Request) {
	if err := s.webAccesses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderWebAccesses(w, r, webAccessesPage{
		ShowForm:   true,
		FormAction: "/web-accesses",
		Form:       map[string]string{},
	})
}

func (s *Server) handleWebAccessEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
		return
	}
	if err := s.webAccesses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.webAccesses.Find(id)
	if !ok {
		http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
		return
	}
	assigned := ""
	if item.AssignedEmployeeID != nil {
		assigned = strconv.FormatInt(*item.AssignedEmployeeID, 10)
	}
	// the stored password is never prefilled
	s.renderWebAccesses(w, r, webAccessesPage{
		ShowForm:   true,
		Editing:    true,
		FormAction: fmt.Sprintf("/web-accesses/%d", id),
		Form: map[string]string{
			"serviceName":        item.ServiceName,
			"url":                item.URL,
			"accessUsername":     item.AccessUsername,
			"assignedEmployeeId": assigned,
		},
	})
}

func (s *Server) handleWebAccessCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	item, form, fields := webAccessFromForm(r)
	if len(fields) > 0 {
		s.renderWebAccesses(w, r, webAccessesPage{ShowForm: true, FormAction: "/web-accesses", Form: form, Fields: fields})
		return
	}
	if err := s.webAccesses.Create(r.Context(), item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderWebAccesses(w, r, webAccessesPage{ShowForm: true, FormAction: "/web-accesses", Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.webAccesses.SubmitErr() != nil {
			s.renderWebAccesses(w, r, webAccessesPage{
				basePage:   basePage{Banner: "No se pudo guardar el acceso web: " + err.Error()},
				ShowForm:   true,
				FormAction: "/web-accesses",
				Form:       form,
			})
			return
		}
	}
	http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
}

func (s *Server) handleWebAccessUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	action := fmt.Sprintf("/web-accesses/%d", id)
	item, form, fields := webAccessFromForm(r)
	if len(fields) > 0 {
		s.renderWebAccesses(w, r, webAccessesPage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: fields})
		return
	}
	if err := s.webAccesses.Update(r.Context(), id, item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderWebAccesses(w, r, webAccessesPage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.webAccesses.SubmitErr() != nil {
			s.renderWebAccesses(w, r, webAccessesPage{
				basePage:   basePage{Banner: "No se pudo guardar el acceso web: " + err.Error()},
				ShowForm:   true,
				Editing:    true,
				FormAction: action,
				Form:       form,
			})
			return
		}
	}
	http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
}

func (s *Server) handleWebAccessConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
		return
	}
	if err := s.webAccesses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.webAccesses.Find(id)
	if !ok {
		http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
		return
	}
	s.render(w, "confirm", confirmPage{
		basePage: basePage{Identity: identityFrom(r.Context())},
		Subject:  fmt.Sprintf("el acceso web a %q (id %d)", item.ServiceName, item.ID),
		Action:   fmt.Sprintf("/web-accesses/%d/delete", id),
		Cancel:   "/web-accesses",
	})
}

func (s *Server) handleWebAccessDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
		return
	}
	if err := s.webAccesses.Delete(r.Context(), id); err != nil && s.expireSession(w, r, err) {
		return
	}
	http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
}

func (s *Server) handleWebAccessDismiss(w http.ResponseWriter, r *http.Request) {
	s.webAccesses.Dismiss()
	http.Redirect(w, r, "/web-accesses", http.StatusSeeOther)
}
