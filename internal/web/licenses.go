package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pablo-Mora/gestion-activos/internal/controller"
	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

type licensesPage struct {
	basePage
	Items      []models.LicenseItem
	Employees  []models.Employee
	ShowForm   bool
	Editing    bool
	FormAction string
	Form       map[string]string
	Fields     map[string]string
}

func (s *Server) renderLicenses(w http.ResponseWriter, r *http.Request, page licensesPage) {
	page.Identity = identityFrom(r.Context())
	page.Items = s.licenses.Items()
	if page.ShowForm {
		page.Employees = s.employeeOptions(r.Context())
	}
	if page.Banner == "" {
		if err := s.licenses.LoadErr(); err != nil {
			page.Banner = "No se pudo cargar el listado de licencias: " + err.Error()
		} else if err := s.licenses.SubmitErr(); err != nil {
			page.Banner = "La última operación falló: " + err.Error()
		}
		if page.Banner != "" {
			page.DismissPath = "/licenses/dismiss"
		}
	}
	s.render(w, "licenses", page)
}

func (s *Server) handleLicenseList(w http.ResponseWriter, r *http.Request) {
	if err := s.licenses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderLicenses(w, r, licensesPage{})
}

func (s *Server) handleLicenseNew(w http.ResponseWriter, r *http.Request) {
	if err := s.licenses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderLicenses(w, r, licensesPage{
		ShowForm:   true,
		FormAction: "/licenses",
		Form:       map[string]string{},
	})
}

func (s *Server) handleLicenseEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/licenses", http.StatusSeeOther)
		return
	}
	if err := s.licenses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.licenses.Find(id)
	if !ok {
		http.Redirect(w, r, "/licenses", http.StatusSeeOther)
		return
	}
	assigned := ""
	if item.AssignedEmployeeID != nil {
		assigned = strconv.FormatInt(*item.AssignedEmployeeID, 10)
	}
	s.renderLicenses(w, r, licensesPage{
		ShowForm:   true,
		Editing:    true,
		FormAction: fmt.Sprintf("/licenses/%d", id),
		Form: map[string]string{
			"softwareName":       item.SoftwareName,
			"licenseKey":         item.LicenseKey,
			"purchaseDate":       item.PurchaseDate.FormValue(),
			"expirationDate":     item.ExpirationDate.FormValue(),
			"assignedEmployeeId": assigned,
		},
	})
}

func (s *Server) handleLicenseCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	item, form, fields := licenseFromForm(r)
	if len(fields) > 0 {
		s.renderLicenses(w, r, licensesPage{ShowForm: true, FormAction: "/licenses", Form: form, Fields: fields})
		return
	}
	if err := s.licenses.Create(r.Context(), item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderLicenses(w, r, licensesPage{ShowForm: true, FormAction: "/licenses", Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.licenses.SubmitErr() != nil {
			s.renderLicenses(w, r, licensesPage{
				basePage:   basePage{Banner: "No se pudo guardar la licencia: " + err.Error()},
				ShowForm:   true,
				FormAction: "/licenses",
				Form:       form,
			})
			return
		}
	}
	http.Redirect(w, r, "/licenses", http.StatusSeeOther)
}

func (s *Server) handleLicenseUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/licenses", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	action := fmt.Sprintf("/licenses/%d", id)
	item, form, fields := licenseFromForm(r)
	if len(fields) > 0 {
		s.renderLicenses(w, r, licensesPage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: fields})
		return
	}
	if err := s.licenses.Update(r.Context(), id, item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderLicenses(w, r, licensesPage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.licenses.SubmitErr() != nil {
			s.renderLicenses(w, r, licensesPage{
				basePage:   basePage{Banner: "No se pudo guardar la licencia: " + err.Error()},
				ShowForm:   true,
				Editing:    true,
				FormAction: action,
				Form:       form,
			})
			return
		}
	}
	http.Redirect(w, r, "/licenses", http.StatusSeeOther)
}

func (s *Server) handleLicenseConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/licenses", http.StatusSeeOther)
		return
	}
	if err := s.licenses.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.licenses.Find(id)
	if !ok {
		http.Redirect(w, r, "/licenses", http.StatusSeeOther)
		return
	}
	s.render(w, "confirm", confirmPage{
		basePage: basePage{Identity: identityFrom(r.Context())},
		Subject:  fmt.Sprintf("la licencia de %q (id %d)", item.SoftwareName, item.ID),
		Action:   fmt.Sprintf("/licenses/%d/delete", id),
		Cancel:   "/licenses",
	})
}

func (s *Server) handleLicenseDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/licenses", http.StatusSeeOther)
		return
	}
	if err := s.licenses.Delete(r.Context(), id); err != nil && s.expireSession(w, r, err) {
		return
	}
	http.Redirect(w, r, "/licenses", http.StatusSeeOther)
}

func (s *Server) handleLicenseDismiss(w http.ResponseWriter, r *http.Request) {
	s.licenses.Dismiss()
	http.Redirect(w, r, "/licenses", http.StatusSeeOther)
}
