package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Pablo-Mora/gestion-activos/internal/controller"
	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

type employeesPage struct {
	basePage
	Items      []models.Employee
	ShowForm   bool
	Editing    bool
	FormAction string
	Form       map[string]string
	Fields     map[string]string
}

// employeeOptions loads the employee list for assignment dropdowns. A failed
// load degrades to an empty dropdown instead of blocking the form.
func (s *Server) employeeOptions(ctx context.Context) []models.Employee {
	items, err := s.client.ListEmployees(ctx, s.sessions.Token())
	if err != nil {
		s.logger.Warn().Err(err).Msg("employee options load failed")
		return nil
	}
	return items
}

func (s *Server) renderEmployees(w http.ResponseWriter, r *http.Request, page employeesPage) {
	page.Identity = identityFrom(r.Context())
	page.Items = s.employees.Items()
	if page.Banner == "" {
		if err := s.employees.LoadErr(); err != nil {
			page.Banner = "No se pudo cargar el listado de empleados: " + err.Error()
		} else if err := s.employees.SubmitErr(); err != nil {
			page.Banner = "La última operación falló: " + err.Error()
		}
		if page.Banner != "" {
			page.DismissPath = "/employees/dismiss"
		}
	}
	s.render(w, "employees", page)
}

func (s *Server) handleEmployeeList(w http.ResponseWriter, r *http.Request) {
	if err := s.employees.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderEmployees(w, r, employeesPage{})
}

func (s *Server) handleEmployeeNew(w http.ResponseWriter, r *http.Request) {
	if err := s.employees.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderEmployees(w, r, employeesPage{
		ShowForm:   true,
		FormAction: "/employees",
		Form:       map[string]string{},
	})
}

func (s *Server) handleEmployeeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/employees", http.StatusSeeOther)
		return
	}
	if err := s.employees.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.employees.Find(id)
	if !ok {
		http.Redirect(w, r, "/employees", http.StatusSeeOther)
		return
	}
	s.renderEmployees(w, r, employeesPage{
		ShowForm:   true,
		Editing:    true,
		FormAction: fmt.Sprintf("/employees/%d", id),
		Form: map[string]string{
			"name":       item.Name,
			"department": item.Department,
			"position":   item.Position,
		},
	})
}

func (s *Server) handleEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	item, form, fields := employeeFromForm(r)
	if len(fields) > 0 {
		s.renderEmployees(w, r, employeesPage{ShowForm: true, FormAction: "/employees", Form: form, Fields: fields})
		return
	}
	if err := s.employees.Create(r.Context(), item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderEmployees(w, r, employeesPage{ShowForm: true, FormAction: "/employees", Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.employees.SubmitErr() != nil {
			s.renderEmployees(w, r, employeesPage{
				basePage:   basePage{Banner: "No se pudo guardar el empleado: " + err.Error()},
				ShowForm:   true,
				FormAction: "/employees",
				Form:       form,
			})
			return
		}
		// the create went through and only the refetch failed, fall through
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (s *Server) handleEmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/employees", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	action := fmt.Sprintf("/employees/%d", id)
	item, form, fields := employeeFromForm(r)
	if len(fields) > 0 {
		s.renderEmployees(w, r, employeesPage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: fields})
		return
	}
	if err := s.employees.Update(r.Context(), id, item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderEmployees(w, r, employeesPage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.employees.SubmitErr() != nil {
			s.renderEmployees(w, r, employeesPage{
				basePage:   basePage{Banner: "No se pudo guardar el empleado: " + err.Error()},
				ShowForm:   true,
				Editing:    true,
				FormAction: action,
				Form:       form,
			})
			return
		}
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (s *Server) handleEmployeeConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/employees", http.StatusSeeOther)
		return
	}
	if err := s.employees.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.employees.Find(id)
	if !ok {
		http.Redirect(w, r, "/employees", http.StatusSeeOther)
		return
	}
	s.render(w, "confirm", confirmPage{
		basePage: basePage{Identity: identityFrom(r.Context())},
		Subject:  fmt.Sprintf("al empleado %q (id %d)", item.Name, item.ID),
		Action:   fmt.Sprintf("/employees/%d/delete", id),
		Cancel:   "/employees",
	})
}

func (s *Server) handleEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/employees", http.StatusSeeOther)
		return
	}
	if err := s.employees.Delete(r.Context(), id); err != nil && s.expireSession(w, r, err) {
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (s *Server) handleEmployeeDismiss(w http.ResponseWriter, r *http.Request) {
	s.employees.Dismiss()
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}
