package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pablo-Mora/gestion-activos/internal/controller"
	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

type hardwarePage struct {
	basePage
	Items      []models.HardwareItem
	Employees  []models.Employee
	ShowForm   bool
	Editing    bool
	FormAction string
	Form       map[string]string
	Fields     map[string]string
}

func (s *Server) renderHardware(w http.ResponseWriter, r *http.Request, page hardwarePage) {
	page.Identity = identityFrom(r.Context())
	page.Items = s.hardware.Items()
	if page.ShowForm {
		page.Employees = s.employeeOptions(r.Context())
	}
	if page.Banner == "" {
		if err := s.hardware.LoadErr(); err != nil {
			page.Banner = "No se pudo cargar el listado de hardware: " + err.Error()
		} else if err := s.hardware.SubmitErr(); err != nil {
			page.Banner = "La última operación falló: " + err.Error()
		}
		if page.Banner != "" {
			page.DismissPath = "/hardware/dismiss"
		}
	}
	s.render(w, "hardware", page)
}

func (s *Server) handleHardwareList(w http.ResponseWriter, r *http.Request) {
	if err := s.hardware.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderHardware(w, r, hardwarePage{})
}

func (s *Server) handleHardwareNew(w http.ResponseWriter, r *http.Request) {
	if err := s.hardware.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	s.renderHardware(w, r, hardwarePage{
		ShowForm:   true,
		FormAction: "/hardware",
		Form:       map[string]string{},
	})
}

func (s *Server) handleHardwareEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/hardware", http.StatusSeeOther)
		return
	}
	if err := s.hardware.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.hardware.Find(id)
	if !ok {
		http.Redirect(w, r, "/hardware", http.StatusSeeOther)
		return
	}
	assigned := ""
	if item.AssignedEmployeeID != nil {
		assigned = strconv.FormatInt(*item.AssignedEmployeeID, 10)
	}
	s.renderHardware(w, r, hardwarePage{
		ShowForm:   true,
		Editing:    true,
		FormAction: fmt.Sprintf("/hardware/%d", id),
		Form: map[string]string{
			"type":               item.Type,
			"brand":              item.Brand,
			"serialNumber":       item.SerialNumber,
			"location":           item.Location,
			"assignedEmployeeId": assigned,
		},
	})
}

func (s *Server) handleHardwareCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	item, form, fields := hardwareFromForm(r)
	if len(fields) > 0 {
		s.renderHardware(w, r, hardwarePage{ShowForm: true, FormAction: "/hardware", Form: form, Fields: fields})
		return
	}
	if err := s.hardware.Create(r.Context(), item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderHardware(w, r, hardwarePage{ShowForm: true, FormAction: "/hardware", Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.hardware.SubmitErr() != nil {
			s.renderHardware(w, r, hardwarePage{
				basePage:   basePage{Banner: "No se pudo guardar el equipo: " + err.Error()},
				ShowForm:   true,
				FormAction: "/hardware",
				Form:       form,
			})
			return
		}
	}
	http.Redirect(w, r, "/hardware", http.StatusSeeOther)
}

func (s *Server) handleHardwareUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/hardware", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	action := fmt.Sprintf("/hardware/%d", id)
	item, form, fields := hardwareFromForm(r)
	if len(fields) > 0 {
		s.renderHardware(w, r, hardwarePage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: fields})
		return
	}
	if err := s.hardware.Update(r.Context(), id, item); err != nil {
		var verr *controller.ValidationError
		if errors.As(err, &verr) {
			s.renderHardware(w, r, hardwarePage{ShowForm: true, Editing: true, FormAction: action, Form: form, Fields: verr.Fields})
			return
		}
		if s.expireSession(w, r, err) {
			return
		}
		if s.hardware.SubmitErr() != nil {
			s.renderHardware(w, r, hardwarePage{
				basePage:   basePage{Banner: "No se pudo guardar el equipo: " + err.Error()},
				ShowForm:   true,
				Editing:    true,
				FormAction: action,
				Form:       form,
			})
			return
		}
	}
	http.Redirect(w, r, "/hardware", http.StatusSeeOther)
}

func (s *Server) handleHardwareConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/hardware", http.StatusSeeOther)
		return
	}
	if err := s.hardware.List(r.Context()); err != nil && s.expireSession(w, r, err) {
		return
	}
	item, ok := s.hardware.Find(id)
	if !ok {
		http.Redirect(w, r, "/hardware", http.StatusSeeOther)
		return
	}
	s.render(w, "confirm", confirmPage{
		basePage: basePage{Identity: identityFrom(r.Context())},
		Subject:  fmt.Sprintf("el equipo %s %s (serial %s)", item.Type, item.Brand, item.SerialNumber),
		Action:   fmt.Sprintf("/hardware/%d/delete", id),
		Cancel:   "/hardware",
	})
}

func (s *Server) handleHardwareDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Redirect(w, r, "/hardware", http.StatusSeeOther)
		return
	}
	if err := s.hardware.Delete(r.Context(), id); err != nil && s.expireSession(w, r, err) {
		return
	}
	http.Redirect(w, r, "/hardware", http.StatusSeeOther)
}

func (s *Server) handleHardwareDismiss(w http.ResponseWriter, r *http.Request) {
	s.hardware.Dismiss()
	http.Redirect(w, r, "/hardware", http.StatusSeeOther)
}
