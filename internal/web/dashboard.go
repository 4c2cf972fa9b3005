package web

import (
	"context"
	"net/http"

	"github.com/Pablo-Mora/gestion-activos/internal/assignment"
	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

type dashboardPage struct {
	basePage
	EmployeeCount  int
	HardwareCount  int
	LicenseCount   int
	WebAccessCount int

	HardwareByType        []assignment.CountByItem
	EmployeesByDepartment []assignment.CountByItem
	LicensesBySoftware    []assignment.CountByItem
}

// inventory is one consistent snapshot of every backend collection.
type inventory struct {
	Employees   []models.Employee
	Hardware    []models.HardwareItem
	Licenses    []models.LicenseItem
	WebAccesses []models.WebAccess
}

func (s *Server) fetchInventory(ctx context.Context) (inventory, error) {
	token := s.sessions.Token()
	var inv inventory
	var err error

	if inv.Employees, err = s.client.ListEmployees(ctx, token); err != nil {
		return inventory{}, err
	}
	if inv.Hardware, err = s.client.ListHardware(ctx, token); err != nil {
		return inventory{}, err
	}
	if inv.Licenses, err = s.client.ListLicenses(ctx, token); err != nil {
		return inventory{}, err
	}
	if inv.WebAccesses, err = s.client.ListWebAccesses(ctx, token); err != nil {
		return inventory{}, err
	}
	return inv, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	page := dashboardPage{basePage: basePage{Identity: identity}}

	if identity.IsAdmin() {
		inv, err := s.fetchInventory(r.Context())
		if err != nil {
			if s.expireSession(w, r, err) {
				return
			}
			s.logger.Error().Err(err).Msg("dashboard summary failed")
			page.Banner = "No se pudo cargar el resumen del inventario."
			s.render(w, "dashboard", page)
			return
		}

		page.EmployeeCount = len(inv.Employees)
		page.HardwareCount = len(inv.Hardware)
		page.LicenseCount = len(inv.Licenses)
		page.WebAccessCount = len(inv.WebAccesses)
		page.HardwareByType = assignment.CountHardwareByType(inv.Hardware)
		page.EmployeesByDepartment = assignment.CountEmployeesByDepartment(inv.Employees)
		page.LicensesBySoftware = assignment.CountLicensesBySoftware(inv.Licenses)
	}

	s.render(w, "dashboard", page)
}
