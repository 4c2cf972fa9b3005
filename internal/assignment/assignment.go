// Package assignment derives the per-employee view of the global asset
// collections.
package assignment

import (
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/pkg/errors"
)

// ErrNoEmployeeID is returned when the identity cannot be resolved to an
// employee id. Callers must surface this as its own condition instead of
// silently showing an empty document.
var ErrNoEmployeeID = errors.New("cannot resolve employee identity")

// Compute filters the three collections down to the items assigned to the
// given employee. Matching is strict equality on assignedEmployeeId; items
// with no assignment are excluded. Input order is preserved and the inputs
// are never mutated.
func Compute(employeeID int64, hardware []models.HardwareItem, licenses []models.LicenseItem, webAccesses []models.WebAccess, at time.Time) (models.AssignmentView, error) {
	if employeeID == 0 {
		return models.AssignmentView{}, ErrNoEmployeeID
	}

	view := models.AssignmentView{
		EmployeeID:  employeeID,
		Hardware:    make([]models.HardwareItem, 0, len(hardware)),
		Licenses:    make([]models.LicenseItem, 0, len(licenses)),
		WebAccesses: make([]models.WebAccess, 0, len(webAccesses)),
		GeneratedAt: at,
	}
	for _, item := range hardware {
		if item.AssignedEmployeeID != nil && *item.AssignedEmployeeID == employeeID {
			view.Hardware = append(view.Hardware, item)
		}
	}
	for _, item := range licenses {
		if item.AssignedEmployeeID != nil && *item.AssignedEmployeeID == employeeID {
			view.Licenses = append(view.Licenses, item)
		}
	}
	for _, item := range webAccesses {
		if item.AssignedEmployeeID != nil && *item.AssignedEmployeeID == employeeID {
			view.WebAccesses = append(view.WebAccesses, item)
		}
	}
	return view, nil
}
