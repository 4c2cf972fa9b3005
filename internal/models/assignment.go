package models

import "time"

// AssignmentView is the derived, per-employee subset of the global asset
// collections. It is built on demand for the my-assets view and the handover
// acta, and never cached beyond one render cycle: the backing collections can
// change between requests.
type AssignmentView struct {
	EmployeeID  int64
	Hardware    []HardwareItem
	Licenses    []LicenseItem
	WebAccesses []WebAccess
	GeneratedAt time.Time
}

// Empty reports whether no asset of any kind is assigned.
func (v AssignmentView) Empty() bool {
	return len(v.Hardware) == 0 && len(v.Licenses) == 0 && len(v.WebAccesses) == 0
}
