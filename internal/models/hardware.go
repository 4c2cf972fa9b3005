package models

// HardwareItem is a physical asset (laptop, monitor, phone, ...).
// AssignedEmployeeID is a nullable foreign key to an Employee;
// AssignedEmployeeName is denormalized by the backend for display only.
type HardwareItem struct {
	ID                   int64  `json:"id"`
	Type                 string `json:"type" validate:"required,max=100"`
	Brand                string `json:"brand" validate:"max=100"`
	SerialNumber         string `json:"serialNumber" validate:"required,max=100"`
	Location             string `json:"location" validate:"max=255"`
	AssignedEmployeeID   *int64 `json:"assignedEmployeeId"`
	AssignedEmployeeName string `json:"assignedEmployeeName,omitempty"`
}
