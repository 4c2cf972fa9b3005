package models

// LicenseItem is a software license, optionally assigned to an employee.
type LicenseItem struct {
	ID                   int64  `json:"id"`
	SoftwareName         string `json:"softwareName" validate:"required,max=100"`
	LicenseKey           string `json:"licenseKey" validate:"required,max=255"`
	PurchaseDate         Date   `json:"purchaseDate"`
	ExpirationDate       Date   `json:"expirationDate"`
	AssignedEmployeeID   *int64 `json:"assignedEmployeeId"`
	AssignedEmployeeName string `json:"assignedEmployeeName,omitempty"`
}
