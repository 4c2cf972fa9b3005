package models

// WebAccess is a credential for an external web service. AccessPassword is
// write-only: it is sent on create/update and must never be redisplayed in
// any view, document or export.
type WebAccess struct {
	ID                   int64  `json:"id"`
	ServiceName          string `json:"serviceName" validate:"required,max=100"`
	URL                  string `json:"url" validate:"required,max=255"`
	AccessUsername       string `json:"accessUsername" validate:"required,max=100"`
	AccessPassword       string `json:"accessPassword,omitempty" validate:"max=255"`
	AssignedEmployeeID   *int64 `json:"assignedEmployeeId"`
	AssignedEmployeeName string `json:"assignedEmployeeName,omitempty"`
}
