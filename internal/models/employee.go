package models

// Employee is a staff member that assets can be assigned to.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required,max=100"`
	Department string `json:"department" validate:"max=100"`
	Position   string `json:"position" validate:"max=100"`
}
