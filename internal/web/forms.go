package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Pablo-Mora/gestion-activos/internal/models"
)

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func formMap(r *http.Request, keys ...string) map[string]string {
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = strings.TrimSpace(r.PostFormValue(k))
	}
	return values
}

func parseAssignedEmployee(raw string) (*int64, string) {
	if raw == "" {
		return nil, ""
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, "debe ser un empleado válido"
	}
	return &id, ""
}

func parseOptionalDate(raw string) (models.Date, string) {
	if raw == "" {
		return models.Date{}, ""
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, "debe tener formato AAAA-MM-DD"
	}
	return d, ""
}

func employeeFromForm(r *http.Request) (models.Employee, map[string]string, map[string]string) {
	form := formMap(r, "name", "department", "position")
	item := models.Employee{
		Name:       form["name"],
		Department: form["department"],
		Position:   form["position"],
	}
	return item, form, map[string]string{}
}

func hardwareFromForm(r *http.Request) (models.HardwareItem, map[string]string, map[string]string) {
	form := formMap(r, "type", "brand", "serialNumber", "location", "assignedEmployeeId")
	fields := map[string]string{}

	item := models.HardwareItem{
		Type:         form["type"],
		Brand:        form["brand"],
		SerialNumber: form["serialNumber"],
		Location:     form["location"],
	}
	if id, msg := parseAssignedEmployee(form["assignedEmployeeId"]); msg != "" {
		fields["assignedEmployeeId"] = msg
	} else {
		item.AssignedEmployeeID = id
	}
	return item, form, fields
}

func licenseFromForm(r *http.Request) (models.LicenseItem, map[string]string, map[string]string) {
	form := formMap(r, "softwareName", "licenseKey", "purchaseDate", "expirationDate", "assignedEmployeeId")
	fields := map[string]string{}

	item := models.LicenseItem{
		SoftwareName: form["softwareName"],
		LicenseKey:   form["licenseKey"],
	}
	if d, msg := parseOptionalDate(form["purchaseDate"]); msg != "" {
		fields["purchaseDate"] = msg
	} else {
		item.PurchaseDate = d
	}
	if d, msg := parseOptionalDate(form["expirationDate"]); msg != "" {
		fields["expirationDate"] = msg
	} else {
		item.ExpirationDate = d
	}
	if id, msg := parseAssignedEmployee(form["assignedEmployeeId"]); msg != "" {
		fields["assignedEmployeeId"] = msg
	} else {
		item.AssignedEmployeeID = id
	}
	return item, form, fields
}

func webAccessFromForm(r *http.Request) (models.WebAccess, map[string]string, map[string]string) {
	form := formMap(r, "serviceName", "url", "accessUsername", "accessPassword", "assignedEmployeeId")
	fields := map[string]string{}

	item := models.WebAccess{
		ServiceName:    form["serviceName"],
		URL:            form["url"],
		AccessUsername: form["accessUsername"],
		AccessPassword: form["accessPassword"],
	}
	// never echo a password back into the form
	delete(form, "accessPassword")

	if id, msg := parseAssignedEmployee(form["assignedEmployeeId"]); msg != "" {
		fields["assignedEmployeeId"] = msg
	} else {
		item.AssignedEmployeeID = id
	}
	return item, form, fields
}
