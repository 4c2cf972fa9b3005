// Package directory is the typed HTTP client for the asset backend. The
// backend owns all canonical records; this client only moves transient
// copies, and every fetch supersedes the previous one wholesale.
package directory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the backend REST API. Authenticated calls carry the
// caller's bearer token; the client itself holds no session state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the backend at baseURL. A zero timeout leaves the
// transport default in place.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login authenticates against POST /api/auth/login and returns the identity
// (token included) on success. Bad credentials come back as *AuthError with
// the backend's message untouched.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	var identity models.Identity
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &identity); err != nil {
		return nil, err
	}
	if len(identity.Roles) == 0 {
		return nil, &AuthError{StatusCode: http.StatusUnauthorized, Message: "login response carried no roles"}
	}
	return &identity, nil
}

// Employees

func (c *Client) ListEmployees(ctx context.Context, token string) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, token string, in models.Employee) (models.Employee, error) {
	var out models.Employee
	err := c.do(ctx, http.MethodPost, "/api/employees", token, in, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, token string, id int64, in models.Employee) (models.Employee, error) {
	var out models.Employee
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/employees/%d", id), token, in, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), token, nil, nil)
}

// Hardware

func (c *Client) ListHardware(ctx context.Context, token string) ([]models.HardwareItem, error) {
	var out []models.HardwareItem
	if err := c.do(ctx, http.MethodGet, "/api/hardware", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateHardware(ctx context.Context, token string, in models.HardwareItem) (models.HardwareItem, error) {
	var out models.HardwareItem
	err := c.do(ctx, http.MethodPost, "/api/hardware", token, in, &out)
	return out, err
}

func (c *Client) UpdateHardware(ctx context.Context, token string, id int64, in models.HardwareItem) (models.HardwareItem, error) {
	var out models.HardwareItem
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/hardware/%d", id), token, in, &out)
	return out, err
}

func (c *Client) DeleteHardware(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/hardware/%d", id), token, nil, nil)
}

// Licenses

func (c *Client) ListLicenses(ctx context.Context, token string) ([]models.LicenseItem, error) {
	var out []models.LicenseItem
	if err := c.do(ctx, http.MethodGet, "/api/licenses", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLicense(ctx context.Context, token string, in models.LicenseItem) (models.LicenseItem, error) {
	var out models.LicenseItem
	err := c.do(ctx, http.MethodPost, "/api/licenses", token, in, &out)
	return out, err
}

func (c *Client) UpdateLicense(ctx context.Context, token string, id int64, in models.LicenseItem) (models.LicenseItem, error) {
	var out models.LicenseItem
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/licenses/%d", id), token, in, &out)
	return out, err
}

func (c *Client) DeleteLicense(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/licenses/%d", id), token, nil, nil)
}

// Web accesses

func (c *Client) ListWebAccesses(ctx context.Context, token string) ([]models.WebAccess, error) {
	var out []models.WebAccess
	if err := c.do(ctx, http.MethodGet, "/api/web-accesses", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateWebAccess(ctx context.Context, token string, in models.WebAccess) (models.WebAccess, error) {
	var out models.WebAccess
	err := c.do(ctx, http.MethodPost, "/api/web-accesses", token, in, &out)
	return out, err
}

func (c *Client) UpdateWebAccess(ctx context.Context, token string, id int64, in models.WebAccess) (models.WebAccess, error) {
	var out models.WebAccess
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/web-accesses/%d", id), token, in, &out)
	return out, err
}

func (c *Client) DeleteWebAccess(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/web-accesses/%d", id), token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, Err: errors.Wrap(err, "marshal request")}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: errors.Wrap(err, "create request")}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: errors.Wrap(err, "backend unreachable")}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode, Message: backendMessage(resp.Body, "credenciales o token invalido")}
	case resp.StatusCode >= 400:
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(backendMessage(resp.Body, http.StatusText(resp.StatusCode)))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: errors.Wrap(err, "decode response")}
	}
	return nil
}

// backendMessage pulls a human-readable message out of an error body. The
// backend wraps errors as {"message": ...}; anything else falls back to the
// raw text or the given default.
func backendMessage(body io.Reader, fallback string) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return fallback
	}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fallback
}
