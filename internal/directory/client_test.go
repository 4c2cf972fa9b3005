package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana", req.Username)
		assert.Equal(t, "secreto", req.Password)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token":    "jwt-abc",
			"id":       7,
			"username": "ana",
			"email":    "ana@example.com",
			"roles":    []string{"ROLE_USER"},
		})
	}))
	defer backend.Close()

	client := New(backend.URL, time.Second)
	identity, err := client.Login(context.Background(), "ana", "secreto")
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.ID)
	assert.Equal(t, "jwt-abc", identity.Token)
	assert.Equal(t, []models.Role{models.RoleUser}, identity.Roles)
}

func TestLoginBadCredentials(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer backend.Close()

	client := New(backend.URL, time.Second)
	_, err := client.Login(context.Background(), "ana", "wrong")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	// The backend's message is surfaced verbatim.
	assert.Equal(t, "Bad credentials", authErr.Message)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestListHardwareSendsBearerToken(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		require.Equal(t, "/api/hardware", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "type": "laptop", "serialNumber": "SN-1", "assignedEmployeeId": 7, "assignedEmployeeName": "Ana Gomez"},
			{"id": 2, "type": "monitor", "serialNumber": "SN-2", "assignedEmployeeId": nil},
		})
	}))
	defer backend.Close()

	client := New(backend.URL, time.Second)
	items, err := client.ListHardware(context.Background(), "jwt-abc")
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].AssignedEmployeeID)
	assert.Equal(t, int64(7), *items[0].AssignedEmployeeID)
	assert.Equal(t, "Ana Gomez", items[0].AssignedEmployeeName)
	assert.Nil(t, items[1].AssignedEmployeeID)
}

func TestCreateWebAccessSendsPassword(t *testing.T) {
	// The password is write-only: it goes out on create but is never echoed
	// back by listings.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hunter2", body["accessPassword"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 3, "serviceName": "GitHub", "url": "https://github.com", "accessUsername": "ana"})
	}))
	defer backend.Close()

	client := New(backend.URL, time.Second)
	created, err := client.CreateWebAccess(context.Background(), "jwt", models.WebAccess{
		ServiceName:    "GitHub",
		URL:            "https://github.com",
		AccessUsername: "ana",
		AccessPassword: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Empty(t, created.AccessPassword)
}

func TestDeleteEmployeeNoContent(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/employees/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer backend.Close()

	client := New(backend.URL, time.Second)
	assert.NoError(t, client.DeleteEmployee(context.Background(), "jwt", 5))
}

func TestServerErrorBecomesNetworkError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	client := New(backend.URL, time.Second)
	_, err := client.ListEmployees(context.Background(), "jwt")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
}

func TestUnreachableBackendBecomesNetworkError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // gone before the call

	client := New(backend.URL, time.Second)
	_, err := client.ListLicenses(context.Background(), "jwt")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.StatusCode)
}

func TestExpiredTokenBecomesAuthError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer backend.Close()

	client := New(backend.URL, time.Second)
	err := client.DeleteHardware(context.Background(), "stale", 1)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
}
