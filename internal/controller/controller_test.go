package controller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Pablo-Mora/gestion-activos/internal/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employeeController(ops Ops[models.Employee]) *Resource[models.Employee] {
	return New("employees", ops, ValidateEmployee, func(e models.Employee) int64 { return e.ID })
}

func TestListSuccess(t *testing.T) {
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			return []models.Employee{{ID: 1, Name: "Ana"}}, nil
		},
	})

	assert.Equal(t, StateIdle, ctrl.State())
	require.NoError(t, ctrl.List(context.Background()))
	assert.Equal(t, StateLoaded, ctrl.State())
	require.Len(t, ctrl.Items(), 1)
	assert.NoError(t, ctrl.LoadErr())
}

func TestListFailureRetainsPriorData(t *testing.T) {
	fail := false
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			if fail {
				return nil, errors.New("backend down")
			}
			return []models.Employee{{ID: 1, Name: "Ana"}}, nil
		},
	})

	require.NoError(t, ctrl.List(context.Background()))
	fail = true
	require.Error(t, ctrl.List(context.Background()))

	assert.Equal(t, StateLoadFailed, ctrl.State())
	assert.EqualError(t, ctrl.LoadErr(), "backend down")
	// Prior data stays on screen alongside the error.
	require.Len(t, ctrl.Items(), 1)
}

func TestCreateValidationBlocksNetwork(t *testing.T) {
	var createCalls, listCalls int32
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			atomic.AddInt32(&listCalls, 1)
			return nil, nil
		},
		Create: func(ctx context.Context, e models.Employee) (models.Employee, error) {
			atomic.AddInt32(&createCalls, 1)
			return e, nil
		},
	})

	err := ctrl.Create(context.Background(), models.Employee{Name: "", Department: "IT"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Zero(t, atomic.LoadInt32(&createCalls))
	assert.Zero(t, atomic.LoadInt32(&listCalls))
}

func TestCreateRefetchesAfterResponse(t *testing.T) {
	var order []string
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			order = append(order, "list")
			return []models.Employee{{ID: 1, Name: "Ana"}}, nil
		},
		Create: func(ctx context.Context, e models.Employee) (models.Employee, error) {
			order = append(order, "create")
			e.ID = 1
			return e, nil
		},
	})

	require.NoError(t, ctrl.Create(context.Background(), models.Employee{Name: "Ana"}))
	// Strict sequencing: the refetch is issued only after the mutation's
	// response arrived.
	assert.Equal(t, []string{"create", "list"}, order)
	assert.Equal(t, StateLoaded, ctrl.State())
	require.Len(t, ctrl.Items(), 1)
}

func TestFailedDeleteRetainsListAndAttachesError(t *testing.T) {
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			return []models.Employee{{ID: 4, Name: "Ana"}, {ID: 5, Name: "Luis"}}, nil
		},
		Delete: func(ctx context.Context, id int64) error {
			return errors.New("delete rejected")
		},
	})
	require.NoError(t, ctrl.List(context.Background()))

	require.Error(t, ctrl.Delete(context.Background(), 5))

	assert.Equal(t, StateSubmitFailed, ctrl.State())
	assert.EqualError(t, ctrl.SubmitErr(), "delete rejected")

	// The previously loaded list, id 5 included, is unchanged.
	items := ctrl.Items()
	require.Len(t, items, 2)
	found, ok := ctrl.Find(5)
	require.True(t, ok)
	assert.Equal(t, "Luis", found.Name)
}

func TestSubmitErrClearsOnNextSuccess(t *testing.T) {
	fail := true
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) { return nil, nil },
		Delete: func(ctx context.Context, id int64) error {
			if fail {
				return errors.New("delete rejected")
			}
			return nil
		},
	})
	require.Error(t, ctrl.Delete(context.Background(), 1))
	require.Error(t, ctrl.SubmitErr())

	fail = false
	require.NoError(t, ctrl.Delete(context.Background(), 1))
	assert.NoError(t, ctrl.SubmitErr())
}

func TestDismissClearsErrors(t *testing.T) {
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			return nil, errors.New("backend down")
		},
	})
	require.Error(t, ctrl.List(context.Background()))
	require.Error(t, ctrl.LoadErr())

	ctrl.Dismiss()
	assert.NoError(t, ctrl.LoadErr())
	assert.Equal(t, StateLoaded, ctrl.State())
}

func TestStaleListResponseDropped(t *testing.T) {
	var calls int32
	block := make(chan struct{})
	ctrl := employeeController(Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				<-block
				return []models.Employee{{ID: 1, Name: "stale"}}, nil
			}
			return []models.Employee{{ID: 2, Name: "fresh"}}, nil
		},
	})

	done := make(chan error, 1)
	go func() { done <- ctrl.List(context.Background()) }()

	// Wait for the first fetch to be in flight, then supersede it.
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)
	require.NoError(t, ctrl.List(context.Background()))

	close(block)
	require.NoError(t, <-done)

	// The late response never clobbers the newer data.
	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].Name)
	assert.Equal(t, StateLoaded, ctrl.State())
}

func TestValidateWebAccessPasswordOnCreateOnly(t *testing.T) {
	wa := models.WebAccess{ServiceName: "GitHub", URL: "https://github.com", AccessUsername: "ana"}

	verr := ValidateWebAccess(wa, true)
	require.NotNil(t, verr)
	assert.Equal(t, "is required", verr.Fields["accessPassword"])

	// On update an empty password means "keep the stored one".
	assert.Nil(t, ValidateWebAccess(wa, false))
}

func TestValidateHardwareRequiredFields(t *testing.T) {
	verr := ValidateHardware(models.HardwareItem{Brand: "Dell"}, true)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "type")
	assert.Contains(t, verr.Fields, "serialNumber")

	assert.Nil(t, ValidateHardware(models.HardwareItem{Type: "laptop", SerialNumber: "SN-1"}, true))
}

func TestValidateLicenseRequiredFields(t *testing.T) {
	verr := ValidateLicense(models.LicenseItem{}, true)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "softwareName")
	assert.Contains(t, verr.Fields, "licenseKey")
}
