package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Pablo-Mora/gestion-activos/internal/acta"
	"github.com/Pablo-Mora/gestion-activos/internal/config"
	"github.com/Pablo-Mora/gestion-activos/internal/controller"
	"github.com/Pablo-Mora/gestion-activos/internal/directory"
	"github.com/Pablo-Mora/gestion-activos/internal/models"
	"github.com/Pablo-Mora/gestion-activos/internal/policy"
	"github.com/Pablo-Mora/gestion-activos/internal/session"
)

// Server renders the administrative console and proxies every data operation
// to the asset directory backend through the session's bearer token.
type Server struct {
	cfg      *config.Config
	logger   zerolog.Logger
	client   *directory.Client
	sessions *session.Store
	tmpl     *template.Template
	metrics  *Metrics

	employees   *controller.Resource[models.Employee]
	hardware    *controller.Resource[models.HardwareItem]
	licenses    *controller.Resource[models.LicenseItem]
	webAccesses *controller.Resource[models.WebAccess]

	// renderActa is swappable in tests.
	renderActa func(models.Identity, models.AssignmentView) ([]byte, error)
	now        func() time.Time
}

// NewServer wires the console against a directory client and session store.
func NewServer(cfg *config.Config, logger zerolog.Logger, client *directory.Client, sessions *session.Store) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		sessions:   sessions,
		tmpl:       parseTemplates(),
		metrics:    NewMetrics(),
		renderActa: acta.Render,
		now:        time.Now,
	}

	token := sessions.Token

	s.employees = controller.New("employees", controller.Ops[models.Employee]{
		List: func(ctx context.Context) ([]models.Employee, error) {
			return client.ListEmployees(ctx, token())
		},
		Create: func(ctx context.Context, in models.Employee) (models.Employee, error) {
			return client.CreateEmployee(ctx, token(), in)
		},
		Update: func(ctx context.Context, id int64, in models.Employee) (models.Employee, error) {
			return client.UpdateEmployee(ctx, token(), id, in)
		},
		Delete: func(ctx context.Context, id int64) error {
			return client.DeleteEmployee(ctx, token(), id)
		},
	}, controller.ValidateEmployee, func(e models.Employee) int64 { return e.ID })

	s.hardware = controller.New("hardware", controller.Ops[models.HardwareItem]{
		List: func(ctx context.Context) ([]models.HardwareItem, error) {
			return client.ListHardware(ctx, token())
		},
		Create: func(ctx context.Context, in models.HardwareItem) (models.HardwareItem, error) {
			return client.CreateHardware(ctx, token(), in)
		},
		Update: func(ctx context.Context, id int64, in models.HardwareItem) (models.HardwareItem, error) {
			return client.UpdateHardware(ctx, token(), id, in)
		},
		Delete: func(ctx context.Context, id int64) error {
			return client.DeleteHardware(ctx, token(), id)
		},
	}, controller.ValidateHardware, func(h models.HardwareItem) int64 { return h.ID })

	s.licenses = controller.New("licenses", controller.Ops[models.LicenseItem]{
		List: func(ctx context.Context) ([]models.LicenseItem, error) {
			return client.ListLicenses(ctx, token())
		},
		Create: func(ctx context.Context, in models.LicenseItem) (models.LicenseItem, error) {
			return client.CreateLicense(ctx, token(), in)
		},
		Update: func(ctx context.Context, id int64, in models.LicenseItem) (models.LicenseItem, error) {
			return client.UpdateLicense(ctx, token(), id, in)
		},
		Delete: func(ctx context.Context, id int64) error {
			return client.DeleteLicense(ctx, token(), id)
		},
	}, controller.ValidateLicense, func(l models.LicenseItem) int64 { return l.ID })

	s.webAccesses = controller.New("web-accesses", controller.Ops[models.WebAccess]{
		List: func(ctx context.Context) ([]models.WebAccess, error) {
			return client.ListWebAccesses(ctx, token())
		},
		Create: func(ctx context.Context, in models.WebAccess) (models.WebAccess, error) {
			return client.CreateWebAccess(ctx, token(), in)
		},
		Update: func(ctx context.Context, id int64, in models.WebAccess) (models.WebAccess, error) {
			return client.UpdateWebAccess(ctx, token(), id, in)
		},
		Delete: func(ctx context.Context, id int64) error {
			return client.DeleteWebAccess(ctx, token(), id)
		},
	}, controller.ValidateWebAccess, func(w models.WebAccess) int64 { return w.ID })

	return s
}

// Router builds the full route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(logRequests(s.logger))
	if s.cfg.EnableMetrics {
		r.Use(s.metrics.Middleware())
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/health", s.handleHealth)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(s.guard())
		pr.Get("/dashboard", s.handleDashboard)
		pr.Get("/my-assets", s.handleMyAssets)
		pr.Get("/my-assets/acta.pdf", s.handleActaDownload)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(s.guard(models.RoleAdmin))

		s.mountResource(ar, "/employees", resourceRoutes{
			list:    s.handleEmployeeList,
			newForm: s.handleEmployeeNew,
			create:  s.handleEmployeeCreate,
			edit:    s.handleEmployeeEdit,
			update:  s.handleEmployeeUpdate,
			confirm: s.handleEmployeeConfirmDelete,
			delete:  s.handleEmployeeDelete,
			dismiss: s.handleEmployeeDismiss,
		})
		s.mountResource(ar, "/hardware", resourceRoutes{
			list:    s.handleHardwareList,
			newForm: s.handleHardwareNew,
			create:  s.handleHardwareCreate,
			edit:    s.handleHardwareEdit,
			update:  s.handleHardwareUpdate,
			confirm: s.handleHardwareConfirmDelete,
			delete:  s.handleHardwareDelete,
			dismiss: s.handleHardwareDismiss,
		})
		s.mountResource(ar, "/licenses", resourceRoutes{
			list:    s.handleLicenseList,
			newForm: s.handleLicenseNew,
			create:  s.handleLicenseCreate,
			edit:    s.handleLicenseEdit,
			update:  s.handleLicenseUpdate,
			confirm: s.handleLicenseConfirmDelete,
			delete:  s.handleLicenseDelete,
			dismiss: s.handleLicenseDismiss,
		})
		s.mountResource(ar, "/web-accesses", resourceRoutes{
			list:    s.handleWebAccessList,
			newForm: s.handleWebAccessNew,
			create:  s.handleWebAccessCreate,
			edit:    s.handleWebAccessEdit,
			update:  s.handleWebAccessUpdate,
			confirm: s.handleWebAccessConfirmDelete,
			delete:  s.handleWebAccessDelete,
			dismiss: s.handleWebAccessDismiss,
		})

		ar.Get("/export/report.xlsx", s.handleExport)
	})

	r.NotFound(s.handleNotFound)
	return r
}

type resourceRoutes struct {
	list    http.HandlerFunc
	newForm http.HandlerFunc
	create  http.HandlerFunc
	edit    http.HandlerFunc
	update  http.HandlerFunc
	confirm http.HandlerFunc
	delete  http.HandlerFunc
	dismiss http.HandlerFunc
}

func (s *Server) mountResource(r chi.Router, prefix string, h resourceRoutes) {
	r.Route(prefix, func(rr chi.Router) {
		rr.Get("/", h.list)
		rr.Get("/new", h.newForm)
		rr.Post("/", h.create)
		rr.Post("/dismiss", h.dismiss)
		rr.Get("/{id}/edit", h.edit)
		rr.Post("/{id}", h.update)
		rr.Get("/{id}/delete", h.confirm)
		rr.Post("/{id}/delete", h.delete)
	})
}

type ctxKey int

const identityKey ctxKey = iota

func withIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func identityFrom(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(identityKey).(*models.Identity)
	return identity
}

// guard enforces the route's role requirement on every request. Requests
// without a session go to the login page, requests with a session but the
// wrong role go to the default landing page.
func (s *Server) guard(required ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := s.sessions.Current()
			switch policy.Authorize(identity, required) {
			case policy.RedirectToLogin:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			case policy.RedirectToDefault:
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleNotFound sends unknown paths to wherever the session state says the
// user belongs.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Current() != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// expireSession handles a backend token rejection mid-session: the local
// session is dropped and the user is sent back to the login page. Returns
// true when the error was an auth failure and the response is written.
func (s *Server) expireSession(w http.ResponseWriter, r *http.Request, err error) bool {
	var authErr *directory.AuthError
	if !errors.As(err, &authErr) {
		return false
	}
	s.logger.Warn().Int("status", authErr.StatusCode).Msg("backend rejected session token")
	if clearErr := s.sessions.Clear(); clearErr != nil {
		s.logger.Error().Err(clearErr).Msg("clearing session failed")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}
