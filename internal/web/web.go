// Package web serves the portal's client-side routes with server-rendered
// views. One running process is one user session.
package web

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/VigyanSetu/WS-Frontend/internal/api"
	"github.com/VigyanSetu/WS-Frontend/internal/guard"
	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"github.com/VigyanSetu/WS-Frontend/internal/session"
	"github.com/VigyanSetu/WS-Frontend/internal/wizard"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Client is the slice of the API client the views consume.
type Client interface {
	wizard.Client

	UpdateWorkshop(ctx context.Context, id string, w models.Workshop) (*models.Workshop, error)
	CreateWorkshop(ctx context.Context, w models.Workshop) (*models.Workshop, error)
	DeleteWorkshop(ctx context.Context, id string) error

	MyRegistrations(ctx context.Context) ([]models.Registration, error)
	Registrations(ctx context.Context) ([]models.Registration, error)
	Registration(ctx context.Context, id string) (*models.Registration, error)
	UpdateRegistration(ctx context.Context, id string, reg models.Registration) (*models.Registration, error)
	DeleteRegistration(ctx context.Context, id string) error

	Users(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id, role string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// Sessions is the slice of the session store the views consume.
type Sessions interface {
	Snapshot() session.State
	Login(ctx context.Context, email, password string) (*models.User, error)
	AdminLogin(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, input api.RegisterInput) (*models.User, error)
	Logout()
	UpdateProfile(ctx context.Context, input api.ProfileUpdate) (*models.User, error)
}

// flowTTL is how long an idle wizard instance is kept before its draft is
// discarded.
const flowTTL = time.Hour

type flow struct {
	wiz     *wizard.Wizard
	touched time.Time
}

// Handler holds everything the views need.
type Handler struct {
	client   Client
	sessions Sessions

	mu    sync.Mutex
	flows map[string]*flow
}

func NewHandler(client Client, sessions Sessions) *Handler {
	return &Handler{
		client:   client,
		sessions: sessions,
		flows:    make(map[string]*flow),
	}
}

// SetupRoutes mounts every client-side route of the portal.
func (h *Handler) SetupRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Public.
	r.Get("/", h.Home)
	r.Get("/workshops", h.WorkshopList)
	r.Get("/workshops/{id}", h.WorkshopDetail)
	r.Get("/register", h.WizardPage)
	r.Get("/register/{workshopID}", h.WizardPage)
	r.Post("/register", h.WizardAction)
	r.Post("/register/{workshopID}", h.WizardAction)
	r.Get("/auth/login", h.LoginPage)
	r.Post("/auth/login", h.Login)
	r.Get("/auth/register", h.SignupPage)
	r.Post("/auth/register", h.Signup)
	r.Get("/admin", h.AdminLoginPage)
	r.Post("/admin", h.AdminLogin)
	r.Post("/logout", h.Logout)

	// Authenticated user.
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(h.sessions))
		r.Get("/dashboard", h.Dashboard)
		r.Get("/profile", h.ProfilePage)
		r.Post("/profile", h.UpdateProfile)
		r.Get("/my-registrations", h.MyRegistrations)
	})

	// Admin and organizer.
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(h.sessions, models.RoleAdmin, models.RoleOrganizer))
		r.Get("/admin/dashboard", h.AdminDashboard)
		r.Get("/admin/registrations", h.AdminRegistrations)
		r.Get("/admin/registrations/export.csv", h.ExportRegistrationsCSV)
		r.Post("/admin/registrations/{id}/status", h.UpdateRegistrationStatus)
		r.Get("/admin/registrations/{id}/delete", h.ConfirmDeleteRegistration)
		r.Post("/admin/registrations/{id}/delete", h.DeleteRegistration)
	})

	// Admin only.
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(h.sessions, models.RoleAdmin))
		r.Get("/admin/workshops", h.AdminWorkshops)
		r.Post("/admin/workshops", h.CreateWorkshop)
		r.Get("/admin/workshops/{id}/edit", h.EditWorkshopPage)
		r.Post("/admin/workshops/{id}", h.UpdateWorkshop)
		r.Get("/admin/workshops/{id}/delete", h.ConfirmDeleteWorkshop)
		r.Post("/admin/workshops/{id}/delete", h.DeleteWorkshop)
		r.Get("/admin/users", h.AdminUsers)
		r.Post("/admin/users/{id}/role", h.SetUserRole)
		r.Get("/admin/users/{id}/delete", h.ConfirmDeleteUser)
		r.Post("/admin/users/{id}/delete", h.DeleteUser)
	})

	r.NotFound(h.NotFound)
	return r
}

// bannerFrom turns a backend error into the dismissible banner text.
func bannerFrom(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "something went wrong, please try again"
}

func logHandlerError(view string, err error) {
	log.Printf("[web] %s: %v", view, err)
}
