package web

import (
	"net/http"

	"github.com/VigyanSetu/WS-Frontend/internal/api"
	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"github.com/go-chi/chi/v5"
)

type workshopListPage struct {
	basePage
	Workshops []models.Workshop
}

type workshopDetailPage struct {
	basePage
	Workshop models.Workshop
	NotFound bool
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	page := workshopListPage{basePage: h.base(r, "Home")}

	workshops, err := h.client.Workshops(r.Context())
	if err != nil {
		// The home page still renders without the teaser list.
		logHandlerError("home workshops", err)
	} else {
		if len(workshops) > 3 {
			workshops = workshops[:3]
		}
		page.Workshops = workshops
	}

	h.render(w, "home", page)
}

func (h *Handler) WorkshopList(w http.ResponseWriter, r *http.Request) {
	page := workshopListPage{basePage: h.base(r, "Workshops")}

	workshops, err := h.client.Workshops(r.Context())
	if err != nil {
		logHandlerError("workshop list", err)
		page.Banner = bannerFrom(err)
	} else {
		page.Workshops = workshops
	}

	h.render(w, "workshops", page)
}

func (h *Handler) WorkshopDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page := workshopDetailPage{basePage: h.base(r, "Workshop")}

	workshop, err := h.client.Workshop(r.Context(), id)
	switch {
	case api.IsNotFound(err):
		// An unresolvable id is an inline state, not an error banner.
		page.NotFound = true
	case err != nil:
		logHandlerError("workshop detail", err)
		page.Banner = bannerFrom(err)
		page.NotFound = true
	default:
		page.Workshop = *workshop
		page.Title = workshop.Title
	}

	h.render(w, "workshop_detail", page)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, "notfound", struct{ basePage }{h.base(r, "Not found")})
}

type loginPage struct {
	basePage
	Email string
}

type signupPage struct {
	basePage
	Name  string
	Email string
	Phone string
}

type adminLoginPage struct {
	basePage
	Username string
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", loginPage{basePage: h.base(r, "Login")})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	if _, err := h.sessions.Login(r.Context(), email, r.PostFormValue("password")); err != nil {
		page := loginPage{basePage: h.base(r, "Login"), Email: email}
		page.Banner = bannerFrom(err)
		h.render(w, "login", page)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signup", signupPage{basePage: h.base(r, "Sign up")})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	input := api.RegisterInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
		Password: r.PostFormValue("password"),
	}
	if _, err := h.sessions.Register(r.Context(), input); err != nil {
		page := signupPage{
			basePage: h.base(r, "Sign up"),
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
		}
		page.Banner = bannerFrom(err)
		h.render(w, "signup", page)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// AdminLoginPage serves the legacy /admin login view.
func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin_login", adminLoginPage{basePage: h.base(r, "Admin login")})
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	if _, err := h.sessions.AdminLogin(r.Context(), username, r.PostFormValue("password")); err != nil {
		page := adminLoginPage{basePage: h.base(r, "Admin login"), Username: username}
		page.Banner = bannerFrom(err)
		h.render(w, "admin_login", page)
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
