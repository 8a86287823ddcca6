package web

import (
	"net/http"

	"github.com/VigyanSetu/WS-Frontend/internal/api"
	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

type registrationsPage struct {
	basePage
	Registrations []models.Registration
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	page := registrationsPage{basePage: h.base(r, "Dashboard")}

	registrations, err := h.client.MyRegistrations(r.Context())
	if err != nil {
		logHandlerError("dashboard registrations", err)
		page.Banner = bannerFrom(err)
	} else {
		page.Registrations = registrations
	}

	h.render(w, "dashboard", page)
}

func (h *Handler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "profile", struct{ basePage }{h.base(r, "Profile")})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	input := api.ProfileUpdate{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: r.PostFormValue("phone"),
	}
	if _, err := h.sessions.UpdateProfile(r.Context(), input); err != nil {
		logHandlerError("update profile", err)
		page := struct{ basePage }{h.base(r, "Profile")}
		page.Banner = bannerFrom(err)
		h.render(w, "profile", page)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *Handler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	page := registrationsPage{basePage: h.base(r, "My registrations")}

	registrations, err := h.client.MyRegistrations(r.Context())
	if err != nil {
		logHandlerError("my registrations", err)
		page.Banner = bannerFrom(err)
	} else {
		page.Registrations = registrations
	}

	h.render(w, "my_registrations", page)
}
