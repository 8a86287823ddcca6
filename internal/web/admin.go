package web

import (
	"net/http"
	"strconv"

	"github.com/VigyanSetu/WS-Frontend/internal/admin"
	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"github.com/go-chi/chi/v5"
)

// registrationStatuses are the backend-owned status values offered in the
// filter dropdown.
var registrationStatuses = []string{"pending", "confirmed", "cancelled"}

var roles = []string{models.RoleUser, models.RoleOrganizer, models.RoleAdmin}

const adminPageSize = 20

type adminDashboardPage struct {
	basePage
	Stats models.DashboardStats
}

type adminRegistrationsPage struct {
	basePage
	Registrations []models.Registration
	Query         string
	Status        string
	Statuses      []string
	Page          admin.Page
}

type adminWorkshopsPage struct {
	basePage
	Workshops []models.Workshop
	Query     string
	Page      admin.Page
}

type adminUsersPage struct {
	basePage
	Users []models.User
	Query string
	Role  string
	Roles []string
	Page  admin.Page
}

type confirmDeletePage struct {
	basePage
	What      string
	Label     string
	Action    string
	CancelURL string
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return n
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	page := adminDashboardPage{basePage: h.base(r, "Admin dashboard")}

	stats, err := h.client.DashboardStats(r.Context())
	if err != nil {
		logHandlerError("admin dashboard", err)
		page.Banner = bannerFrom(err)
	} else {
		page.Stats = *stats
	}

	h.render(w, "admin_dashboard", page)
}

// filteredRegistrations fetches everything and applies the current query
// parameters in memory. The CSV export reuses it so the download matches
// exactly what the table shows.
func (h *Handler) filteredRegistrations(r *http.Request) ([]models.Registration, string, string, error) {
	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")

	rows, err := h.client.Registrations(r.Context())
	if err != nil {
		return nil, query, status, err
	}
	return admin.FilterRegistrations(rows, query, status), query, status, nil
}

func (h *Handler) AdminRegistrations(w http.ResponseWriter, r *http.Request) {
	h.renderAdminRegistrations(w, r, "")
}

// renderAdminRegistrations draws the registrations list. Mutation handlers
// re-render it with a banner when the backend rejects an action, so the
// failure is visible next to the table it concerns.
func (h *Handler) renderAdminRegistrations(w http.ResponseWriter, r *http.Request, banner string) {
	rows, query, status, err := h.filteredRegistrations(r)
	page := adminRegistrationsPage{
		basePage: h.base(r, "Registrations"),
		Query:    query,
		Status:   status,
		Statuses: registrationStatuses,
	}
	page.Banner = banner
	page.DismissURL = "/admin/registrations"
	if err != nil {
		logHandlerError("admin registrations", err)
		page.Banner = bannerFrom(err)
		page.Page = admin.Paginate(0, 1, adminPageSize)
		h.render(w, "admin_registrations", page)
		return
	}

	page.Page = admin.Paginate(len(rows), pageParam(r), adminPageSize)
	page.Registrations = rows[page.Page.Start:page.Page.End]
	h.render(w, "admin_registrations", page)
}

// ExportRegistrationsCSV downloads the currently filtered rows.
func (h *Handler) ExportRegistrationsCSV(w http.ResponseWriter, r *http.Request) {
	rows, _, _, err := h.filteredRegistrations(r)
	if err != nil {
		logHandlerError("registrations export", err)
		http.Error(w, bannerFrom(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.csv"`)
	if err := admin.WriteRegistrationsCSV(w, rows); err != nil {
		logHandlerError("registrations export", err)
	}
}

func (h *Handler) UpdateRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	reg, err := h.client.Registration(r.Context(), id)
	if err != nil {
		logHandlerError("load registration", err)
		h.renderAdminRegistrations(w, r, bannerFrom(err))
		return
	}

	if s := r.PostFormValue("registrationStatus"); s != "" {
		reg.RegistrationStatus = s
	}
	if s := r.PostFormValue("paymentStatus"); s != "" {
		reg.PaymentStatus = s
	}
	if _, err := h.client.UpdateRegistration(r.Context(), id, *reg); err != nil {
		logHandlerError("update registration", err)
		h.renderAdminRegistrations(w, r, bannerFrom(err))
		return
	}

	// Re-fetch happens on the redirect target.
	http.Redirect(w, r, "/admin/registrations", http.StatusSeeOther)
}

func (h *Handler) ConfirmDeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page := confirmDeletePage{
		basePage:  h.base(r, "Confirm delete"),
		What:      "registration",
		Label:     id,
		Action:    "/admin/registrations/" + id + "/delete",
		CancelURL: "/admin/registrations",
	}

	if reg, err := h.client.Registration(r.Context(), id); err == nil {
		page.Label = reg.StudentName + " — " + reg.WorkshopInterest
	}
	h.render(w, "confirm_delete", page)
}

func (h *Handler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteRegistration(r.Context(), chi.URLParam(r, "id")); err != nil {
		logHandlerError("delete registration", err)
		h.renderAdminRegistrations(w, r, bannerFrom(err))
		return
	}
	http.Redirect(w, r, "/admin/registrations", http.StatusSeeOther)
}

func (h *Handler) AdminWorkshops(w http.ResponseWriter, r *http.Request) {
	h.renderAdminWorkshops(w, r, "")
}

func (h *Handler) renderAdminWorkshops(w http.ResponseWriter, r *http.Request, banner string) {
	query := r.URL.Query().Get("q")
	page := adminWorkshopsPage{basePage: h.base(r, "Manage workshops"), Query: query}
	page.Banner = banner
	page.DismissURL = "/admin/workshops"

	rows, err := h.client.Workshops(r.Context())
	if err != nil {
		logHandlerError("admin workshops", err)
		page.Banner = bannerFrom(err)
		page.Page = admin.Paginate(0, 1, adminPageSize)
		h.render(w, "admin_workshops", page)
		return
	}

	filtered := admin.FilterWorkshops(rows, query)
	page.Page = admin.Paginate(len(filtered), pageParam(r), adminPageSize)
	page.Workshops = filtered[page.Page.Start:page.Page.End]
	h.render(w, "admin_workshops", page)
}

type workshopEditPage struct {
	basePage
	Workshop models.Workshop
}

func (h *Handler) EditWorkshopPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	workshop, err := h.client.Workshop(r.Context(), id)
	if err != nil {
		logHandlerError("load workshop", err)
		h.renderAdminWorkshops(w, r, bannerFrom(err))
		return
	}

	page := workshopEditPage{basePage: h.base(r, "Edit workshop"), Workshop: *workshop}
	h.render(w, "admin_workshop_edit", page)
}

// workshopFromForm builds the full replacement record the backend expects.
func workshopFromForm(r *http.Request) models.Workshop {
	fee, _ := strconv.ParseFloat(r.PostFormValue("fee"), 64)
	minStd, _ := strconv.Atoi(r.PostFormValue("minStd"))
	maxStd, _ := strconv.Atoi(r.PostFormValue("maxStd"))
	capacity, _ := strconv.Atoi(r.PostFormValue("capacity"))

	return models.Workshop{
		Title:                r.PostFormValue("title"),
		Description:          r.PostFormValue("description"),
		Date:                 r.PostFormValue("date"),
		Time:                 r.PostFormValue("time"),
		Location:             r.PostFormValue("location"),
		Fee:                  fee,
		Eligibility:          models.Eligibility{MinStd: minStd, MaxStd: maxStd},
		RegistrationDeadline: r.PostFormValue("registrationDeadline"),
		Capacity:             capacity,
		Status:               r.PostFormValue("status"),
	}
}

func (h *Handler) CreateWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if _, err := h.client.CreateWorkshop(r.Context(), workshopFromForm(r)); err != nil {
		logHandlerError("create workshop", err)
		h.renderAdminWorkshops(w, r, bannerFrom(err))
		return
	}
	http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
}

func (h *Handler) UpdateWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	workshop := workshopFromForm(r)
	workshop.ID = id
	if _, err := h.client.UpdateWorkshop(r.Context(), id, workshop); err != nil {
		logHandlerError("update workshop", err)
		h.renderAdminWorkshops(w, r, bannerFrom(err))
		return
	}
	http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
}

func (h *Handler) ConfirmDeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page := confirmDeletePage{
		basePage:  h.base(r, "Confirm delete"),
		What:      "workshop",
		Label:     id,
		Action:    "/admin/workshops/" + id + "/delete",
		CancelURL: "/admin/workshops",
	}

	if workshop, err := h.client.Workshop(r.Context(), id); err == nil {
		page.Label = workshop.Title
	}
	h.render(w, "confirm_delete", page)
}

func (h *Handler) DeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteWorkshop(r.Context(), chi.URLParam(r, "id")); err != nil {
		logHandlerError("delete workshop", err)
		h.renderAdminWorkshops(w, r, bannerFrom(err))
		return
	}
	http.Redirect(w, r, "/admin/workshops", http.StatusSeeOther)
}

func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	h.renderAdminUsers(w, r, "")
}

func (h *Handler) renderAdminUsers(w http.ResponseWriter, r *http.Request, banner string) {
	query := r.URL.Query().Get("q")
	role := r.URL.Query().Get("role")
	page := adminUsersPage{
		basePage: h.base(r, "Manage users"),
		Query:    query,
		Role:     role,
		Roles:    roles,
	}
	page.Banner = banner
	page.DismissURL = "/admin/users"

	rows, err := h.client.Users(r.Context())
	if err != nil {
		logHandlerError("admin users", err)
		page.Banner = bannerFrom(err)
		page.Page = admin.Paginate(0, 1, adminPageSize)
		h.render(w, "admin_users", page)
		return
	}

	filtered := admin.FilterUsers(rows, query, role)
	page.Page = admin.Paginate(len(filtered), pageParam(r), adminPageSize)
	page.Users = filtered[page.Page.Start:page.Page.End]
	h.render(w, "admin_users", page)
}

func (h *Handler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	if _, err := h.client.UpdateUserRole(r.Context(), chi.URLParam(r, "id"), r.PostFormValue("role")); err != nil {
		logHandlerError("set user role", err)
		h.renderAdminUsers(w, r, bannerFrom(err))
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (h *Handler) ConfirmDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page := confirmDeletePage{
		basePage:  h.base(r, "Confirm delete"),
		What:      "user",
		Label:     id,
		Action:    "/admin/users/" + id + "/delete",
		CancelURL: "/admin/users",
	}
	h.render(w, "confirm_delete", page)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.client.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		logHandlerError("delete user", err)
		h.renderAdminUsers(w, r, bannerFrom(err))
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
