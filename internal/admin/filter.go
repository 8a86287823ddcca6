// Package admin holds the view-model logic behind the admin CRUD screens:
// everything is fetched in full and filtered, searched, and paginated in
// memory; there is no server-side pagination.
package admin

import (
	"strings"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

var matcher = search.New(language.English, search.IgnoreCase, search.IgnoreDiacritics)

// contains reports whether any of the fields contain the query.
func contains(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if start, _ := matcher.IndexString(f, query); start >= 0 {
			return true
		}
	}
	return false
}

// FilterRegistrations narrows rows by free-text query (student name,
// school, email, workshop interest) and by registration status.
func FilterRegistrations(rows []models.Registration, query, status string) []models.Registration {
	query = strings.TrimSpace(query)
	out := make([]models.Registration, 0, len(rows))
	for _, r := range rows {
		if status != "" && r.RegistrationStatus != status {
			continue
		}
		if !contains(query, r.StudentName, r.SchoolName, r.Email, r.WorkshopInterest) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterWorkshops narrows rows by free-text query over title, description,
// and location.
func FilterWorkshops(rows []models.Workshop, query string) []models.Workshop {
	query = strings.TrimSpace(query)
	out := make([]models.Workshop, 0, len(rows))
	for _, w := range rows {
		if !contains(query, w.Title, w.Description, w.Location) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// FilterUsers narrows rows by free-text query (name, email) and role.
func FilterUsers(rows []models.User, query, role string) []models.User {
	query = strings.TrimSpace(query)
	out := make([]models.User, 0, len(rows))
	for _, u := range rows {
		if role != "" && u.Role != role {
			continue
		}
		if !contains(query, u.Name, u.Email) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Page describes one slice of a filtered collection.
type Page struct {
	Number  int
	PerPage int
	Total   int
	Pages   int
	Start   int // inclusive
	End     int // exclusive
}

// Paginate computes the bounds of page number over total rows. Page
// numbers are 1-based; out-of-range numbers clamp to the nearest valid
// page.
func Paginate(total, number, perPage int) Page {
	if perPage <= 0 {
		perPage = 10
	}
	pages := (total + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Number:  number,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		Start:   start,
		End:     end,
	}
}
