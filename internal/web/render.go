package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"dec": func(i int) int { return i - 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

// basePage carries what the layout needs on every view.
type basePage struct {
	Title      string
	User       *models.User
	Banner     string
	DismissURL string
}

func (h *Handler) base(r *http.Request, title string) basePage {
	state := h.sessions.Snapshot()
	return basePage{
		Title:      title,
		User:       state.User,
		DismissURL: r.URL.Path,
	}
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[web] render %s: %v", name, err)
	}
}
