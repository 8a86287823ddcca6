package web

import (
	"net/http"
	"time"

	"github.com/VigyanSetu/WS-Frontend/internal/api"
	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"github.com/VigyanSetu/WS-Frontend/internal/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const flowCookie = "wizard_flow"

type wizardPage struct {
	basePage
	StepNumber      int
	StepName        string
	Action          string
	Draft           models.RegistrationDraft
	Errors          wizard.FieldErrors
	Workshops       []models.Workshop
	Locked          bool
	ReferralSources []string
}

type wizardDonePage struct {
	basePage
	Result models.Registration
}

// stepFields lists the form inputs belonging to each step. On a post, every
// field of the active step is applied, present or not, so clearing an input
// or unchecking a box takes effect.
var stepFields = map[wizard.Step][]string{
	wizard.StepStudentInfo:       {"studentName", "schoolName", "std"},
	wizard.StepContactDetails:    {"mobileNumber", "alternateNumber", "email", "address", "isPuneResident", "referralSource"},
	wizard.StepWorkshopSelection: {"workshopId", "message"},
	wizard.StepPayment:           {"paymentProofUrl", "agreeToTerms"},
}

// pruneFlows drops wizard instances idle past the TTL; the caller holds
// h.mu.
func (h *Handler) pruneFlows(now time.Time) {
	for id, f := range h.flows {
		if now.Sub(f.touched) > flowTTL {
			delete(h.flows, id)
		}
	}
}

// lookupFlow finds the request's wizard instance, if it still exists and
// fits the requested workshop.
func (h *Handler) lookupFlow(r *http.Request, workshopID string) (*wizard.Wizard, bool) {
	cookie, err := r.Cookie(flowCookie)
	if err != nil {
		return nil, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.pruneFlows(time.Now())

	f, ok := h.flows[cookie.Value]
	if !ok {
		return nil, false
	}
	// A link to a different workshop starts a fresh flow.
	if workshopID != "" && f.wiz.Draft().WorkshopID != workshopID {
		delete(h.flows, cookie.Value)
		return nil, false
	}

	f.touched = time.Now()
	return f.wiz, true
}

func (h *Handler) storeFlow(w http.ResponseWriter, wiz *wizard.Wizard) {
	id := uuid.New().String()

	h.mu.Lock()
	h.flows[id] = &flow{wiz: wiz, touched: time.Now()}
	h.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     flowCookie,
		Value:    id,
		Path:     "/register",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) dropFlow(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(flowCookie); err == nil {
		h.mu.Lock()
		delete(h.flows, cookie.Value)
		h.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flowCookie,
		Value:  "",
		Path:   "/register",
		MaxAge: -1,
	})
}

func (h *Handler) renderWizard(w http.ResponseWriter, r *http.Request, wiz *wizard.Wizard) {
	if wiz.Step() == wizard.StepCompleted {
		page := wizardDonePage{basePage: h.base(r, "Registration received")}
		if result := wiz.Result(); result != nil {
			page.Result = *result
		}
		h.dropFlow(w, r)
		h.render(w, "wizard_done", page)
		return
	}

	page := wizardPage{
		basePage:        h.base(r, "Register"),
		StepNumber:      int(wiz.Step()) + 1,
		StepName:        wiz.Step().String(),
		Action:          r.URL.Path,
		Draft:           wiz.Draft(),
		Errors:          wiz.Errors(),
		Workshops:       wiz.Workshops(),
		Locked:          wiz.Locked(),
		ReferralSources: wizard.ReferralSources,
	}
	page.Banner = wiz.SubmitError()
	page.DismissURL = r.URL.Path + "?dismiss=1"
	h.render(w, "wizard", page)
}

func (h *Handler) WizardPage(w http.ResponseWriter, r *http.Request) {
	workshopID := chi.URLParam(r, "workshopID")

	wiz, ok := h.lookupFlow(r, workshopID)
	if !ok {
		wiz = wizard.New(h.client, h.sessions)
		if err := wiz.Start(r.Context(), workshopID); err != nil {
			if api.IsNotFound(err) {
				page := workshopDetailPage{basePage: h.base(r, "Workshop"), NotFound: true}
				h.render(w, "workshop_detail", page)
				return
			}
			logHandlerError("wizard start", err)
			page := wizardPage{
				basePage:        h.base(r, "Register"),
				StepNumber:      1,
				StepName:        wizard.StepStudentInfo.String(),
				Action:          r.URL.Path,
				ReferralSources: wizard.ReferralSources,
			}
			page.Banner = bannerFrom(err)
			h.render(w, "wizard", page)
			return
		}
		h.storeFlow(w, wiz)
	}

	if r.URL.Query().Get("dismiss") == "1" {
		wiz.DismissError()
	}

	h.renderWizard(w, r, wiz)
}

func (h *Handler) WizardAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	wiz, ok := h.lookupFlow(r, chi.URLParam(r, "workshopID"))
	if !ok {
		// The draft is gone (expired or never started); start over.
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	for _, field := range stepFields[wiz.Step()] {
		wiz.SetField(field, r.PostFormValue(field))
	}

	switch r.PostFormValue("action") {
	case "next":
		wiz.Next()
	case "back":
		wiz.Back()
	case "submit":
		if err := wiz.Submit(r.Context()); err != nil {
			logHandlerError("wizard submit", err)
		}
	}

	h.renderWizard(w, r, wiz)
}
