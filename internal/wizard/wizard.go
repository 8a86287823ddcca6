// Package wizard drives the four-step registration form: student info,
// contact details, workshop selection, payment proof. The draft lives only
// here; it is submitted as one unit and discarded after success.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"github.com/VigyanSetu/WS-Frontend/internal/session"
)

// Step is a wizard state. Steps are strictly ordered; Completed is
// terminal.
type Step int

const (
	StepStudentInfo Step = iota
	StepContactDetails
	StepWorkshopSelection
	StepPayment
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepStudentInfo:
		return "Student Info"
	case StepContactDetails:
		return "Contact Details"
	case StepWorkshopSelection:
		return "Workshop Selection"
	case StepPayment:
		return "Payment"
	case StepCompleted:
		return "Completed"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Client is the slice of the API client the wizard needs.
type Client interface {
	Workshop(ctx context.Context, id string) (*models.Workshop, error)
	Workshops(ctx context.Context) ([]models.Workshop, error)
	SubmitRegistration(ctx context.Context, draft models.RegistrationDraft) (*models.Registration, error)
	SubmitRegistrationWithAccount(ctx context.Context, draft models.RegistrationDraft) (*models.Registration, error)
}

// SessionSource tells the wizard whether to submit as a guest or against
// the caller's account.
type SessionSource interface {
	Snapshot() session.State
}

// Wizard holds one registration flow. It is not safe for concurrent use;
// the web layer drives each instance from a single form flow.
type Wizard struct {
	client Client
	sess   SessionSource
	now    func() time.Time

	step      Step
	draft     models.RegistrationDraft
	errors    FieldErrors
	locked    bool
	workshops []models.Workshop
	result    *models.Registration
	submitErr string
}

func New(client Client, sess SessionSource) *Wizard {
	return &Wizard{
		client: client,
		sess:   sess,
		now:    time.Now,
		step:   StepStudentInfo,
		errors: FieldErrors{},
	}
}

// Start loads the workshop data for the selection step. With a workshop
// identifier supplied the wizard fetches that single workshop and locks
// the selection to it; otherwise it offers every workshop whose
// registration deadline has not passed.
func (w *Wizard) Start(ctx context.Context, workshopID string) error {
	if workshopID != "" {
		workshop, err := w.client.Workshop(ctx, workshopID)
		if err != nil {
			return err
		}
		w.workshops = []models.Workshop{*workshop}
		w.locked = true
		w.draft.WorkshopID = workshop.ID
		w.draft.WorkshopInterest = workshop.Title
		return nil
	}

	all, err := w.client.Workshops(ctx)
	if err != nil {
		return err
	}

	open := make([]models.Workshop, 0, len(all))
	for _, ws := range all {
		if deadlineOpen(ws.RegistrationDeadline, w.now()) {
			open = append(open, ws)
		}
	}
	w.workshops = open
	return nil
}

// deadlineOpen reports whether the deadline has not passed yet. Dates the
// backend sends in an unknown format are treated as still open rather than
// hiding the workshop.
func deadlineOpen(deadline string, now time.Time) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, deadline); err == nil {
			// A date-only deadline means "open through that day".
			if layout == "2006-01-02" {
				t = t.Add(24 * time.Hour)
			}
			return now.Before(t)
		}
	}
	return true
}

// Step returns the active step.
func (w *Wizard) Step() Step { return w.step }

// Draft returns a copy of the accumulated draft.
func (w *Wizard) Draft() models.RegistrationDraft { return w.draft }

// Errors returns the field errors from the last failed advancement.
func (w *Wizard) Errors() FieldErrors { return w.errors }

// Workshops returns the selectable workshops for the selection step.
func (w *Wizard) Workshops() []models.Workshop { return w.workshops }

// Locked reports whether the selection step is locked to a pre-supplied
// workshop.
func (w *Wizard) Locked() bool { return w.locked }

// Result returns the registration produced by a successful submission.
func (w *Wizard) Result() *models.Registration { return w.result }

// SubmitError returns the dismissible top-level submission error, if any.
func (w *Wizard) SubmitError() string { return w.submitErr }

// DismissError clears the top-level submission error.
func (w *Wizard) DismissError() { w.submitErr = "" }

// SetField writes one draft field and clears its pending validation error.
// Unknown names are ignored so stray form inputs cannot corrupt the draft.
func (w *Wizard) SetField(name, value string) {
	switch name {
	case "studentName":
		w.draft.StudentName = value
	case "schoolName":
		w.draft.SchoolName = value
	case "std":
		w.draft.Std = value
	case "mobileNumber":
		w.draft.MobileNumber = value
	case "alternateNumber":
		w.draft.AlternateNumber = value
	case "email":
		w.draft.Email = value
	case "address":
		w.draft.Address = value
	case "isPuneResident":
		w.draft.IsPuneResident = value == "true" || value == "on"
	case "referralSource":
		w.draft.ReferralSource = value
	case "workshopId":
		if !w.locked {
			w.draft.WorkshopID = value
			for _, ws := range w.workshops {
				if ws.ID == value {
					w.draft.WorkshopInterest = ws.Title
				}
			}
		}
	case "message":
		w.draft.Message = value
	case "agreeToTerms":
		w.draft.AgreeToTerms = value == "true" || value == "on"
	case "paymentProofUrl":
		w.draft.PaymentProofURL = value
	default:
		return
	}
	delete(w.errors, name)
}

// Next advances to the following step if the active step validates
// cleanly. It reports whether the wizard advanced.
func (w *Wizard) Next() bool {
	if w.step >= StepPayment {
		return false
	}
	if errs := validateStep(w.step, w.draft); len(errs) > 0 {
		w.errors = errs
		return false
	}
	w.errors = FieldErrors{}
	w.step++
	return true
}

// Back returns to the previous step. Always permitted except from the
// first step and after completion.
func (w *Wizard) Back() {
	if w.step > StepStudentInfo && w.step < StepCompleted {
		w.errors = FieldErrors{}
		w.step--
	}
}

// Submit sends the draft. It is only valid on the payment step, and only
// goes out once every step's validator returns zero errors for the data
// currently held — there is no partial submission. The guest endpoint or
// the with-account endpoint is chosen from the current session state. On
// failure the draft stays intact for retry.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.step != StepPayment {
		return fmt.Errorf("submit is only available on the payment step")
	}

	for _, step := range []Step{StepStudentInfo, StepContactDetails, StepWorkshopSelection, StepPayment} {
		if errs := validateStep(step, w.draft); len(errs) > 0 {
			w.errors = errs
			w.step = step
			return fmt.Errorf("step %s has validation errors", step)
		}
	}

	var (
		result *models.Registration
		err    error
	)
	if w.sess.Snapshot().IsAuthenticated {
		result, err = w.client.SubmitRegistrationWithAccount(ctx, w.draft)
	} else {
		result, err = w.client.SubmitRegistration(ctx, w.draft)
	}
	if err != nil {
		w.submitErr = err.Error()
		return err
	}

	w.result = result
	w.submitErr = ""
	w.step = StepCompleted
	return nil
}
