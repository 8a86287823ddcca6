package wizard

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

// FieldErrors maps a field name to its validation message. Empty means the
// step may advance.
type FieldErrors map[string]string

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`[^0-9]`)
)

// Eligible standards for the workshops.
const (
	minStd = 8
	maxStd = 10
)

// ReferralSources is the enumerated set offered on the contact step.
var ReferralSources = []string{
	"school",
	"friend",
	"social-media",
	"newspaper",
	"website",
	"other",
}

func validReferralSource(s string) bool {
	for _, r := range ReferralSources {
		if s == r {
			return true
		}
	}
	return false
}

func validateStudentInfo(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.StudentName) == "" {
		errs["studentName"] = "Student name is required"
	}
	if strings.TrimSpace(d.SchoolName) == "" {
		errs["schoolName"] = "School name is required"
	}
	std, err := strconv.Atoi(strings.TrimSpace(d.Std))
	if err != nil || std < minStd || std > maxStd {
		errs["std"] = "Standard must be between 8 and 10"
	}
	return errs
}

func validateContactDetails(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}

	mobile := strings.TrimSpace(d.MobileNumber)
	if mobile == "" {
		errs["mobileNumber"] = "Mobile number is required"
	} else if len(nonDigits.ReplaceAllString(mobile, "")) != 10 {
		errs["mobileNumber"] = "Please enter a valid 10-digit mobile number"
	}

	email := strings.TrimSpace(d.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Email is invalid"
	}

	if strings.TrimSpace(d.Address) == "" {
		errs["address"] = "Address is required"
	}
	if !validReferralSource(d.ReferralSource) {
		errs["referralSource"] = "Please select how you heard about us"
	}
	return errs
}

func validateWorkshopSelection(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}
	if d.WorkshopID == "" {
		errs["workshopId"] = "Please select a workshop"
	}
	return errs
}

func validatePayment(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.PaymentProofURL) == "" {
		errs["paymentProofUrl"] = "Payment proof is required"
	}
	if !d.AgreeToTerms {
		errs["agreeToTerms"] = "You must agree to the terms"
	}
	return errs
}

// validateStep runs the validator for one step. Completed always passes.
func validateStep(step Step, d models.RegistrationDraft) FieldErrors {
	switch step {
	case StepStudentInfo:
		return validateStudentInfo(d)
	case StepContactDetails:
		return validateContactDetails(d)
	case StepWorkshopSelection:
		return validateWorkshopSelection(d)
	case StepPayment:
		return validatePayment(d)
	}
	return FieldErrors{}
}
