package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

var registrationHeader = []string{
	"id", "student_name", "school_name", "std", "mobile_number",
	"alternate_number", "email", "address", "pune_resident",
	"referral_source", "workshop_id", "workshop_interest", "message",
	"payment_status", "registration_status", "registration_date",
}

// WriteRegistrationsCSV serializes the given (already filtered) rows as
// CSV. Fields containing commas, quotes, or newlines come out quoted, so a
// message with an embedded comma cannot break column alignment.
func WriteRegistrationsCSV(w io.Writer, rows []models.Registration) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(registrationHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.ID,
			r.StudentName,
			r.SchoolName,
			r.Std,
			r.MobileNumber,
			r.AlternateNumber,
			r.Email,
			r.Address,
			strconv.FormatBool(r.IsPuneResident),
			r.ReferralSource,
			r.WorkshopID,
			r.WorkshopInterest,
			r.Message,
			r.PaymentStatus,
			r.RegistrationStatus,
			r.RegistrationDate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
