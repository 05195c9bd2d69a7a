package service

import (
	"regexp"
	"time"
	"unicode/utf8"

	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
	"github.com/ChrisUBS/DentixPro/internal/model"
)

const (
	dateLayout = "2006-01-02"
	slotLayout = "2006-01-02 15:04"

	minTitleLen       = 5
	minDescriptionLen = 5
)

// 24-hour clock, hour 00-23, minute 00-59.
var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// AppointmentValidator validates appointment fields.
type AppointmentValidator struct{}

// NewAppointmentValidator creates a new appointment validator.
func NewAppointmentValidator() *AppointmentValidator {
	return &AppointmentValidator{}
}

// ValidateTitle requires a title of at least 5 characters.
func (v *AppointmentValidator) ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) < minTitleLen {
		return apperrors.Invalid("title must be at least %d characters long", minTitleLen)
	}
	return nil
}

// ValidateDescription requires a description of at least 5 characters.
func (v *AppointmentValidator) ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) < minDescriptionLen {
		return apperrors.Invalid("description must be at least %d characters long", minDescriptionLen)
	}
	return nil
}

// ValidateDate requires a real calendar date in YYYY-MM-DD form.
// time.Parse rejects both malformed strings and impossible dates such
// as 2025-02-30.
func (v *AppointmentValidator) ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return apperrors.Invalid("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

// ValidateTime requires a 24-hour HH:MM time of day.
func (v *AppointmentValidator) ValidateTime(timeOfDay string) error {
	if !timePattern.MatchString(timeOfDay) {
		return apperrors.Invalid("invalid time format, use HH:MM (24h)")
	}
	return nil
}

// ValidateFuture requires the combined date and time to be strictly
// after now. Both parts must already be format-validated.
func (v *AppointmentValidator) ValidateFuture(date, timeOfDay string, now time.Time) error {
	slot, err := time.ParseInLocation(slotLayout, date+" "+timeOfDay, time.Local)
	if err != nil {
		return apperrors.Invalid("invalid date format, use YYYY-MM-DD")
	}
	if !slot.After(now) {
		return apperrors.Invalid("the appointment must be in the future")
	}
	return nil
}

// ValidateStatus requires a known appointment status.
func (v *AppointmentValidator) ValidateStatus(status string) error {
	if !model.ValidStatus(status) {
		return apperrors.Invalid("invalid status, must be 'pending', 'completed' or 'cancelled'")
	}
	return nil
}
