package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentValidator_ValidateDate(t *testing.T) {
	v := NewAppointmentValidator()

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid date", "2026-09-15", false},
		{"leap day", "2028-02-29", false},
		{"wrong separator", "2026/09/15", true},
		{"wrong order", "15-09-2026", true},
		{"february 30th", "2026-02-30", true},
		{"month 13", "2026-13-01", true},
		{"not a leap year", "2026-02-29", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDate(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentValidator_ValidateTime(t *testing.T) {
	v := NewAppointmentValidator()

	tests := []struct {
		name      string
		timeOfDay string
		wantErr   bool
	}{
		{"morning", "09:30", false},
		{"midnight", "00:00", false},
		{"last minute of the day", "23:59", false},
		{"hour 24", "24:00", true},
		{"minute 60", "10:60", true},
		{"single digit hour", "9:30", true},
		{"with seconds", "09:30:00", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateTime(tt.timeOfDay)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentValidator_ValidateFuture(t *testing.T) {
	v := NewAppointmentValidator()
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		date      string
		timeOfDay string
		wantErr   bool
	}{
		{"next day", "2026-09-16", "10:00", false},
		{"later the same day", "2026-09-15", "10:01", false},
		{"exactly now", "2026-09-15", "10:00", true},
		{"earlier the same day", "2026-09-15", "09:59", true},
		{"previous day", "2026-09-14", "10:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFuture(tt.date, tt.timeOfDay, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentValidator_Lengths(t *testing.T) {
	v := NewAppointmentValidator()

	assert.NoError(t, v.ValidateTitle("Check"))
	assert.Error(t, v.ValidateTitle("Four"))
	// Length limits count runes, not bytes.
	assert.NoError(t, v.ValidateTitle("ñññññ"))

	assert.NoError(t, v.ValidateDescription("Tooth pain"))
	assert.Error(t, v.ValidateDescription("Ow"))
}

func TestAppointmentValidator_ValidateStatus(t *testing.T) {
	v := NewAppointmentValidator()

	assert.NoError(t, v.ValidateStatus("pending"))
	assert.NoError(t, v.ValidateStatus("completed"))
	assert.NoError(t, v.ValidateStatus("cancelled"))
	assert.Error(t, v.ValidateStatus("archived"))
	assert.Error(t, v.ValidateStatus("Pending"))
	assert.Error(t, v.ValidateStatus(""))
}
