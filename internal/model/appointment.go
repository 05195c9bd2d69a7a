package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. An appointment starts pending and may move to
// completed or cancelled exactly once; both are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether status is a known appointment status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booked slot. Date and Time are kept as the
// strings the API exchanges ("YYYY-MM-DD" and 24h "HH:MM") so slot
// equality is a plain field match. UserID is a weak reference to the
// owning user; appointments are never hard-deleted, cancellation is the
// deletion-equivalent.
type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	CancelledAt *time.Time         `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// AppointmentUpdate is the partial patch an admin may apply to an
// appointment. Absent fields are left untouched.
type AppointmentUpdate struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Empty reports whether no fields were supplied.
func (p *AppointmentUpdate) Empty() bool {
	return p.Title == nil && p.Date == nil && p.Time == nil &&
		p.Description == nil && p.Status == nil
}
