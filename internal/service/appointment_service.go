package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
	"github.com/ChrisUBS/DentixPro/internal/model"
	"github.com/ChrisUBS/DentixPro/internal/repository"
)

// AppointmentService enforces the appointment state machine:
// pending -> {completed, cancelled}, both terminal.
type AppointmentService interface {
	Create(ctx context.Context, callerID, title, date, timeOfDay, description string) (*model.Appointment, error)
	Cancel(ctx context.Context, callerID, id string) error
	ListOwn(ctx context.Context, callerID, status string, page, pageSize int64) (*repository.Page[model.Appointment], error)
	AdminList(ctx context.Context, status, dateFrom, dateTo string, page, pageSize int64) (*repository.Page[model.Appointment], error)
	AdminUpdate(ctx context.Context, id string, patch *model.AppointmentUpdate) (*model.Appointment, error)
	AdminComplete(ctx context.Context, id string) error
	AdminCancel(ctx context.Context, id string) error
}

type appointmentService struct {
	appts     repository.AppointmentRepository
	users     repository.UserRepository
	validator *AppointmentValidator
}

// NewAppointmentService creates a new appointment service. The user
// repository is consulted for the ownership/role check on cancellation.
func NewAppointmentService(appts repository.AppointmentRepository, users repository.UserRepository) AppointmentService {
	return &appointmentService{
		appts:     appts,
		users:     users,
		validator: NewAppointmentValidator(),
	}
}

// Create books a new pending appointment for the caller. The slot check
// happens at write time; there is no storage-level constraint behind
// it, so two concurrent creates for the same slot can both pass it.
func (s *appointmentService) Create(ctx context.Context, callerID, title, date, timeOfDay, description string) (*model.Appointment, error) {
	if err := s.validator.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDate(date); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateTime(timeOfDay); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateFuture(date, timeOfDay, time.Now()); err != nil {
		return nil, err
	}

	occupied, err := s.appts.FindActiveSlot(ctx, date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if occupied != nil {
		return nil, apperrors.Conflict("this time slot is already taken")
	}

	appt := &model.Appointment{
		UserID:      callerID,
		Title:       title,
		Date:        date,
		Time:        timeOfDay,
		Description: description,
		Status:      model.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.appts.Insert(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appt, nil
}

// Cancel cancels a pending appointment. Allowed for the owner and for
// admins; the caller's role is re-read from storage.
func (s *appointmentService) Cancel(ctx context.Context, callerID, id string) error {
	oid, err := parseAppointmentID(id)
	if err != nil {
		return err
	}

	appt, err := s.appts.FindByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("find appointment: %w", err)
	}
	if appt == nil {
		return apperrors.NotFound("appointment not found")
	}

	if appt.UserID != callerID {
		caller, err := s.users.FindByUserID(ctx, callerID)
		if err != nil {
			return fmt.Errorf("find caller: %w", err)
		}
		if caller == nil || caller.Role != model.RoleAdmin {
			return apperrors.Forbidden("you do not have permission to cancel this appointment")
		}
	}

	if appt.Status != model.StatusPending {
		return apperrors.Invalid("cannot cancel an appointment with status: %s", appt.Status)
	}

	return s.appts.UpdateFields(ctx, oid, bson.M{
		"status":       model.StatusCancelled,
		"cancelled_at": time.Now().UTC(),
	})
}

// ListOwn returns one page of the caller's own appointments.
func (s *appointmentService) ListOwn(ctx context.Context, callerID, status string, page, pageSize int64) (*repository.Page[model.Appointment], error) {
	return s.appts.List(ctx, repository.AppointmentFilter{UserID: callerID, Status: status}, page, pageSize)
}

// AdminList returns one page of all appointments, optionally filtered
// by status and date range.
func (s *appointmentService) AdminList(ctx context.Context, status, dateFrom, dateTo string, page, pageSize int64) (*repository.Page[model.Appointment], error) {
	filter := repository.AppointmentFilter{Status: status, DateFrom: dateFrom, DateTo: dateTo}
	return s.appts.List(ctx, filter, page, pageSize)
}

// AdminUpdate applies a partial merge of the provided fields plus an
// updated_at stamp. Unlike Create, it re-checks neither the future-date
// nor the slot-conflict invariant.
func (s *appointmentService) AdminUpdate(ctx context.Context, id string, patch *model.AppointmentUpdate) (*model.Appointment, error) {
	oid, err := parseAppointmentID(id)
	if err != nil {
		return nil, err
	}

	if patch == nil {
		patch = &model.AppointmentUpdate{}
	}
	if patch.Title != nil {
		if err := s.validator.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	appt, err := s.appts.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if appt == nil {
		return nil, apperrors.NotFound("appointment not found")
	}

	if patch.Date != nil {
		if err := s.validator.ValidateDate(*patch.Date); err != nil {
			return nil, err
		}
	}
	if patch.Time != nil {
		if err := s.validator.ValidateTime(*patch.Time); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if err := s.validator.ValidateDescription(*patch.Description); err != nil {
			return nil, err
		}
	}
	if patch.Status != nil {
		if err := s.validator.ValidateStatus(*patch.Status); err != nil {
			return nil, err
		}
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Time != nil {
		set["time"] = *patch.Time
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	if err := s.appts.UpdateFields(ctx, oid, set); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	updated, err := s.appts.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("appointment not found")
	}
	return updated, nil
}

// AdminComplete marks a pending appointment as completed.
func (s *appointmentService) AdminComplete(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCompleted, "completed_at")
}

// AdminCancel cancels a pending appointment on behalf of an admin.
func (s *appointmentService) AdminCancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.StatusCancelled, "cancelled_at")
}

// transition moves a pending appointment into a terminal status and
// stamps the matching timestamp field.
func (s *appointmentService) transition(ctx context.Context, id, status, stampField string) error {
	oid, err := parseAppointmentID(id)
	if err != nil {
		return err
	}

	appt, err := s.appts.FindByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("find appointment: %w", err)
	}
	if appt == nil {
		return apperrors.NotFound("appointment not found")
	}
	if appt.Status != model.StatusPending {
		verb := "cancel"
		if status == model.StatusCompleted {
			verb = "complete"
		}
		return apperrors.Invalid("cannot %s an appointment with status: %s", verb, appt.Status)
	}

	return s.appts.UpdateFields(ctx, oid, bson.M{
		"status":   status,
		stampField: time.Now().UTC(),
	})
}

// parseAppointmentID rejects anything that is not a 24-hex object id
// before storage is touched.
func parseAppointmentID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Invalid("invalid appointment ID")
	}
	return oid, nil
}
