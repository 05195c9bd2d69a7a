package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ChrisUBS/DentixPro/internal/model"
)

// Collection name predates the service; existing deployments share it.
const appointmentsCollection = "dates"

// AppointmentFilter narrows an appointment listing. Zero-valued fields
// are ignored.
type AppointmentFilter struct {
	UserID   string
	Status   string
	DateFrom string
	DateTo   string
}

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Insert(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error)
	FindActiveSlot(ctx context.Context, date, timeOfDay string) (*model.Appointment, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	List(ctx context.Context, filter AppointmentFilter, page, pageSize int64) (*Page[model.Appointment], error)
}

type appointmentRepository struct {
	coll *mongo.Collection
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(db *mongo.Database) AppointmentRepository {
	return &appointmentRepository{coll: db.Collection(appointmentsCollection)}
}

// Insert stores a new appointment and records the generated id.
func (r *appointmentRepository) Insert(ctx context.Context, appt *model.Appointment) error {
	res, err := r.coll.InsertOne(ctx, appt)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		appt.ID = oid
	}
	return nil
}

// FindByID returns the appointment or (nil, nil) when absent.
func (r *appointmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// activeSlotFilter matches any appointment occupying the (date, time)
// slot whose status is not cancelled. A cancelled appointment frees its
// slot for rebooking.
func activeSlotFilter(date, timeOfDay string) bson.M {
	return bson.M{
		"date":   date,
		"time":   timeOfDay,
		"status": bson.M{"$ne": model.StatusCancelled},
	}
}

// FindActiveSlot returns any non-cancelled appointment occupying the
// given (date, time) slot, or (nil, nil) when the slot is free. This is
// the write-time slot-uniqueness check; there is no storage-level
// constraint behind it.
func (r *appointmentRepository) FindActiveSlot(ctx context.Context, date, timeOfDay string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.coll.FindOne(ctx, activeSlotFilter(date, timeOfDay)).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateFields applies a partial $set merge to the appointment record.
func (r *appointmentRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// List returns one page of appointments sorted by date then time.
func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter, page, pageSize int64) (*Page[model.Appointment], error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.DateFrom != "" || filter.DateTo != "" {
		dateQuery := bson.M{}
		if filter.DateFrom != "" {
			dateQuery["$gte"] = filter.DateFrom
		}
		if filter.DateTo != "" {
			dateQuery["$lte"] = filter.DateTo
		}
		query["date"] = dateQuery
	}

	sort := bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}
	return paginate[model.Appointment](ctx, r.coll, query, page, pageSize, sort)
}
