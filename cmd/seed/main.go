package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChrisUBS/DentixPro/internal/config"
	"github.com/ChrisUBS/DentixPro/internal/db"
	"github.com/ChrisUBS/DentixPro/internal/model"
	"github.com/ChrisUBS/DentixPro/internal/repository"
)

// Development seed data: an admin, a regular user, and a few future
// appointments. Safe to run repeatedly; existing records are kept.
type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var seedUsers = []seedUser{
	{Name: "Admin", Email: "admin@dentixpro.local", Password: "admin-password-1", Role: model.RoleAdmin},
	{Name: "Demo Patient", Email: "patient@dentixpro.local", Password: "patient-password-1", Role: model.RoleUser},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	mongoDB, closeMongo, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeMongo()
	log.Println("Connected to database")

	userRepo := repository.NewUserRepository(mongoDB)
	appointmentRepo := repository.NewAppointmentRepository(mongoDB)
	ctx := context.Background()

	users, err := seedUserAccounts(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	created, err := seedAppointments(ctx, appointmentRepo, users[seedUsers[1].Email])
	if err != nil {
		log.Fatalf("Failed to seed appointments: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users ensured: %d", len(users))
	log.Printf("  - New appointments created: %d", created)
}

// seedUserAccounts ensures the seed users exist and returns them keyed
// by email.
func seedUserAccounts(ctx context.Context, repo repository.UserRepository) (map[string]*model.User, error) {
	out := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := repo.FindByEmail(ctx, su.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			out[su.Email] = existing
			continue
		}

		digest, err := bcrypt.GenerateFromPassword([]byte(su.Password), 10)
		if err != nil {
			return nil, err
		}
		user := &model.User{
			UserID:    primitive.NewObjectID().Hex(),
			Name:      su.Name,
			Email:     su.Email,
			Password:  string(digest),
			Role:      su.Role,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Insert(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("Created %s user %s", su.Role, su.Email)
		out[su.Email] = user
	}
	return out, nil
}

// seedAppointments books a few pending slots for the demo patient,
// skipping any slot already taken.
func seedAppointments(ctx context.Context, repo repository.AppointmentRepository, owner *model.User) (int, error) {
	created := 0
	for i := 1; i <= 3; i++ {
		day := time.Now().AddDate(0, 0, 7*i)
		date := day.Format("2006-01-02")
		slot := "10:00"

		occupied, err := repo.FindActiveSlot(ctx, date, slot)
		if err != nil {
			return created, err
		}
		if occupied != nil {
			continue
		}

		appt := &model.Appointment{
			UserID:      owner.UserID,
			Title:       "Routine check-up",
			Date:        date,
			Time:        slot,
			Description: "Seeded demo appointment",
			Status:      model.StatusPending,
			CreatedAt:   time.Now().UTC(),
		}
		if err := repo.Insert(ctx, appt); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
