package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/ChrisUBS/DentixPro/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ChrisUBS/DentixPro/internal/auth"
	"github.com/ChrisUBS/DentixPro/internal/cache"
	"github.com/ChrisUBS/DentixPro/internal/config"
	"github.com/ChrisUBS/DentixPro/internal/db"
	"github.com/ChrisUBS/DentixPro/internal/handler"
	"github.com/ChrisUBS/DentixPro/internal/repository"
	"github.com/ChrisUBS/DentixPro/internal/router"
	"github.com/ChrisUBS/DentixPro/internal/service"
)

// @title DentixPro API
// @version 1.0
// @description Dental appointment booking API with JWT authentication and role-based access.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	mongoDB, closeMongo, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer closeMongo()
	log.Println("connected to mongodb")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unavailable, continuing without cache: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(mongoDB)
	appointmentRepo := repository.NewAppointmentRepository(mongoDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	guard := auth.NewGuard(userRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)

	router.Register(e, cfg, guard, authHandler, userHandler, appointmentHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
