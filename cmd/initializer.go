package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sadrozzy/global-hub-real-estate/internal/config"
	"github.com/sadrozzy/global-hub-real-estate/internal/handlers"
	"github.com/sadrozzy/global-hub-real-estate/internal/repositories"
	"github.com/sadrozzy/global-hub-real-estate/internal/services"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config

	authService *services.AuthService

	searchHandler   *handlers.SearchHandler
	propertyHandler *handlers.PropertyHandler
	contactHandler  *handlers.ContactHandler
	authHandler     *handlers.AuthHandler
}

func initializeApp(db *sql.DB, redisClient *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	listingRepo := &repositories.MockListingRepository{}
	propertyRepo := &repositories.PropertyRepository{}
	var feedbackRepo repositories.FeedbackStore
	if db != nil {
		feedbackRepo = &repositories.FeedbackRepository{DB: db, Driver: cfg.Database.Driver}
	}
	tokenCache := repositories.NewTokenCache(redisClient, time.Duration(cfg.Auth.AccessTokenMaxAge)*time.Second)

	// Services
	searchService := &services.SearchService{ListingStore: listingRepo}
	propertyService := &services.PropertyService{PropertyRepo: propertyRepo}
	feedbackService := &services.FeedbackService{FeedbackRepo: feedbackRepo}
	authService := services.NewAuthService(cfg.Auth.BackendURL, nil, tokenCache)

	// Handlers
	cookies := handlers.CookieConfig{
		AccessName:    cfg.Auth.AccessTokenName,
		RefreshName:   cfg.Auth.RefreshTokenName,
		AccessMaxAge:  cfg.Auth.AccessTokenMaxAge,
		RefreshMaxAge: cfg.Auth.RefreshTokenMaxAge,
		Secure:        cfg.Server.Env == "production",
	}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		cfg:             cfg,
		authService:     authService,
		searchHandler:   &handlers.SearchHandler{Service: searchService},
		propertyHandler: &handlers.PropertyHandler{Service: propertyService},
		contactHandler:  &handlers.ContactHandler{Service: feedbackService},
		authHandler:     &handlers.AuthHandler{Service: authService, Cookies: cookies},
	}
}
