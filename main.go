package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/felixdarko/eventplanner-api/config"
	"github.com/felixdarko/eventplanner-api/controllers"
	"github.com/felixdarko/eventplanner-api/middleware"
	"github.com/felixdarko/eventplanner-api/store"
	"github.com/felixdarko/eventplanner-api/utils"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Connect to MongoDB
	client, db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	log.Println("Connected to MongoDB:", cfg.MongoDB)

	// Stores and indexes
	users := store.NewMongoUserStore(db)
	ledger := store.NewMongoRegistrationLedger(db)
	catalog := store.NewEventCatalog(store.SeedEvents())
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatalf("user indexes: %v", err)
		}
		if err := ledger.EnsureIndexes(ctx); err != nil {
			log.Fatalf("registration indexes: %v", err)
		}
	}

	mailer := utils.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.AppName, cfg.ClientURL)

	authHandler := controllers.NewAuthHandler(users, mailer, cfg.JWTSecret, cfg.TokenTTL)
	eventsHandler := controllers.NewEventsHandler(catalog)
	regsHandler := controllers.NewRegistrationsHandler(ledger, catalog)

	// Initialize Gin router
	router := gin.Default()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/signin", authHandler.SignIn)
			auth.GET("/profile", middleware.Auth(cfg.JWTSecret), authHandler.Profile)
			auth.PATCH("/me", middleware.Auth(cfg.JWTSecret), authHandler.UpdateMe)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		events := api.Group("/events")
		{
			events.GET("", eventsHandler.List)
			events.GET("/:id", eventsHandler.Get)
			events.GET("/categories/all", eventsHandler.Categories)
			events.POST("", eventsHandler.Create)
			events.PUT("/:id", eventsHandler.Update)
			events.DELETE("/:id", eventsHandler.Delete)
		}

		regs := api.Group("/registrations")
		{
			regs.POST("", regsHandler.Create)
			regs.GET("/user/:userId", regsHandler.ListByUser)
			regs.POST("/payment-summary", regsHandler.PaymentSummary)
			regs.GET("/confirmation/:ticketId", regsHandler.Confirmation)
		}
	}

	// CORS wraps the whole router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for interrupt (Ctrl+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		log.Println("Error disconnecting MongoDB:", err)
	} else {
		log.Println("MongoDB disconnected")
	}

	log.Println("Server exited properly")
}
