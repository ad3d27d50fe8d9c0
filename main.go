package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"limo-backend/config"
	"limo-backend/controllers"
	"limo-backend/middleware"
	"limo-backend/routes"
	"limo-backend/services"
)

func buildSender() services.Sender {
	if os.Getenv("EMAIL_TRANSPORT") == "api" {
		sender, err := services.NewEmailAPISender()
		if err != nil {
			log.Printf("⚠️  email API transport not configured (%v); falling back to SMTP", err)
			return services.SMTPSender{}
		}
		log.Println("✅ Using email API transport.")
		return sender
	}
	return services.SMTPSender{}
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Notification dispatcher
	notifier := services.NewNotifier(db, buildSender())
	notifier.Start()
	defer notifier.Stop()

	// Initialize services
	bookingService := services.NewBookingService(db, notifier)
	vehicleService := services.NewVehicleService(db)
	userService := services.NewUserService(db)
	blogService := services.NewBlogService(db)
	adminService := services.NewAdminService(db)
	storageService := services.NewStorageService("uploads")

	// Initialize controllers
	authController := controllers.NewAuthController(userService, adminService)
	bookingController := controllers.NewBookingController(bookingService, adminService)
	vehicleController := controllers.NewVehicleController(vehicleService)
	blogController := controllers.NewBlogController(blogService)
	adminController := controllers.NewAdminController(adminService, userService)
	uploadController := controllers.NewUploadController(storageService)
	settingsController := controllers.NewSettingsController(db)

	// Rate limiter: redis-backed when REDIS_ADDR is set, process-local otherwise
	rdb := middleware.NewRedisClient()
	if rdb != nil {
		log.Println("✅ Redis rate limiter enabled.")
	} else {
		log.Println("⚠️  REDIS_ADDR not set; rate limiting is process-local best-effort")
	}
	limiter := middleware.NewRateLimiter(rdb, 30, time.Minute)

	// Build router
	router := routes.SetupRouter(
		authController,
		bookingController,
		vehicleController,
		blogController,
		adminController,
		uploadController,
		settingsController,
		adminService,
		limiter,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	// Drain pending notification sends before exit
	notifier.Stop()

	log.Println("✅ Server stopped gracefully")
}
