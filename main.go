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

	"pg-backend/config"
	"pg-backend/controllers"
	"pg-backend/repository"
	"pg-backend/routes"
	"pg-backend/services"
	"pg-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Repositories
	roomRepo := repository.NewRoomRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	activityService := services.NewActivityService(activityRepo)
	roomService := services.NewRoomService(roomRepo, activityService)
	guestService := services.NewGuestService(roomRepo, activityService)
	paymentService := services.NewPaymentService(roomRepo, activityService)
	reportService := services.NewReportService(roomRepo)
	exportService := services.NewExportService()
	notificationService := services.NewNotificationService(roomRepo, activityService, utils.NewSMTPSender())

	// Controllers
	roomController := controllers.NewRoomController(roomService)
	guestController := controllers.NewGuestController(guestService)
	paymentController := controllers.NewPaymentController(paymentService)
	reportController := controllers.NewReportController(reportService, exportService, notificationService)
	activityController := controllers.NewActivityController(activityService)

	router := routes.SetupRouter(
		roomController,
		guestController,
		paymentController,
		reportController,
		activityController,
	)

	// Monthly reminder scheduler runs for the lifetime of the process.
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	scheduler := services.NewReminderScheduler(notificationService)
	go scheduler.Run(schedulerCtx)

	port := config.EnvOrDefault("PORT", "8080")
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
