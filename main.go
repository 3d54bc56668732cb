package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotel-booking-backend/config"
	"hotel-booking-backend/controllers"
	"hotel-booking-backend/routes"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	if db == nil {
		logger.Fatal("config.DB is nil after ConnectDatabase()")
	}
	logger.Info("database connection established, migrations applied")

	// Services
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db)
	userService := services.NewUserService(db)

	// Controllers
	roomController := controllers.NewRoomController(roomService)
	bookingController := controllers.NewBookingController(bookingService, roomService)
	userController := controllers.NewUserController(userService)

	router := routes.SetupRouter(roomController, bookingController, userController, logger)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
