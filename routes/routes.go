package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers into the gin engine.
func SetupRouter(
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	uc *controllers.UserController,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.AddRoom)

			rooms.GET("/types", rc.GetRoomTypes)
			rooms.GET("/available", rc.GetAvailableRooms)

			rooms.GET("/:id", rc.GetRoomByID)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
			rooms.GET("/:id/photo", rc.GetRoomPhoto)

			rooms.POST("/:id/bookings", bc.SaveBooking)
			rooms.GET("/:id/bookings", bc.GetBookingsByRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetAllBookings)
			bookings.GET("/confirmation/:code", bc.GetBookingByConfirmationCode)
			bookings.DELETE("/:id", bc.CancelBooking)
		}

		users := api.Group("/users")
		{
			users.GET("", uc.GetUsers)
			users.POST("", uc.Register)
			users.POST("/login", uc.Login)
			users.POST("/:id/roles/:roleId", uc.AssignRole)
			users.DELETE("/:id/roles/:roleId", uc.RemoveRole)
		}

		roles := api.Group("/roles")
		{
			roles.GET("", uc.GetRoles)
			roles.POST("", uc.CreateRole)
		}
	}

	return r
}
