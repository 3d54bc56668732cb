package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/models"
	"hotel-booking-backend/routes"
	"hotel-booking-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Room{},
		&models.Booking{},
		&models.Role{},
		&models.User{},
	))

	roomSvc := services.NewRoomService(db)
	bookingSvc := services.NewBookingService(db)
	userSvc := services.NewUserService(db)

	router := routes.SetupRouter(
		controllers.NewRoomController(roomSvc),
		controllers.NewBookingController(bookingSvc, roomSvc),
		controllers.NewUserController(userSvc),
		zap.NewNop(),
	)
	return &testEnv{db: db, router: router}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createRoom(t *testing.T, roomType string, price float64) models.Room {
	t.Helper()
	room := models.Room{RoomType: roomType, RoomPrice: price}
	require.NoError(t, e.db.Create(&room).Error)
	return room
}

func bookingPayload(checkIn, checkOut string) map[string]interface{} {
	return map[string]interface{}{
		"checkInDate":   checkIn,
		"checkOutDate":  checkOut,
		"guestFullName": "John Smith",
		"guestEmail":    "john.smith@example.com",
		"numOfAdults":   2,
		"numOfChildren": 1,
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSaveBookingEndpoint(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Double", 120)
	path := fmt.Sprintf("/api/rooms/%d/bookings", room.ID)

	w := env.do(t, http.MethodPost, path, bookingPayload("2024-06-10", "2024-06-15"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Code    string                      `json:"bookingConfirmationCode"`
			Booking controllers.BookingResponse `json:"booking"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Len(t, resp.Data.Code, 10)
	assert.Equal(t, 3, resp.Data.Booking.TotalNumOfGuests)
	assert.Equal(t, room.ID, resp.Data.Booking.Room.ID)

	// Conflicting dates come back as 400.
	w = env.do(t, http.MethodPost, path, bookingPayload("2024-06-10", "2024-06-12"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Check-out before check-in is 400 regardless of overlap.
	w = env.do(t, http.MethodPost, path, bookingPayload("2024-06-20", "2024-06-18"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown room is 404.
	w = env.do(t, http.MethodPost, "/api/rooms/9999/bookings", bookingPayload("2024-06-10", "2024-06-15"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Malformed dates are 400.
	w = env.do(t, http.MethodPost, path, bookingPayload("June 10", "June 15"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingLookupAndCancelEndpoints(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Double", 120)
	path := fmt.Sprintf("/api/rooms/%d/bookings", room.ID)

	w := env.do(t, http.MethodPost, path, bookingPayload("2024-06-10", "2024-06-15"))
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Data struct {
			Code    string                      `json:"bookingConfirmationCode"`
			Booking controllers.BookingResponse `json:"booking"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodGet, "/api/bookings/confirmation/"+created.Data.Code, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched controllers.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "2024-06-10", fetched.CheckInDate)
	assert.Equal(t, "2024-06-15", fetched.CheckOutDate)

	w = env.do(t, http.MethodGet, "/api/bookings/confirmation/0000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	cancelPath := fmt.Sprintf("/api/bookings/%d", created.Data.Booking.ID)
	w = env.do(t, http.MethodDelete, cancelPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Idempotent: a second cancel still succeeds.
	w = env.do(t, http.MethodDelete, cancelPath, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/bookings/confirmation/"+created.Data.Code, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBookingsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	roomA := env.createRoom(t, "Double", 120)
	roomB := env.createRoom(t, "Suite", 250)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/rooms/%d/bookings", roomA.ID), bookingPayload("2024-06-10", "2024-06-15"))
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/rooms/%d/bookings", roomB.ID), bookingPayload("2024-06-10", "2024-06-15"))
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []controllers.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/rooms/%d/bookings", roomA.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var forRoom []controllers.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forRoom))
	assert.Len(t, forRoom, 1)
}
