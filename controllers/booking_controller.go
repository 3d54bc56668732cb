package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type BookingRequest struct {
	CheckInDate   string `json:"checkInDate" binding:"required"`
	CheckOutDate  string `json:"checkOutDate" binding:"required"`
	GuestFullName string `json:"guestFullName" binding:"required"`
	GuestEmail    string `json:"guestEmail" binding:"required,email"`
	NumOfAdults   int    `json:"numOfAdults"`
	NumOfChildren int    `json:"numOfChildren"`
}

type RoomSummary struct {
	ID        uint    `json:"id"`
	RoomType  string  `json:"roomType"`
	RoomPrice float64 `json:"roomPrice"`
}

type BookingResponse struct {
	ID               uint        `json:"id"`
	CheckInDate      string      `json:"checkInDate"`
	CheckOutDate     string      `json:"checkOutDate"`
	GuestFullName    string      `json:"guestFullName"`
	GuestEmail       string      `json:"guestEmail"`
	NumOfAdults      int         `json:"numOfAdults"`
	NumOfChildren    int         `json:"numOfChildren"`
	TotalNumOfGuests int         `json:"totalNumOfGuests"`
	ConfirmationCode string      `json:"bookingConfirmationCode"`
	Room             RoomSummary `json:"room"`
}

func toBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		CheckInDate:      utils.FormatDate(b.CheckInDate),
		CheckOutDate:     utils.FormatDate(b.CheckOutDate),
		GuestFullName:    b.GuestFullName,
		GuestEmail:       b.GuestEmail,
		NumOfAdults:      b.NumAdults,
		NumOfChildren:    b.NumChildren,
		TotalNumOfGuests: b.TotalGuests,
		ConfirmationCode: b.ConfirmationCode,
		Room: RoomSummary{
			ID:        b.Room.ID,
			RoomType:  b.Room.RoomType,
			RoomPrice: b.Room.RoomPrice,
		},
	}
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
	RoomSvc    *services.RoomService
}

func NewBookingController(bookingSvc *services.BookingService, roomSvc *services.RoomService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, RoomSvc: roomSvc}
}

// SaveBooking handles POST /api/rooms/:id/bookings.
func (ctrl *BookingController) SaveBooking(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload BookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPayload", "Invalid request payload", err)
		return
	}

	checkIn, err := utils.ParseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidDate", "checkInDate must be YYYY-MM-DD", err)
		return
	}
	checkOut, err := utils.ParseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidDate", "checkOutDate must be YYYY-MM-DD", err)
		return
	}

	booking := models.Booking{
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		GuestFullName: payload.GuestFullName,
		GuestEmail:    payload.GuestEmail,
	}
	booking.SetNumAdults(payload.NumOfAdults)
	booking.SetNumChildren(payload.NumOfChildren)

	code, err := ctrl.BookingSvc.SaveBooking(roomID, &booking)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBookingRequest):
			utils.JSONError(c, http.StatusBadRequest, "error.invalidBookingRequest", "Check-in date must come before check-out date.")
		case errors.Is(err, services.ErrRoomUnavailable):
			utils.JSONError(c, http.StatusBadRequest, "error.roomUnavailable", "Sorry, the room is unavailable for the selected dates.")
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "Room not found.")
		default:
			log.Printf("SaveBooking error for room %d: %v", roomID, err)
			utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to save booking", err)
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookingConfirmationCode": code,
		"booking":                 toBookingResponse(booking),
	})
}

// GetAllBookings handles GET /api/bookings.
func (ctrl *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAllBookings()
	if err != nil {
		log.Printf("GetAllBookings error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.fetchBookings", "Failed to fetch bookings", err)
		return
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, responses)
}

// GetBookingsByRoom handles GET /api/rooms/:id/bookings.
func (ctrl *BookingController) GetBookingsByRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bookings, err := ctrl.BookingSvc.GetAllBookingsByRoomID(roomID)
	if err != nil {
		log.Printf("GetBookingsByRoom error for room %d: %v", roomID, err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.fetchBookings", "Failed to fetch bookings", err)
		return
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, responses)
}

// GetBookingByConfirmationCode handles GET /api/bookings/confirmation/:code.
func (ctrl *BookingController) GetBookingByConfirmationCode(c *gin.Context) {
	code := c.Param("code")

	booking, err := ctrl.BookingSvc.FindByConfirmationCode(code)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.bookingNotFound", "No booking found for confirmation code "+code)
			return
		}
		log.Printf("GetBookingByConfirmationCode error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to fetch booking", err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

// CancelBooking handles DELETE /api/bookings/:id. Cancelling an unknown id
// succeeds: the delete is idempotent by construction.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.CancelBooking(bookingID); err != nil {
		log.Printf("CancelBooking error for booking %d: %v", bookingID, err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.cancelBookingFailed", "Failed to cancel booking", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking cancelled"})
}

// parseIDParam reads a numeric path param and writes the 400 itself when the
// value is not a number.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "Invalid "+name+" parameter: "+raw)
		return 0, false
	}
	return uint(id), true
}
