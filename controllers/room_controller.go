package controllers

import (
	"encoding/base64"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RoomResponse struct {
	ID        uint           `json:"id"`
	RoomType  string         `json:"roomType"`
	RoomPrice float64        `json:"roomPrice"`
	IsBooked  bool           `json:"isBooked"`
	Photo     string         `json:"photo,omitempty"` // base64
	Amenities datatypes.JSON `json:"amenities,omitempty"`
}

func toRoomResponse(room models.Room) RoomResponse {
	resp := RoomResponse{
		ID:        room.ID,
		RoomType:  room.RoomType,
		RoomPrice: room.RoomPrice,
		IsBooked:  room.IsBooked,
		Amenities: room.Amenities,
	}
	if len(room.Photo) > 0 {
		resp.Photo = base64.StdEncoding.EncodeToString(room.Photo)
	}
	return resp
}

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(roomSvc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: roomSvc}
}

// readPhotoFile drains an optional multipart file field.
func readPhotoFile(file *multipart.FileHeader) ([]byte, error) {
	if file == nil {
		return nil, nil
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// AddRoom handles POST /api/rooms (multipart: photo, roomType, roomPrice).
func (ctrl *RoomController) AddRoom(c *gin.Context) {
	roomType := strings.TrimSpace(c.PostForm("roomType"))
	if roomType == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "roomType is required")
		return
	}

	roomPrice, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("roomPrice")), 64)
	if err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPayload", "roomPrice must be a number", err)
		return
	}

	var photo []byte
	if file, err := c.FormFile("photo"); err == nil {
		photo, err = readPhotoFile(file)
		if err != nil {
			utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPhoto", "Failed to read photo upload", err)
			return
		}
	}

	room, err := ctrl.RoomSvc.AddNewRoom(photo, roomType, roomPrice)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRoomRequest) {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidRoom", err.Error())
			return
		}
		log.Printf("AddRoom error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to create room", err)
		return
	}

	c.JSON(http.StatusCreated, toRoomResponse(room))
}

// GetRooms handles GET /api/rooms.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAllRooms()
	if err != nil {
		log.Printf("GetRooms error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.fetchRooms", "Failed to fetch rooms", err)
		return
	}

	responses := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, toRoomResponse(room))
	}
	c.JSON(http.StatusOK, responses)
}

// GetRoomTypes handles GET /api/rooms/types.
func (ctrl *RoomController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.RoomSvc.GetAllRoomTypes()
	if err != nil {
		log.Printf("GetRoomTypes error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.fetchRoomTypes", "Failed to fetch room types", err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// GetAvailableRooms handles GET /api/rooms/available?checkIn=&checkOut=&roomType=.
func (ctrl *RoomController) GetAvailableRooms(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("checkIn"))
	if err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidDate", "checkIn must be YYYY-MM-DD", err)
		return
	}
	checkOut, err := utils.ParseDate(c.Query("checkOut"))
	if err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidDate", "checkOut must be YYYY-MM-DD", err)
		return
	}
	roomType := strings.TrimSpace(c.Query("roomType"))
	if roomType == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "roomType is required")
		return
	}

	rooms, err := ctrl.RoomSvc.GetAvailableRooms(checkIn, checkOut, roomType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidBookingRequest) {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidBookingRequest", "Check-in date must come before check-out date.")
			return
		}
		log.Printf("GetAvailableRooms error: %v", err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to search available rooms", err)
		return
	}

	responses := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, toRoomResponse(room))
	}
	c.JSON(http.StatusOK, responses)
}

// GetRoomByID handles GET /api/rooms/:id.
func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := ctrl.RoomSvc.GetRoomByID(roomID)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "Room not found.")
			return
		}
		log.Printf("GetRoomByID error for room %d: %v", roomID, err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to fetch room", err)
		return
	}

	c.JSON(http.StatusOK, toRoomResponse(room))
}

// GetRoomPhoto handles GET /api/rooms/:id/photo, serving the raw bytes.
func (ctrl *RoomController) GetRoomPhoto(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	photo, err := ctrl.RoomSvc.GetRoomPhotoByRoomID(roomID)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "Room not found.")
			return
		}
		log.Printf("GetRoomPhoto error for room %d: %v", roomID, err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to fetch room photo", err)
		return
	}
	if len(photo) == 0 {
		utils.JSONError(c, http.StatusNotFound, "error.photoNotFound", "Room has no photo.")
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(photo), photo)
}

// UpdateRoom handles PUT /api/rooms/:id (multipart; all fields optional).
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var roomType *string
	if v, present := c.GetPostForm("roomType"); present {
		trimmed := strings.TrimSpace(v)
		roomType = &trimmed
	}

	var roomPrice *float64
	if v, present := c.GetPostForm("roomPrice"); present {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPayload", "roomPrice must be a number", err)
			return
		}
		roomPrice = &parsed
	}

	var photo []byte
	if file, err := c.FormFile("photo"); err == nil {
		photo, err = readPhotoFile(file)
		if err != nil {
			utils.JSONErrorDetails(c, http.StatusBadRequest, "error.invalidPhoto", "Failed to read photo upload", err)
			return
		}
	}

	room, err := ctrl.RoomSvc.UpdateRoom(roomID, roomType, roomPrice, photo)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "Room not found.")
		case errors.Is(err, services.ErrInvalidRoomRequest):
			utils.JSONError(c, http.StatusBadRequest, "error.invalidRoom", err.Error())
		default:
			log.Printf("UpdateRoom error for room %d: %v", roomID, err)
			utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.internal", "Failed to update room", err)
		}
		return
	}

	c.JSON(http.StatusOK, toRoomResponse(room))
}

// DeleteRoom handles DELETE /api/rooms/:id. The room's bookings go with it.
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.RoomSvc.DeleteRoom(roomID); err != nil {
		log.Printf("DeleteRoom error for room %d: %v", roomID, err)
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "error.deleteRoomFailed", "Failed to delete room", err)
		return
	}

	c.Status(http.StatusNoContent)
}
