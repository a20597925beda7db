package rooms

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"room-rental-server/models"
	"room-rental-server/payload"
	"room-rental-server/services"
)

// RegisterRoomRoutes mounts the room resource under /room.
func RegisterRoomRoutes(r *gin.Engine, svc *services.RoomService) {
	group := r.Group("/room")
	group.GET("/all-rooms", allRooms(svc))
	group.GET("/get-room/:roomId", getRoom(svc))
	group.POST("/check-availability", checkAvailability(svc))
	group.POST("/book/:roomId", bookRoom(svc))
	group.POST("/add-room", addRoom(svc))
	group.PATCH("/edit-room/:roomId", editRoom(svc))
	group.DELETE("/delete-room/:roomId", deleteRoom(svc))
}

func allRooms(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := svc.AllRoomDetails()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

func getRoom(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := paramID(c, "roomId")
		if !ok {
			return
		}
		room, err := svc.GetRoomByID(roomID)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func checkAvailability(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var check payload.AvailabilityCheck
		if err := c.ShouldBindJSON(&check); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid availability request", Status: false})
			return
		}
		rooms, err := svc.CheckAvailability(check)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

func bookRoom(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := paramID(c, "roomId")
		if !ok {
			return
		}
		var req payload.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: bindingMessage(err), Status: false})
			return
		}
		message, err := svc.BookRoom(roomID, req)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: message, Status: true})
	}
}

func addRoom(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.Room
		if err := c.ShouldBindJSON(&room); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid Room Details", Status: false})
			return
		}
		message, err := svc.AddRoom(&room)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: message, Status: true})
	}
}

func editRoom(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := paramID(c, "roomId")
		if !ok {
			return
		}
		var update payload.RoomUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid Room Details", Status: false})
			return
		}
		room, err := svc.EditRoom(roomID, update)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func deleteRoom(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := paramID(c, "roomId")
		if !ok {
			return
		}
		message, err := svc.DeleteRoom(roomID)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: message, Status: true})
	}
}

// paramID parses a numeric path parameter, writing the error envelope itself
// when the value is not a number.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid " + name, Status: false})
		return 0, false
	}
	return uint(id), true
}

// bindingMessage reduces a validation failure to a single message naming the
// first invalid field.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "Validation failed for field : " + strings.ToLower(verrs[0].Field())
	}
	return "Invalid request payload"
}
