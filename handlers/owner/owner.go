package owner

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"room-rental-server/payload"
	"room-rental-server/services"
)

// RegisterOwnerRoutes mounts the owner dashboard routes under /owner.
// Everything except login sits behind the token middleware.
func RegisterOwnerRoutes(r *gin.Engine, ownerSvc *services.OwnerService, roomSvc *services.RoomService, jwtSecret string) {
	group := r.Group("/owner")
	group.POST("/login", login(ownerSvc))

	protected := group.Group("")
	protected.Use(AuthMiddleware(ownerSvc, jwtSecret))
	protected.GET("/overview", overview(roomSvc))
}

func login(svc *services.OwnerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var details payload.OwnerLogin
		if err := c.ShouldBindJSON(&details); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Owner name and password are required", Status: false})
			return
		}
		message, token, err := svc.Login(details)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"status":  true,
			"token":   token,
		})
	}
}

func overview(svc *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := svc.AllRoomDetails()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}
