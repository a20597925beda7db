package roommates

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"room-rental-server/payload"
	"room-rental-server/services"
)

// RegisterRoommateRoutes mounts the roommate resource under /roommate.
func RegisterRoommateRoutes(r *gin.Engine, svc *services.RoommateService) {
	group := r.Group("/roommate")
	group.GET("/all-roommates", allRoommates(svc))
	group.POST("/sort", sortRoommates(svc))
	group.POST("/get-roommate", getRoommate(svc))
	group.PATCH("/update-details/:roommateId", updateDetails(svc))
	group.PATCH("/email/:id", updateEmail(svc))
	group.DELETE("/vacate/:username", vacate(svc))
	group.POST("/send-vacate-request/:roommateId", sendVacateRequest(svc))
	group.GET("/pending-vacate-request", pendingVacateRequests(svc))
	group.PUT("/mark-read/:requestId", markVacateRead(svc))
}

func allRoommates(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roommates, err := svc.AllRoommates()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, roommates)
	}
}

func sortRoommates(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payload.RoommateSort
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid sort request", Status: false})
			return
		}
		page, err := svc.SortRoommates(req)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func getRoommate(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var details payload.LoginDetails
		if err := c.ShouldBindJSON(&details); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Username and Password are required", Status: false})
			return
		}
		roommate, err := svc.Login(details)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, roommate)
	}
}

func updateDetails(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roommateID, ok := paramID(c, "roommateId")
		if !ok {
			return
		}
		var update payload.UpdateDetails
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid update payload", Status: false})
			return
		}
		roommate, err := svc.UpdateDetails(roommateID, update)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, roommate)
	}
}

func updateEmail(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roommateID, ok := paramID(c, "id")
		if !ok {
			return
		}
		var body struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Email cannot be null or empty", Status: false})
			return
		}
		roommate, err := svc.UpdateEmail(roommateID, body.Email)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, roommate)
	}
}

func vacate(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		if err := svc.DeleteRoommate(username); err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: "Roommate deleted Successfully", Status: true})
	}
}

func sendVacateRequest(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roommateID, ok := paramID(c, "roommateId")
		if !ok {
			return
		}
		var input payload.VacateRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid vacate request", Status: false})
			return
		}
		message, err := svc.SendVacateRequest(roommateID, input)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: message, Status: true})
	}
}

func pendingVacateRequests(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requests, err := svc.PendingVacateRequests()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

func markVacateRead(svc *services.RoommateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, ok := paramID(c, "requestId")
		if !ok {
			return
		}
		if err := svc.MarkVacateRead(requestID); err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: "Marked as Read", Status: true})
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid " + name, Status: false})
		return 0, false
	}
	return uint(id), true
}
