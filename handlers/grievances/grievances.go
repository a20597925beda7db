package grievances

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"room-rental-server/payload"
	"room-rental-server/services"
)

// RegisterGrievanceRoutes mounts the grievance resource under /grievance.
func RegisterGrievanceRoutes(r *gin.Engine, svc *services.GrievanceService) {
	group := r.Group("/grievance")
	group.POST("/raise/:roommateId", raise(svc))
	group.GET("/pending-grievance", pending(svc))
	group.POST("/mark-as-read/:grievanceId", markRead(svc))
}

func raise(svc *services.GrievanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roommateID, ok := paramID(c, "roommateId")
		if !ok {
			return
		}
		var input payload.GrievanceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid data in Grievance", Status: false})
			return
		}
		message, err := svc.Raise(roommateID, input)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: message, Status: true})
	}
}

func pending(svc *services.GrievanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		grievancesList, err := svc.Pending()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, grievancesList)
	}
}

func markRead(svc *services.GrievanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		grievanceID, ok := paramID(c, "grievanceId")
		if !ok {
			return
		}
		message, err := svc.MarkRead(grievanceID)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: message, Status: true})
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
