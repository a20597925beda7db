package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"room-rental-server/payload"
	"room-rental-server/services"
)

// RegisterNotificationRoutes mounts the notification resource under
// /notification.
func RegisterNotificationRoutes(r *gin.Engine, svc *services.NotificationService) {
	group := r.Group("/notification")
	group.GET("/send-mail", sendMail(svc))
	group.GET("/send-rent-pending", sendRentPending(svc))
	group.GET("/load", load(svc))
}

func sendMail(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.SendMailToAll()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func sendRentPending(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.SendPendingMail()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// load manually triggers the monthly rent recalculation job.
func load(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := svc.RunMonthlyRecalculation()
		c.JSON(http.StatusOK, resp)
	}
}
