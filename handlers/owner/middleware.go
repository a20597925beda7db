package owner

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"room-rental-server/payload"
	"room-rental-server/services"
	"room-rental-server/utils"
)

// AuthMiddleware validates the Bearer token and loads the owner it belongs
// to. Requests without a valid token are rejected before reaching handlers.
func AuthMiddleware(svc *services.OwnerService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, payload.APIResponse{Message: "Authorization token is missing", Status: false})
			return
		}
		ownerID, err := utils.ParseOwnerToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, payload.APIResponse{Message: "Invalid or expired token", Status: false})
			return
		}
		owner, err := svc.FindOwner(ownerID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, payload.APIResponse{Message: "Owner not found", Status: false})
			return
		}
		c.Set("owner", owner)
		c.Next()
	}
}
