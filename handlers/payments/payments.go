package payments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"room-rental-server/models"
	"room-rental-server/payload"
	"room-rental-server/services"
)

// RegisterPaymentRoutes mounts the payment resource under /payments.
func RegisterPaymentRoutes(r *gin.Engine, svc *services.PaymentService) {
	group := r.Group("/payments")
	group.POST("/payrent", payRent(svc))
	group.POST("/paymentCallback", paymentCallback(svc))
	group.GET("/paymentDetails", paymentDetails(svc))
	group.POST("/add", addPayment(svc))
	group.GET("/sort", sortPayments(svc))
	group.GET("/search/:username", searchUsername(svc))
}

func payRent(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Username string `json:"username" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Username cannot be null or empty", Status: false})
			return
		}
		order, err := svc.CreatePaymentForUser(body.Username)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func paymentCallback(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payload.PaymentCallbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid callback payload", Status: false})
			return
		}
		message, err := svc.UpdateStatus(req)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payload.APIResponse{Message: message, Status: true})
	}
}

func paymentDetails(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := svc.AllPayments()
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

func addPayment(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment models.Payment
		if err := c.ShouldBindJSON(&payment); err != nil {
			c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid payment payload", Status: false})
			return
		}
		dto, err := svc.AddPayment(&payment)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto)
	}
}

func sortPayments(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		sortField := c.DefaultQuery("sortField", "payment_date")
		sortOrder := c.DefaultQuery("sortOrder", "desc")

		var paymentDate *time.Time
		if raw := c.Query("paymentDate"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, payload.APIResponse{Message: "Invalid paymentDate, expected YYYY-MM-DD", Status: false})
				return
			}
			paymentDate = &parsed
		}

		result, err := svc.SortPayments(page, limit, paymentDate, sortField, sortOrder)
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func searchUsername(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := svc.SearchUsername(c.Param("username"))
		if err != nil {
			payload.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}
