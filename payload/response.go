package payload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIResponse is the uniform envelope for confirmation and error messages.
type APIResponse struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

// WriteError translates an error into the uniform JSON envelope: domain
// errors (business-rule violations carrying a Domain marker) become 400 with
// their message, everything else becomes a 500.
func WriteError(c *gin.Context, err error) {
	var de interface{ Domain() bool }
	if errors.As(err, &de) && de.Domain() {
		c.JSON(http.StatusBadRequest, APIResponse{Message: err.Error(), Status: false})
		return
	}
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error("unexpected error")
	c.JSON(http.StatusInternalServerError, APIResponse{Message: "Internal Server Error", Status: false})
}
