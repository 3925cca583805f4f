package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/jxeer/Harmonia/errors"
)

// JSON writes the uniform response envelope used by every handler.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}
	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	}
	c.JSON(status, responsedata)
}

// HandleErrors maps service-layer errors onto HTTP responses, defaulting
// unknown errors to a 500.
func HandleErrors(c *gin.Context, err error) {
	var apiErr *errs.Error
	if errors.As(err, &apiErr) {
		JSON(c, "", apiErr.Status, nil, apiErr)
		return
	}
	JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}
