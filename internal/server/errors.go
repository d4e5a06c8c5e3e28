package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"minitask/internal/service"
)

var errInvalidRequestBody = errors.New("invalid request body")

// apiError is a status code and the message sent as {"error": message}.
type apiError struct {
	Code    int
	Message string
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

// fromServiceError maps a client error to the response the rest backend
// maps back to the same sentinel.
func fromServiceError(err error) apiError {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUnknownResource):
		return newAPIError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return newAPIError(http.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrTimeout):
		return newAPIError(http.StatusGatewayTimeout, err.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
