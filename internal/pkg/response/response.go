package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// Redirect hints attached to error envelopes so the client can navigate.
const (
	RedirectLogin    = "/login"
	RedirectNotFound = "/404"
)

// OK sends a 200 response. Arrays/slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data any) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func fail(c *gin.Context, status int, message string, redirect string) {
	body := gin.H{"ok": 0, "code": status, "message": message}
	if redirect != "" {
		body["redirect"] = redirect
	}
	c.AbortWithStatusJSON(status, body)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message, "")
}

// Unauthorized sends a 401 and points the client at the login page.
func Unauthorized(c *gin.Context) {
	fail(c, http.StatusUnauthorized, "Please sign in to continue", RedirectLogin)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, "Not Found", "")
}

// NotFoundRedirect sends a 404 that asks the client to show the not-found page.
func NotFoundRedirect(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, message, RedirectNotFound)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	fail(c, http.StatusInternalServerError, err.Error(), "")
}

// UnprocessableEntity sends a 422 error response.
func UnprocessableEntity(c *gin.Context, message string) {
	fail(c, http.StatusUnprocessableEntity, message, "")
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	fail(c, http.StatusMethodNotAllowed, "Method Not Allowed", "")
}
