package resp

import (
	"net/http"

	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, code string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": code})
}
func Unauthorized(c *gin.Context, code string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": code})
}
func Forbidden(c *gin.Context, code string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": code})
}
func NotFound(c *gin.Context, code string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": code})
}

// FromError map apperr.Kind → HTTP status; internal detail ไม่หลุดไปหา client
func FromError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": code, "details": err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": code})
	case apperr.KindTenantContext:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": code})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": code})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": code})
	case apperr.KindProviderNotImplemented:
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": code})
	case apperr.KindStorageUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": code})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal_error"})
	}
}
