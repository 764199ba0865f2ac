package utils

import "github.com/gin-gonic/gin"

func CurrentUserID(c *gin.Context) uint {
	return uintFromCtx(c, "userId")
}

// CurrentTenantID = 0 แปลว่า resolve ไม่ได้ (ต้องตอบ tenant_context_missing)
func CurrentTenantID(c *gin.Context) uint {
	return uintFromCtx(c, "tenantId")
}

func uintFromCtx(c *gin.Context, key string) uint {
	v, _ := c.Get(key)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}
