package middlewares

import (
	"fmt"
	"strings"

	"backend/pkg/apperr"
	"backend/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ตรวจ token + set userId/tenantId/role และ (ถ้ามี) บังคับ role
// tenant มาจาก claims เท่านั้น ห้ามรับจาก request parameter
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		tokenStr := ""
		if strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenStr = q // สำหรับ websocket ที่ set header ไม่ได้
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "missing_token")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			resp.Unauthorized(c, "invalid_token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			resp.Unauthorized(c, "invalid_claims")
			c.Abort()
			return
		}

		var role string
		if v, ok := claims["role"].(string); ok {
			role = v
		}
		userID := claimUint(claims, "userId")
		tenantID := claimUint(claims, "tenantId")

		if tenantID == 0 {
			resp.FromError(c, apperr.TenantContextMissing())
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Set("tenantId", tenantID)
		c.Set("role", role)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.FromError(c, apperr.Forbidden("forbidden"))
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func claimUint(claims jwt.MapClaims, key string) uint {
	switch v := claims[key].(type) {
	case float64:
		return uint(v)
	case int:
		return uint(v)
	case int64:
		return uint(v)
	case uint:
		return v
	}
	return 0
}
