package middlewares

import (
	"strings"

	"delivery-backend/entity"
	"delivery-backend/pkg/resp"
	"delivery-backend/services"
	"delivery-backend/utils"

	"github.com/gin-gonic/gin"
)

// Auth ตรวจ JWT + เช็คว่า session ยังไม่ถูก revoke และ (ถ้ามี) บังคับ role
// การ deactivate user จะ revoke ทุก session → token เก่าตกที่เช็คนี้ทันที
func Auth(secret string, tokens services.TokenStore, requiredRoles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		live, err := tokens.IsLive(c.Request.Context(), claims.UserID, claims.ID)
		if err != nil {
			resp.Unauthorized(c, "cannot verify session")
			c.Abort()
			return
		}
		if !live {
			resp.Unauthorized(c, "session revoked")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("jti", claims.ID)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.Forbidden(c, "forbidden")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// OptionalAuth เติมตัวตนถ้ามี token แต่ไม่บังคับ (ใช้กับ endpoint ที่ guest เรียกได้)
func OptionalAuth(secret string, tokens services.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		live, err := tokens.IsLive(c.Request.Context(), claims.UserID, claims.ID)
		if err != nil || !live {
			resp.Unauthorized(c, "session revoked")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("jti", claims.ID)
		c.Next()
	}
}
