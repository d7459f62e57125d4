package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxUserIDKey = "user_id"
const CtxRoleKey = "role"

func AuthMiddleware(jwtMgr *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(h, "Bearer ")
		claims, err := jwtMgr.ParseAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, _ := c.Get(CtxRoleKey)
		rStr, ok := r.(string)
		if ok {
			for _, want := range roles {
				if rStr == want {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// Identity returns the authenticated user id and role set by
// AuthMiddleware. Zero values mean the route was not protected.
func Identity(c *gin.Context) (int64, string) {
	idAny, _ := c.Get(CtxUserIDKey)
	roleAny, _ := c.Get(CtxRoleKey)
	id, _ := idAny.(int64)
	role, _ := roleAny.(string)
	return id, role
}
