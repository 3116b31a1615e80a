package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dcastillo-dev/usuarios-api/pkg/helpers"
	"github.com/dcastillo-dev/usuarios-api/pkg/response"
)

// SessionKey builds the redis key holding a usuario's session hash.
func SessionKey(userID int64) string {
	return "usuario:session:" + strconv.FormatInt(userID, 10)
}

// Auth validates the access token and ensures an active session exists in
// Redis. On success it sets userID (int64), userEmail and userFullName in
// the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		key := SessionKey(claims.UserID)
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", data["email"])
		c.Set("userFullName", data["full_name"])
		c.Next()
	}
}
