package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnals634/board-api/internal/auth"
)

// Auth verifies the authorization cookie and loads the acting account id
// into the request context. Every failure mode gets the same answer so a
// probing client learns nothing about why it was rejected.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errorMessage": "로그인이 필요한 기능입니다."})
			return
		}

		userID, err := auth.Verify(secret, cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errorMessage": "로그인이 필요한 기능입니다."})
			return
		}

		auth.SetContextUserID(c, userID)
		c.Next()
	}
}
