package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the signed token travels in. Its value is
// "Bearer <token>", matching the header-style framing clients expect.
const CookieName = "authorization"

const bearerPrefix = "Bearer "

const contextUserKey = "auth_user_id"

var (
	ErrBadCredential = errors.New("auth: malformed or invalid credential")
	errUnexpectedAlg = errors.New("auth: unexpected signing method")
	errMissingUserID = errors.New("auth: token carries no user id")
)

// Issue signs a token embedding the account id. No expiry claim is set;
// the credential lives as long as the cookie does.
func Issue(secret []byte, userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	})
	return token.SignedString(secret)
}

// Verify checks the "Bearer <token>" cookie value and returns the embedded
// account id.
func Verify(secret []byte, cookieValue string) (int, error) {
	if !strings.HasPrefix(cookieValue, bearerPrefix) {
		return 0, ErrBadCredential
	}
	raw := strings.TrimPrefix(cookieValue, bearerPrefix)

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedAlg
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrBadCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrBadCredential
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errMissingUserID
	}
	return int(id), nil
}

// SetContextUserID stores the verified account id on the request context.
func SetContextUserID(c *gin.Context, userID int) {
	c.Set(contextUserKey, userID)
}

// CurrentUserID returns the account id the middleware verified for this
// request. The second return is false on unguarded routes.
func CurrentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
