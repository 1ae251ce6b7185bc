// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	jwtutil "libraryfront/util/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

func SetSession(c echo.Context, claims *jwtutil.SessionClaims) { c.Set(sessionKey, claims) }

// SessionFromToken reads the claims echo-jwt left under "user".
func SessionFromToken(c echo.Context) (*jwtutil.SessionClaims, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(*jwtutil.SessionClaims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("sub missing in claims")
	}
	return claims, nil
}

func Session(c echo.Context) (*jwtutil.SessionClaims, bool) {
	claims, ok := c.Get(sessionKey).(*jwtutil.SessionClaims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns "" for anonymous requests.
func UserIDFromContext(c echo.Context) string {
	if claims, ok := Session(c); ok {
		return claims.Subject
	}
	return ""
}
