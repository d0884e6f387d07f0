package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"prompt-backend/internal/auth"
)

const usernameKey = "username"

// authFailureDetail maps gate failures to the client-facing detail text.
func authFailureDetail(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "Missing token"
	case errors.Is(err, auth.ErrMalformedToken):
		return "Invalid token format"
	default:
		return "Invalid or expired token"
	}
}

// requireUser is the single auth gate for every protected route.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, err := auth.Authorize(s.tokens, c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, authFailureDetail(err)).SetInternal(err)
		}
		c.Set(usernameKey, username)
		return next(c)
	}
}

func usernameFrom(c echo.Context) string {
	username, _ := c.Get(usernameKey).(string)
	return username
}
