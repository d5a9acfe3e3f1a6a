package handler // handler defines http handlers

import (
    "errors"

    "github.com/labstack/echo/v4"
)

// getUsername extracts the authenticated username that JWTAuth stored
// in the context. The claim arrives as an interface{} because it is
// read straight out of jwt.MapClaims.
func getUsername(c echo.Context) (string, error) {
    if s, ok := c.Get("username").(string); ok && s != "" {
        return s, nil
    }
    return "", errors.New("invalid username in context")
}

// getRole extracts the authenticated role from the context.
func getRole(c echo.Context) (string, error) {
    if s, ok := c.Get("role").(string); ok && s != "" {
        return s, nil
    }
    return "", errors.New("invalid role in context")
}
