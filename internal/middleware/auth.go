package middleware

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie name carrying the session token for
// browser-originated requests. API clients may use a Bearer header instead.
const SessionCookie = "session"

// LoginPath is the login entry point unauthenticated requests are sent to.
const LoginPath = "/auth/login"

// RequireAuth enforces authentication for state-changing routes.
// Anonymous requests are redirected to the login entry point with a `next`
// query parameter holding the originally requested URL, so the client can
// return to the attempted action after logging in.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := identityFromRequest(c, secret)
		if !ok {
			target := LoginPath + "?next=" + url.QueryEscape(c.OriginalURL())
			return c.Redirect(target, fiber.StatusFound)
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// OptionalAuth resolves the viewer identity when a valid token is present
// and proceeds anonymously otherwise. Listing pages are viewer-independent
// but handlers still want the identity for logging.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, ok := identityFromRequest(c, secret); ok {
			c.Locals("userID", userID)
		}
		return c.Next()
	}
}

// identityFromRequest extracts and validates the session token from the
// session cookie or the Authorization header.
func identityFromRequest(c *fiber.Ctx, secret string) (uint, bool) {
	tokenString := c.Cookies(SessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0, false
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	// User ID travels in the "sub" claim as a string per RFC 7519.
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}

	return uint(userID), true
}
