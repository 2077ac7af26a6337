package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ResolveIdentity fills in the caller's identity without requiring one. A Bearer
// token wins when present; otherwise the legacy User-Id / Is-Admin headers the SPA
// sends are honoured. Absent both, the caller is a guest.
func ResolveIdentity(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		claims, err := parseToken(authHeader[len("Bearer "):])
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}
		// JWT numbers decode as float64; anything else is a malformed token.
		rawID, ok := claims["userId"].(float64)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}
		userID := uint(rawID)
		c.Locals("userID", &userID)
		if isAdmin, ok := claims["isAdmin"].(bool); ok {
			c.Locals("isAdmin", isAdmin)
		}
		return c.Next()
	}

	if h := c.Get("User-Id"); h != "" {
		id, err := strconv.ParseUint(h, 10, 32)
		if err != nil {
			return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User-Id header!", nil)
		}
		userID := uint(id)
		c.Locals("userID", &userID)
	}

	if h := c.Get("Is-Admin"); strings.EqualFold(h, "true") || h == "1" {
		c.Locals("isAdmin", true)
	}

	return c.Next()
}

// CallerID returns the authenticated user's id, or nil for guests.
func CallerID(c *fiber.Ctx) *uint {
	if id, ok := c.Locals("userID").(*uint); ok {
		return id
	}
	return nil
}

// CallerIsAdmin reports whether the caller has the admin role.
func CallerIsAdmin(c *fiber.Ctx) bool {
	isAdmin, ok := c.Locals("isAdmin").(bool)
	return ok && isAdmin
}

// RequireUser rejects guests.
func RequireUser(c *fiber.Ctx) error {
	if CallerID(c) == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}
	return c.Next()
}

// RequireAdmin rejects everyone without the admin role.
func RequireAdmin(c *fiber.Ctx) error {
	if CallerIsAdmin(c) {
		return c.Next()
	}
	if CallerID(c) == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}
	return JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
}
