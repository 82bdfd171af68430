package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey = "token"
	userKey  = "currentUser"
)

// Protect requires a valid bearer token whose user still exists and has not
// changed their password since the token was issued. The user is stored in
// the request locals, see CurrentUser.
func Protect(tokens *services.TokenService, auth *services.AuthService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.Keyfunc,
		Claims:     &services.TokenClaims{},
		ContextKey: tokenKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) && c.Get(fiber.HeaderAuthorization) == "" {
				return fiber.NewError(fiber.StatusUnauthorized, "You are not logged in, please log in to get access")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token, please log in again")
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token, please log in again")
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token, please log in again")
			}
			id, err := services.IdentityFromClaims(claims)
			if err != nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token, please log in again")
			}

			user, err := auth.Authenticate(c.UserContext(), id)
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return fiber.NewError(fiber.StatusUnauthorized, "The user belonging to this token no longer exists")
			case errors.Is(err, services.ErrPasswordChanged):
				return fiber.NewError(fiber.StatusUnauthorized, "Password recently changed, please log in again")
			case err != nil:
				return err
			}

			c.Locals(userKey, user)
			return c.Next()
		},
	})
}

// RestrictTo allows only users whose role is listed. It must run after
// Protect.
func RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.HasRole(roles...) {
			return fiber.NewError(fiber.StatusForbidden, "You are not authorized to do that")
		}
		return c.Next()
	}
}

// CurrentUser returns the user attached by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
