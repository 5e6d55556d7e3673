package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarajsrv/CareerQuill/internal/domain"
	"github.com/adityarajsrv/CareerQuill/pkg/apperror"
)

const localsUser = "user"

// Cookies writes and clears the httpOnly session cookie.
type Cookies struct {
	Name   string
	Secure bool
}

func (c Cookies) Set(ctx *fiber.Ctx, token string, ttl time.Duration) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.Name,
		Value:    token,
		HTTPOnly: true,
		Secure:   c.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(ttl),
		Path:     "/",
	})
}

func (c Cookies) Clear(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.Name,
		Value:    "",
		HTTPOnly: true,
		Secure:   c.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Unix(0, 0),
		Path:     "/",
	})
}

// token reads the session cookie, falling back to a bearer header.
func (c Cookies) token(ctx *fiber.Ctx) string {
	if t := ctx.Cookies(c.Name); t != "" {
		return t
	}
	if h := ctx.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Protect rejects requests without a valid session.
func Protect(svc *Service, cookies Cookies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := cookies.token(c)
		if tok == "" {
			return apperror.Unauthorized("Not authorized")
		}
		u, err := svc.Authenticate(c.UserContext(), tok)
		if err != nil {
			return apperror.New(fiber.StatusUnauthorized, "Not authorized, token failed", err)
		}
		c.Locals(localsUser, u)
		return c.Next()
	}
}

// Identify attaches the user when a valid session is present and never
// rejects the request.
func Identify(svc *Service, cookies Cookies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if svc == nil {
			return c.Next()
		}
		if tok := cookies.token(c); tok != "" {
			if u, err := svc.Authenticate(c.UserContext(), tok); err == nil {
				c.Locals(localsUser, u)
			}
		}
		return c.Next()
	}
}

// UserFrom returns the user attached by Protect or Identify, or nil.
func UserFrom(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(localsUser).(*domain.User)
	return u
}
