package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adityarajsrv/CareerQuill/internal/auth"
	"github.com/adityarajsrv/CareerQuill/internal/domain"
	"github.com/adityarajsrv/CareerQuill/pkg/apperror"
)

type AuthHandler struct {
	svc     *auth.Service
	cookies auth.Cookies
}

func NewAuthHandler(svc *auth.Service, cookies auth.Cookies) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies}
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func viewOf(u *domain.User) fiber.Map {
	return fiber.Map{"user": userView{ID: u.ID.String(), Name: u.Name, Email: u.Email}}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid payload")
	}
	u, token, err := h.svc.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	h.cookies.Set(c, token, h.svc.Tokens().TTL())
	return c.Status(fiber.StatusCreated).JSON(viewOf(u))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid payload")
	}
	u, token, err := h.svc.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	h.cookies.Set(c, token, h.svc.Tokens().TTL())
	return c.JSON(viewOf(u))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Current(c *fiber.Ctx) error {
	u := auth.UserFrom(c)
	if u == nil {
		return apperror.Unauthorized("Not authorized")
	}
	return c.JSON(viewOf(u))
}

func (h *AuthHandler) Update(c *fiber.Ctx) error {
	u := auth.UserFrom(c)
	if u == nil {
		return apperror.Unauthorized("Not authorized")
	}
	var req auth.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid payload")
	}
	updated, err := h.svc.Update(c.UserContext(), u.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(viewOf(updated))
}
