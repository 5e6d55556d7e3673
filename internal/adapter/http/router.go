package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/adityarajsrv/CareerQuill/internal/auth"
	"github.com/adityarajsrv/CareerQuill/internal/usecase"
)

type RouterDeps struct {
	Generator *usecase.Generator
	Auth      *auth.Service
	Cookies   auth.Cookies
	ATS       ATSService
	ClientURL string
	Log       *slog.Logger
}

// NewApp builds the fiber app with every route mounted.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "CareerQuill",
		ErrorHandler:          ErrorHandler(log),
		BodyLimit:             maxUpload + 1<<20,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     deps.ClientURL,
		AllowCredentials: true,
	}))
	app.Use(requestLogger(log))

	h := NewHandler(deps.Generator)
	ah := NewAuthHandler(deps.Auth, deps.Cookies)
	identify := auth.Identify(deps.Auth, deps.Cookies)
	protect := auth.Protect(deps.Auth, deps.Cookies)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api.Get("/templates", h.Templates)

	resume := api.Group("/resume", identify)
	resume.Post("/validate", h.Validate)
	resume.Post("/generate", h.Generate)
	resume.Post("/preview", h.Preview)
	resume.Post("/download", h.Download)

	api.Post("/drafts", identify, h.SaveDraft)
	api.Get("/drafts", protect, h.ListDrafts)
	api.Get("/drafts/:id", identify, h.GetDraft)
	api.Get("/pdf/generate", identify, h.PrintPDF)
	app.Get("/print/:template/:draft", identify, h.PrintView)

	if deps.ATS != nil {
		ath := NewATSHandler(deps.ATS)
		api.Post("/ats/parse", ath.Parse)
		api.Post("/ats/score", ath.Score)
	}

	authGroup := api.Group("/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Post("/logout", ah.Logout)
	authGroup.Get("/current", protect, ah.Current)
	authGroup.Put("/update", protect, ah.Update)

	return app
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = mapError(err).Code
		}
		log.Info("http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start))
		return err
	}
}
