package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/adityarajsrv/CareerQuill/internal/auth"
	"github.com/adityarajsrv/CareerQuill/internal/model"
	"github.com/adityarajsrv/CareerQuill/internal/render"
	"github.com/adityarajsrv/CareerQuill/internal/usecase"
	"github.com/adityarajsrv/CareerQuill/pkg/apperror"
)

type Handler struct {
	generator *usecase.Generator
}

func NewHandler(g *usecase.Generator) *Handler {
	return &Handler{generator: g}
}

type saveDraftReq struct {
	Template string          `json:"template"`
	Form     model.FormState `json:"form"`
}

func (h *Handler) Templates(c *fiber.Ctx) error {
	return c.JSON(h.generator.Templates())
}

func (h *Handler) Validate(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return err
	}
	if errs := h.generator.Validate(form); len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return c.JSON(fiber.Map{"valid": true})
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return err
	}
	res, err := h.generator.Generate(form, templateParam(c), renderOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Preview renders the form as-is for the live preview pane.
func (h *Handler) Preview(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return err
	}
	page, err := h.generator.Preview(form, templateParam(c), renderOptions(c))
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(page)
}

func (h *Handler) Download(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return err
	}
	f, err := h.generator.Download(c.UserContext(), form, templateParam(c), renderOptions(c))
	if err != nil {
		return err
	}
	c.Attachment(f.Name)
	return c.Send(f.Data)
}

func (h *Handler) SaveDraft(c *fiber.Ctx) error {
	var req saveDraftReq
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid payload")
	}
	if req.Template == "" {
		req.Template = render.DefaultTemplate
	}
	var owner *uuid.UUID
	if u := auth.UserFrom(c); u != nil {
		owner = &u.ID
	}
	d, err := h.generator.SaveDraft(c.UserContext(), req.Form, req.Template, owner)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": d.ID})
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.BadRequest("invalid draft id")
	}
	d, err := h.generator.Draft(c.UserContext(), id, viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(d.Form)
}

// ListDrafts returns the signed-in user's drafts, newest first.
func (h *Handler) ListDrafts(c *fiber.Ctx) error {
	u := auth.UserFrom(c)
	if u == nil {
		return apperror.Unauthorized("Not authorized")
	}
	list, err := h.generator.Drafts(c.UserContext(), u.ID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// PrintView serves the page the headless browser loads for server-side printing.
func (h *Handler) PrintView(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("draft"))
	if err != nil {
		return apperror.BadRequest("invalid draft id")
	}
	access := usecase.Access{Viewer: viewerID(c), Signature: c.Query("sig")}
	page, err := h.generator.PrintView(c.UserContext(), c.Params("template"), id, access, render.Options{PhotoURL: photoURL(c)})
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.SendString(page)
}

func (h *Handler) PrintPDF(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("draft"))
	if err != nil {
		return apperror.BadRequest("invalid draft id")
	}
	f, err := h.generator.PrintPDF(c.UserContext(), templateParam(c), id, viewerID(c))
	if err != nil {
		return err
	}
	c.Attachment(f.Name)
	return c.Send(f.Data)
}

func parseForm(c *fiber.Ctx) (model.FormState, error) {
	var form model.FormState
	if err := c.BodyParser(&form); err != nil {
		return form, apperror.BadRequest("invalid payload")
	}
	form.Normalize()
	return form, nil
}

func templateParam(c *fiber.Ctx) string {
	return c.Query("template", render.DefaultTemplate)
}

// renderOptions passes the viewer's name explicitly; templates never read
// request state.
func renderOptions(c *fiber.Ctx) render.Options {
	opts := render.Options{PhotoURL: photoURL(c)}
	if u := auth.UserFrom(c); u != nil {
		opts.ViewerName = u.Name
	}
	return opts
}

func viewerID(c *fiber.Ctx) *uuid.UUID {
	if u := auth.UserFrom(c); u != nil {
		return &u.ID
	}
	return nil
}

// photoURL accepts absolute https URLs only; the export browser loads the
// photo from the server's network.
func photoURL(c *fiber.Ctx) string {
	u, err := url.Parse(strings.TrimSpace(c.Query("photo")))
	if err != nil || !strings.EqualFold(u.Scheme, "https") || u.Host == "" {
		return ""
	}
	return u.String()
}
