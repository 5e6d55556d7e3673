package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarajsrv/CareerQuill/internal/model"
	"github.com/adityarajsrv/CareerQuill/pkg/apperror"
	"github.com/adityarajsrv/CareerQuill/pkg/ats"
)

// maxUpload caps the resume file accepted for parsing and scoring.
const maxUpload = 10 << 20

// ATSService is the external parser and scorer.
type ATSService interface {
	Parse(ctx context.Context, file ats.Upload) (model.ParseResult, error)
	Score(ctx context.Context, file ats.Upload, jobTitle, experienceLevel string) (*model.ScoreResult, error)
}

type ATSHandler struct {
	svc ATSService
}

func NewATSHandler(svc ATSService) *ATSHandler {
	return &ATSHandler{svc: svc}
}

func (h *ATSHandler) Parse(c *fiber.Ctx) error {
	file, err := readUpload(c)
	if err != nil {
		return err
	}
	res, err := h.svc.Parse(c.UserContext(), file)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// Score returns the scorer's raw fields plus the display report.
func (h *ATSHandler) Score(c *fiber.Ctx) error {
	file, err := readUpload(c)
	if err != nil {
		return err
	}
	jobTitle, level := formOrQuery(c, "job_title"), formOrQuery(c, "experience_level")
	if jobTitle == "" || level == "" {
		return apperror.BadRequest("job_title and experience_level are required")
	}
	res, err := h.svc.Score(c.UserContext(), file, jobTitle, level)
	if err != nil {
		return err
	}
	body := fiber.Map{}
	for k, v := range res.Extra {
		body[k] = v
	}
	body["ats_score"] = res.ATSScore
	body["best_score"] = res.BestScore
	body["worst_score"] = res.WorstScore
	body["improvement_suggestions"] = res.Report().Suggestions
	body["report"] = res.Report()
	return c.JSON(body)
}

func readUpload(c *fiber.Ctx) (ats.Upload, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return ats.Upload{}, apperror.BadRequest("No file uploaded")
	}
	if err := ats.CheckFileName(fh.Filename); err != nil {
		return ats.Upload{}, err
	}
	if fh.Size > maxUpload {
		return ats.Upload{}, apperror.New(fiber.StatusRequestEntityTooLarge, "File is too large", nil)
	}
	f, err := fh.Open()
	if err != nil {
		return ats.Upload{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return ats.Upload{}, err
	}
	return ats.Upload{Name: fh.Filename, Data: data}, nil
}

func formOrQuery(c *fiber.Ctx, key string) string {
	if v := c.FormValue(key); v != "" {
		return v
	}
	return c.Query(key)
}
