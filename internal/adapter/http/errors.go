package http

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/adityarajsrv/CareerQuill/internal/auth"
	"github.com/adityarajsrv/CareerQuill/internal/builder"
	"github.com/adityarajsrv/CareerQuill/internal/domain"
	"github.com/adityarajsrv/CareerQuill/internal/export"
	"github.com/adityarajsrv/CareerQuill/internal/render"
	"github.com/adityarajsrv/CareerQuill/pkg/apperror"
	"github.com/adityarajsrv/CareerQuill/pkg/ats"
)

const exportFailed = "Failed to generate PDF. Please try again."

// ErrorHandler writes every handler error as {"message": ..., "errors": ...}.
// Internal details are logged, never sent.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ae := mapError(err)
		if ae.Code >= fiber.StatusInternalServerError {
			log.Error("request failed", "method", c.Method(), "path", c.Path(), "status", ae.Code, "error", err)
		}
		body := fiber.Map{"message": ae.Message}
		if len(ae.Fields) > 0 {
			body["errors"] = ae.Fields
		}
		return c.Status(ae.Code).JSON(body)
	}
}

func mapError(err error) *apperror.AppError {
	var (
		ae     *apperror.AppError
		fe     *fiber.Error
		verr   *builder.ValidationError
		tagErr validator.ValidationErrors
		expErr *export.ExportError
		atsErr *ats.StatusError
	)
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.As(err, &fe):
		return apperror.New(fe.Code, fe.Message, err)
	case errors.As(err, &verr):
		return apperror.Validation(verr.Errors)
	case errors.As(err, &tagErr):
		fields := make([]string, 0, len(tagErr))
		for _, f := range tagErr {
			fields = append(fields, strings.ToLower(f.Field()))
		}
		return apperror.New(fiber.StatusBadRequest, "Invalid "+strings.Join(fields, ", "), err)
	case errors.Is(err, render.ErrUnknownTemplate):
		return apperror.NotFound("Template not found")
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Not found")
	case errors.Is(err, domain.ErrStorageDisabled):
		return apperror.Unavailable("Storage is not configured")
	case errors.Is(err, domain.ErrEmailTaken):
		return apperror.BadRequest("User already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperror.Unauthorized("Invalid email or password")
	case errors.Is(err, ats.ErrUnsupportedFile):
		return apperror.BadRequest(ats.ErrUnsupportedFile.Error())
	case errors.As(err, &atsErr):
		code := atsErr.StatusCode
		if code >= fiber.StatusInternalServerError {
			code = fiber.StatusBadGateway
		}
		return apperror.New(code, atsErr.Detail, err)
	case errors.As(err, &expErr), errors.Is(err, export.ErrCaptureTargetMissing):
		return apperror.New(fiber.StatusInternalServerError, exportFailed, err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.New(fiber.StatusGatewayTimeout, "Request timed out", err)
	default:
		return apperror.Internal(err)
	}
}
