package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrStorageDisabled is returned by repositories running without a database.
	ErrStorageDisabled = errors.New("storage is not configured")
	ErrEmailTaken      = errors.New("email already registered")
)

// Draft is a saved copy of the resume form. Anonymous drafts have no UserID.
type Draft struct {
	ID         uuid.UUID       `json:"id"`
	UserID     *uuid.UUID      `json:"user_id,omitempty"`
	TemplateID string          `json:"template_id"`
	Form       model.FormState `json:"form"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DraftSummary is a listing row for a user's saved drafts.
type DraftSummary struct {
	ID         uuid.UUID `json:"id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	UpdatedAt  time.Time `json:"updated_at"`
}
