package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/adityarajsrv/CareerQuill/internal/domain"
)

type DraftsRepo struct {
	pool *pgxpool.Pool
}

func NewDraftsRepo(pool *pgxpool.Pool) *DraftsRepo {
	return &DraftsRepo{pool: pool}
}

// Save inserts or replaces d, assigning an id and timestamps when missing.
func (r *DraftsRepo) Save(ctx context.Context, d *domain.Draft) error {
	if r.pool == nil {
		return domain.ErrStorageDisabled
	}
	now := time.Now().UTC()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	formB, err := json.Marshal(d.Form)
	if err != nil {
		return fmt.Errorf("encode draft form: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resume_drafts (id, user_id, template_id, form, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET template_id = EXCLUDED.template_id, form = EXCLUDED.form, updated_at = EXCLUDED.updated_at`,
		d.ID, d.UserID, d.TemplateID, formB, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *DraftsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	if r.pool == nil {
		return nil, domain.ErrStorageDisabled
	}
	var (
		d     domain.Draft
		formB []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, template_id, form, created_at, updated_at
		FROM resume_drafts WHERE id = $1`, id).
		Scan(&d.ID, &d.UserID, &d.TemplateID, &formB, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(formB, &d.Form); err != nil {
		return nil, fmt.Errorf("decode draft form: %w", err)
	}
	d.Form.Normalize()
	return &d, nil
}

// ListForUser returns the user's drafts, newest first.
func (r *DraftsRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error) {
	if r.pool == nil {
		return nil, domain.ErrStorageDisabled
	}
	var out []domain.DraftSummary
	err := queryJSON(ctx, r.pool, `SELECT coalesce(json_agg(s ORDER BY s.updated_at DESC), '[]')
		FROM (
			SELECT id, template_id,
				trim(coalesce(form->'personalInfo'->>'firstName', '') || ' ' || coalesce(form->'personalInfo'->>'lastName', '')) AS name,
				updated_at
			FROM resume_drafts WHERE user_id = $1
		) s`, &out, userID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into out.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, sql string, out interface{}, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
