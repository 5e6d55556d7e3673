package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/adityarajsrv/CareerQuill/internal/domain"
)

const uniqueViolation = "23505"

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) Create(ctx context.Context, u *domain.User) error {
	if r.pool == nil {
		return domain.ErrStorageDisabled
	}
	now := time.Now().UTC()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return mapUserErr(err)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// Update stores name, email and password hash.
func (r *UsersRepo) Update(ctx context.Context, u *domain.User) error {
	if r.pool == nil {
		return domain.ErrStorageDisabled
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `UPDATE users SET name = $2, email = $3, password_hash = $4, updated_at = $5 WHERE id = $1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.UpdatedAt)
	if err != nil {
		return mapUserErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	if r.pool == nil {
		return nil, domain.ErrStorageDisabled
	}
	var u domain.User
	err := r.pool.QueryRow(ctx, `SELECT id, name, email, password_hash, created_at, updated_at FROM users `+where, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func mapUserErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrEmailTaken
	}
	return err
}
