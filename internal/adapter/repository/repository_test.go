package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/adityarajsrv/CareerQuill/internal/domain"
)

func TestNilPoolReportsStorageDisabled(t *testing.T) {
	ctx := context.Background()
	drafts := NewDraftsRepo(nil)
	users := NewUsersRepo(nil)

	assert.ErrorIs(t, drafts.Save(ctx, &domain.Draft{}), domain.ErrStorageDisabled)
	_, err := drafts.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
	_, err = drafts.ListForUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)

	assert.ErrorIs(t, users.Create(ctx, &domain.User{}), domain.ErrStorageDisabled)
	_, err = users.GetByEmail(ctx, "a@b.co")
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
	assert.ErrorIs(t, users.Update(ctx, &domain.User{}), domain.ErrStorageDisabled)
}

func TestMapUserErr(t *testing.T) {
	assert.ErrorIs(t, mapUserErr(&pgconn.PgError{Code: uniqueViolation}), domain.ErrEmailTaken)
	other := errors.New("conn reset")
	assert.Same(t, other, mapUserErr(other))
	assert.NoError(t, mapUserErr(nil))
}
