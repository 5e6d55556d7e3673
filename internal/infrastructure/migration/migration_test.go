package migration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	stmts  []string
	failAt int
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	if r.failAt > 0 && len(r.stmts) == r.failAt {
		return nil, errors.New("permission denied")
	}
	return pgconn.CommandTag("CREATE TABLE"), nil
}

func TestRun_AppliesInOrder(t *testing.T) {
	db := &recordingExecer{}
	require.NoError(t, Run(context.Background(), db, Migrations()))

	require.Len(t, db.stmts, len(Migrations()))
	assert.Contains(t, db.stmts[0], "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, db.stmts[1], "resume_drafts")
	for _, s := range db.stmts {
		assert.True(t, strings.Contains(s, "IF NOT EXISTS"), s)
	}
}

func TestRun_StopsOnFailure(t *testing.T) {
	db := &recordingExecer{failAt: 2}
	err := Run(context.Background(), db, Migrations())
	assert.ErrorContains(t, err, "create_resume_drafts")
	assert.Len(t, db.stmts, 2)
}

func TestRunMigrations_NilPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil))
}
