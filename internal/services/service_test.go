package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rewritely/rewritely-be/internal/database"
	"github.com/rewritely/rewritely-be/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, users *UserService, email string) models.User {
	t.Helper()
	user, err := users.Register("Test User", email, "hunter2hunter2")
	require.NoError(t, err)
	return user
}
