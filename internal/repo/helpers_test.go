package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/trucklog/backend/internal/domain"
	"github.com/trucklog/backend/internal/repo"
	"github.com/trucklog/backend/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, giving free per-test isolation without
// any cleanup SQL.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies migrations first.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// seedUser inserts a user inside the test transaction so rows with a user_id
// foreign key have something to point at. Each call gets a unique username.
func seedUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()

	user, err := repo.NewUserRepo(tx).Create(context.Background(), domain.User{
		Username: "driver-" + uuid.NewString(),
		Password: "pw",
		Name:     "Test Driver",
		Role:     "driver",
	})
	require.NoError(t, err, "seed user")
	return user
}
