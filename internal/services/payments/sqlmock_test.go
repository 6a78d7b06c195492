package payments

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
)

// newMockConn wires a sqlmock-backed *sql.DB into a postgres.Connection so
// UseCase methods can run their real postgres.WithTx commit/rollback path
// while every repository call underneath is satisfied by a hand-authored
// mock instead of hitting a real database.
func newMockConn(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()

	return &postgres.Connection{DB: db, Connected: true}, mock
}
