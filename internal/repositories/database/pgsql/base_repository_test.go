package pgsql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/smartstock/smartstock_backend/internal/repositories/database/pgsql"
)

// stubTx satisfies pgx.Tx with canned Commit/Rollback results. Only those two
// methods are exercised here.
type stubTx struct {
	commitErr   error
	rollbackErr error
}

var _ pgx.Tx = (*stubTx)(nil)

func (s *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (s *stubTx) Commit(ctx context.Context) error          { return s.commitErr }
func (s *stubTx) Rollback(ctx context.Context) error        { return s.rollbackErr }
func (s *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (s *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (s *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (s *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (s *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (s *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (s *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (s *stubTx) Conn() *pgx.Conn                                               { return nil }

func TestRollback_ClosedTransactionIsQuiet(t *testing.T) {
	repo := &pgsql.BaseRepository{}
	tx := &stubTx{rollbackErr: pgx.ErrTxClosed}

	assert.NoError(t, repo.Rollback(context.Background(), tx))
}

func TestRollback_RealFailureSurfaces(t *testing.T) {
	repo := &pgsql.BaseRepository{}
	tx := &stubTx{rollbackErr: errors.New("connection reset")}

	assert.Error(t, repo.Rollback(context.Background(), tx))
}

func TestCommit_FailureSurfaces(t *testing.T) {
	repo := &pgsql.BaseRepository{}
	tx := &stubTx{commitErr: errors.New("connection reset")}

	assert.Error(t, repo.Commit(context.Background(), tx))
}
