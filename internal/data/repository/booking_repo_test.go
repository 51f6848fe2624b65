package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedRow satisfies pgx.Row with a canned Scan.
type scriptedRow struct {
	scan func(dest ...any) error
}

func (r scriptedRow) Scan(dest ...any) error { return r.scan(dest...) }

// scriptedTx plays the transaction side of the booking store. It records the
// order of statements so the lock/check/write/commit sequencing is assertable.
type scriptedTx struct {
	t *testing.T

	conflicts  int
	updateRows int64

	events       []string
	lockArgs     []any
	conflictArgs []any

	committed  bool
	rolledBack bool
}

func (tx *scriptedTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "pg_advisory_xact_lock"):
		tx.events = append(tx.events, "lock")
		tx.lockArgs = args
		return pgconn.NewCommandTag("SELECT 1"), nil
	case strings.Contains(sql, "UPDATE bookings"):
		tx.events = append(tx.events, "update")
		return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", tx.updateRows)), nil
	default:
		tx.t.Fatalf("unexpected exec in tx: %s", sql)
		return pgconn.CommandTag{}, nil
	}
}

func (tx *scriptedTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	switch {
	case strings.Contains(sql, "COUNT(*)"):
		tx.events = append(tx.events, "conflict-check")
		tx.conflictArgs = args
		return scriptedRow{scan: func(dest ...any) error {
			*(dest[0].(*int)) = tx.conflicts
			return nil
		}}
	case strings.Contains(sql, "INSERT INTO bookings"):
		tx.events = append(tx.events, "insert")
		return scriptedRow{scan: func(dest ...any) error {
			*(dest[0].(*int64)) = 42
			return nil
		}}
	default:
		tx.t.Fatalf("unexpected query in tx: %s", sql)
		return nil
	}
}

func (tx *scriptedTx) Commit(ctx context.Context) error {
	tx.events = append(tx.events, "commit")
	tx.committed = true
	return nil
}

func (tx *scriptedTx) Rollback(ctx context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

func (tx *scriptedTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, fmt.Errorf("nested tx not scripted")
}

func (tx *scriptedTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, fmt.Errorf("copy not scripted")
}

func (tx *scriptedTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (tx *scriptedTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (tx *scriptedTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, fmt.Errorf("prepare not scripted")
}

func (tx *scriptedTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("query not scripted")
}

func (tx *scriptedTx) Conn() *pgx.Conn { return nil }

// scriptedDB hands out the scripted transaction.
type scriptedDB struct {
	t  *testing.T
	tx *scriptedTx
}

func (db *scriptedDB) Begin(ctx context.Context) (pgx.Tx, error) { return db.tx, nil }

func (db *scriptedDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.t.Fatalf("unexpected query outside tx: %s", sql)
	return nil, nil
}

func (db *scriptedDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.t.Fatalf("unexpected query row outside tx: %s", sql)
	return nil
}

func (db *scriptedDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.t.Fatalf("unexpected exec outside tx: %s", sql)
	return pgconn.CommandTag{}, nil
}

func (db *scriptedDB) Ping(ctx context.Context) error { return nil }

func (db *scriptedDB) Close() {}

func stayBooking() *entity.Booking {
	return &entity.Booking{
		RoomID:     7,
		GuestID:    3,
		CheckIn:    time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC),
		TotalPrice: 240,
		NumGuests:  2,
		Status:     entity.BookingStatusPending,
	}
}

func TestCreateLocksChecksInsertsCommits(t *testing.T) {
	tx := &scriptedTx{t: t}
	repo := NewBookingRepository(&scriptedDB{t: t, tx: tx}, zap.NewNop())

	booking := stayBooking()
	require.NoError(t, repo.Create(context.Background(), booking))

	assert.Equal(t, []string{"lock", "conflict-check", "insert", "commit"}, tx.events)
	assert.Equal(t, int64(42), booking.ID)
	assert.False(t, tx.rolledBack)

	// The lock takes the single-bigint form; the (int4, int4) overload
	// would reject an int8 room id at parse time.
	require.Len(t, tx.lockArgs, 1)
	key, ok := tx.lockArgs[0].(int64)
	require.True(t, ok, "lock key must be int64, got %T", tx.lockArgs[0])
	assert.Equal(t, roomLockKey(booking.RoomID), key)
	assert.Equal(t, advisoryKeyRoom<<32|booking.RoomID, key)
}

func TestCreateConflictSkipsInsert(t *testing.T) {
	tx := &scriptedTx{t: t, conflicts: 1}
	repo := NewBookingRepository(&scriptedDB{t: t, tx: tx}, zap.NewNop())

	booking := stayBooking()
	err := repo.Create(context.Background(), booking)
	assert.ErrorIs(t, err, entity.ErrRoomUnavailable)

	assert.Equal(t, []string{"lock", "conflict-check"}, tx.events)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Zero(t, booking.ID)
}

func TestUpdateLocksChecksWritesCommits(t *testing.T) {
	tx := &scriptedTx{t: t, updateRows: 1}
	repo := NewBookingRepository(&scriptedDB{t: t, tx: tx}, zap.NewNop())

	booking := stayBooking()
	booking.ID = 9
	require.NoError(t, repo.Update(context.Background(), booking))

	assert.Equal(t, []string{"lock", "conflict-check", "update", "commit"}, tx.events)

	require.Len(t, tx.lockArgs, 1)
	_, ok := tx.lockArgs[0].(int64)
	require.True(t, ok, "lock key must be int64, got %T", tx.lockArgs[0])

	// The conflict check excludes the booking's own row.
	require.NotEmpty(t, tx.conflictArgs)
	assert.Equal(t, booking.ID, tx.conflictArgs[len(tx.conflictArgs)-1])
}

func TestUpdateConflictSkipsWrite(t *testing.T) {
	tx := &scriptedTx{t: t, conflicts: 1}
	repo := NewBookingRepository(&scriptedDB{t: t, tx: tx}, zap.NewNop())

	booking := stayBooking()
	booking.ID = 9
	err := repo.Update(context.Background(), booking)
	assert.ErrorIs(t, err, entity.ErrRoomUnavailable)

	assert.Equal(t, []string{"lock", "conflict-check"}, tx.events)
	assert.True(t, tx.rolledBack)
}

func TestUpdateMissingBooking(t *testing.T) {
	tx := &scriptedTx{t: t, updateRows: 0}
	repo := NewBookingRepository(&scriptedDB{t: t, tx: tx}, zap.NewNop())

	booking := stayBooking()
	booking.ID = 404
	err := repo.Update(context.Background(), booking)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)

	assert.Equal(t, []string{"lock", "conflict-check", "update"}, tx.events)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
