package dao

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

const allocateQuery = "SELECT get_next_ticket_number($1, $2)"

func TestSequenceAllocator_Allocate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(allocateQuery)).
		WithArgs("event-1", 3).
		WillReturnRows(sqlmock.NewRows([]string{"get_next_ticket_number"}).AddRow(7))

	start, err := NewSequenceAllocator(db).Allocate(context.Background(), "event-1", 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), start)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceAllocator_AllocateErrors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{
			name:    "event missing",
			dbErr:   &pgconn.PgError{Code: pgerrcode.NoDataFound, Message: "event not found"},
			wantErr: ErrEventNotFound,
		},
		{
			name:    "function missing",
			dbErr:   &pgconn.PgError{Code: pgerrcode.UndefinedFunction, Message: "function does not exist"},
			wantErr: ErrAllocatorUnavailable,
		},
		{
			name:    "connection lost",
			dbErr:   &pgconn.PgError{Code: pgerrcode.AdminShutdown, Message: "terminating connection"},
			wantErr: ErrAllocatorUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectQuery(regexp.QuoteMeta(allocateQuery)).WillReturnError(tt.dbErr)

			_, err := NewSequenceAllocator(db).Allocate(context.Background(), "event-1", 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSequenceAllocator_RejectsNonPositiveStart(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(allocateQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"get_next_ticket_number"}).AddRow(0))

	_, err := NewSequenceAllocator(db).Allocate(context.Background(), "event-1", 1)
	assert.ErrorIs(t, err, ErrAllocatorUnavailable)
}

func TestEventDAO_FindByCodeNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "events" WHERE code = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}))

	_, err := NewEventDAO(db).FindByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDrawDAO_DrawNext(t *testing.T) {
	const query = "SELECT * FROM draw_next_winner($1, $2)"

	t.Run("no undrawn tickets", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("event-1", "random").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "winning_ticket_number", "winning_order_id", "method", "drawn_at"}))

		_, err := NewDrawDAO(db).DrawNext(context.Background(), "event-1", "random")
		assert.ErrorIs(t, err, ErrNoTicketsAvailable)
	})

	t.Run("function missing", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedFunction})

		_, err := NewDrawDAO(db).DrawNext(context.Background(), "event-1", "random")
		assert.ErrorIs(t, err, ErrDrawUnavailable)
	})
}

func TestDrawDAO_InsertTakesDrawnAtFromDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	dbNow := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtextextended($1, 0))")).
		WithArgs("draw:event-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "draws" ("id","event_id","winning_ticket_number","winning_order_id","method") VALUES ($1,$2,$3,$4,$5) RETURNING "drawn_at"`)).
		WithArgs(sqlmock.AnyArg(), "event-1", int64(4), "order-1", "manual").
		WillReturnRows(sqlmock.NewRows([]string{"drawn_at"}).AddRow(dbNow))
	mock.ExpectCommit()

	created, err := NewDrawDAO(db).Insert(context.Background(), Draw{
		EventID:             "event-1",
		WinningTicketNumber: 4,
		WinningOrderID:      "order-1",
		Method:              "manual",
		DrawnAt:             time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.DrawnAt.Equal(dbNow))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDrawDAO_FindByEventIDOrdersByTimeThenID(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "draws" WHERE event_id = $1 ORDER BY drawn_at ASC, id ASC`)).
		WithArgs("event-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "winning_ticket_number"}).
			AddRow("a", "event-1", 3).
			AddRow("b", "event-1", 1))

	draws, err := NewDrawDAO(db).FindByEventID(context.Background(), "event-1")
	require.NoError(t, err)
	require.Len(t, draws, 2)
	assert.Equal(t, "a", draws[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
