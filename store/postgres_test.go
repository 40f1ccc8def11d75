package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"barbershop-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var appointmentColumns = []string{
	"id", "customer_name", "email", "phone", "date", "time",
	"service", "artist", "notes", "created_at", "updated_at",
}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewPostgresStore(gdb), mock
}

func TestPostgresStore_FindByDateRange(t *testing.T) {
	s, mock := newMockStore(t)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	rows := sqlmock.NewRows(appointmentColumns).
		AddRow("6f1c1d2e-1111-4a4a-9b9b-000000000001", "Ana", "ana@example.com", "912345678",
			from, "10:00", "Corte", "Zé", "", from, from)
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE date >= \$1 AND date < \$2`).
		WithArgs(from, to).
		WillReturnRows(rows)

	got, err := s.FindByDateRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].CustomerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteByID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "appointments" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "appointments" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := s.DeleteByID(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteByID(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteBefore(t *testing.T) {
	s, mock := newMockStore(t)
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM "appointments" WHERE date < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.DeleteBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateByIDMissingReturnsNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE "appointments" SET`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	artist := "Tiago"
	_, err := s.UpdateByID(context.Background(), "missing", models.AppointmentPatch{Artist: &artist})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PropagatesErrors(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT \* FROM "appointments"`).WillReturnError(boom)

	_, err := s.FindAll(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateByIDReturnsUpdatedRow(t *testing.T) {
	s, mock := newMockStore(t)
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	id := "6f1c1d2e-1111-4a4a-9b9b-000000000001"

	rows := sqlmock.NewRows(appointmentColumns).
		AddRow(id, "Ana", "ana@example.com", "912345678",
			day, "10:00", "Corte", "Tiago", "", day, day.Add(time.Hour))
	mock.ExpectQuery(`UPDATE "appointments" SET .* WHERE id = \$\d+ RETURNING \*`).
		WillReturnRows(rows)

	artist := "Tiago"
	got, err := s.UpdateByID(context.Background(), id, models.AppointmentPatch{Artist: &artist})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Tiago", got.Artist)
	assert.Equal(t, "Ana", got.CustomerName)
	assert.Equal(t, "912345678", got.Phone)
	assert.True(t, got.Date.Equal(day))
	assert.NoError(t, mock.ExpectationsWereMet())
}
