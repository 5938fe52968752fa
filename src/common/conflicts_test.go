package common

import (
	"errors"
	"testing"
	"time"

	"cbs/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	hour := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical windows", hour(0), hour(2), hour(0), hour(2), true},
		{"partial overlap", hour(0), hour(2), hour(1), hour(3), true},
		{"containment", hour(0), hour(4), hour(1), hour(2), true},
		{"adjacent end-to-start", hour(0), hour(2), hour(2), hour(4), false},
		{"adjacent start-to-end", hour(2), hour(4), hour(0), hour(2), false},
		{"disjoint", hour(0), hour(1), hour(3), hour(4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// overlap is symmetric
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestHasConflictInvalidWindow(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := HasConflict(nil, 1, base.Add(time.Hour), base, 0, false)
	assert.True(t, errors.Is(err, types.ErrInvalidWindow))

	_, err = FindConflicts(nil, 1, base, base, 0)
	assert.True(t, errors.Is(err, types.ErrInvalidWindow))
}

func TestHasConflictCountsOverlaps(t *testing.T) {
	d, mock := NewMockDB()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.
		ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WithArgs(uint(1), string(types.BOOKING_APPROVED), string(types.BOOKING_PENDING), base.Add(time.Hour), base).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	conflict, err := HasConflict(d, 1, base, base.Add(time.Hour), 0, false)
	assert.Nil(t, err)
	assert.True(t, conflict)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestHasConflictIncludeCompleted(t *testing.T) {
	d, mock := NewMockDB()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.
		ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WithArgs(uint(1), string(types.BOOKING_APPROVED), string(types.BOOKING_PENDING), string(types.BOOKING_COMPLETED), base.Add(time.Hour), base).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	conflict, err := HasConflict(d, 1, base, base.Add(time.Hour), 0, true)
	assert.Nil(t, err)
	assert.False(t, conflict)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestHasConflictExcludesBooking(t *testing.T) {
	d, mock := NewMockDB()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.
		ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WithArgs(uint(1), string(types.BOOKING_APPROVED), string(types.BOOKING_PENDING), base.Add(time.Hour), base, uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	conflict, err := HasConflict(d, 1, base, base.Add(time.Hour), 7, false)
	assert.Nil(t, err)
	assert.False(t, conflict)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestFindConflictsIncludesCompleted(t *testing.T) {
	d, mock := NewMockDB()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "resource_id", "user_id", "status", "start_dt", "end_dt"}).
		AddRow(1, 1, 2, string(types.BOOKING_COMPLETED), base, base.Add(time.Hour)).
		AddRow(2, 1, 3, string(types.BOOKING_APPROVED), base.Add(30*time.Minute), base.Add(2*time.Hour))
	mock.
		ExpectQuery(`SELECT \* FROM "bookings".*ORDER BY start_dt asc`).
		WithArgs(uint(1), string(types.BOOKING_APPROVED), string(types.BOOKING_PENDING), string(types.BOOKING_COMPLETED), base.Add(2*time.Hour), base).
		WillReturnRows(rows)

	conflicts, err := FindConflicts(d, 1, base, base.Add(2*time.Hour), 0)
	assert.Nil(t, err)
	assert.Len(t, conflicts, 2)
	assert.Equal(t, types.BOOKING_COMPLETED, conflicts[0].Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}
