package common

import (
	"errors"
	"testing"
	"time"

	"cbs/src/db"
	"cbs/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		current types.BookingStatus
		action  types.BookingAction
		next    types.BookingStatus
		ok      bool
	}{
		{types.BOOKING_PENDING, types.ACTION_APPROVE, types.BOOKING_APPROVED, true},
		{types.BOOKING_PENDING, types.ACTION_REJECT, types.BOOKING_REJECTED, true},
		{types.BOOKING_PENDING, types.ACTION_CANCEL, types.BOOKING_CANCELLED, true},
		{types.BOOKING_PENDING, types.ACTION_COMPLETE, "", false},
		{types.BOOKING_APPROVED, types.ACTION_COMPLETE, types.BOOKING_COMPLETED, true},
		{types.BOOKING_APPROVED, types.ACTION_CANCEL, types.BOOKING_CANCELLED, true},
		{types.BOOKING_APPROVED, types.ACTION_APPROVE, "", false},
		{types.BOOKING_APPROVED, types.ACTION_REJECT, "", false},
		{types.BOOKING_REJECTED, types.ACTION_APPROVE, "", false},
		{types.BOOKING_REJECTED, types.ACTION_CANCEL, "", false},
		{types.BOOKING_COMPLETED, types.ACTION_CANCEL, "", false},
		{types.BOOKING_CANCELLED, types.ACTION_APPROVE, "", false},
		{types.BOOKING_CANCELLED, types.ACTION_CANCEL, "", false},
	}
	for _, tt := range tests {
		next, ok := CanTransition(tt.current, tt.action)
		assert.Equalf(t, tt.ok, ok, "%s + %s", tt.current, tt.action)
		if tt.ok {
			assert.Equal(t, tt.next, next)
		}
	}
}

func userRows(id uint, role types.UserRole) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role"}).
		AddRow(id, "someone@example.com", string(role))
}

func resourceRows(id uint, status types.ResourceStatus, capacity int, requiresApproval bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "status", "capacity", "requires_approval", "created_by"}).
		AddRow(id, "Study Room A", string(status), capacity, requiresApproval, 9)
}

func bookingRows(id, userID, resourceID uint, status types.BookingStatus, startDt, endDt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "resource_id", "status", "start_dt", "end_dt"}).
		AddRow(id, userID, resourceID, string(status), startDt, endDt)
}

func TestCreateBookingArchivedResource(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(1, types.ROLE_STUDENT))
	mock.ExpectQuery(`SELECT \* FROM "resources"`).WillReturnRows(resourceRows(2, types.RESOURCE_ARCHIVED, 10, false))
	mock.ExpectRollback()

	_, err := CreateBooking(1, 2, base, base.Add(time.Hour))
	assert.True(t, errors.Is(err, types.ErrPayloadInvalid))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingNoCapacity(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(1, types.ROLE_STUDENT))
	mock.ExpectQuery(`SELECT \* FROM "resources"`).WillReturnRows(resourceRows(2, types.RESOURCE_PUBLISHED, 0, false))
	mock.ExpectRollback()

	_, err := CreateBooking(1, 2, base, base.Add(time.Hour))
	assert.True(t, errors.Is(err, types.ErrPayloadInvalid))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingConflict(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(1, types.ROLE_STUDENT))
	mock.ExpectQuery(`SELECT \* FROM "resources"`).WillReturnRows(resourceRows(2, types.RESOURCE_PUBLISHED, 10, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := CreateBooking(1, 2, base, base.Add(time.Hour))
	assert.True(t, errors.Is(err, types.ErrConflict))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingAutoApproved(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(1, types.ROLE_STUDENT))
	mock.ExpectQuery(`SELECT \* FROM "resources"`).WillReturnRows(resourceRows(2, types.RESOURCE_PUBLISHED, 10, false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	booking, err := CreateBooking(1, 2, base, base.Add(time.Hour))
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_APPROVED, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingPendingWhenApprovalRequired(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(1, types.ROLE_STUDENT))
	mock.ExpectQuery(`SELECT \* FROM "resources"`).WillReturnRows(resourceRows(2, types.RESOURCE_PUBLISHED, 10, true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	booking, err := CreateBooking(1, 2, base, base.Add(time.Hour))
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_PENDING, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCompleteBookingBeforeEndTime(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	start := time.Now().UTC().Add(time.Hour)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(4, 1, 2, types.BOOKING_APPROVED, start, end))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(3, types.ROLE_ADMIN))
	mock.ExpectRollback()

	_, err := CompleteBooking(4, 3)
	assert.True(t, errors.Is(err, types.ErrPayloadInvalid))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCompleteBookingRequiresAdmin(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	start := time.Now().UTC().Add(-2 * time.Hour)
	end := start.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(4, 1, 2, types.BOOKING_APPROVED, start, end))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(3, types.ROLE_STAFF))
	mock.ExpectRollback()

	_, err := CompleteBooking(4, 3)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCancelBookingOwnerInvalidState(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(4, 1, 2, types.BOOKING_REJECTED, base, base.Add(time.Hour)))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(1, types.ROLE_STUDENT))
	mock.ExpectRollback()

	_, err := CancelBooking(4, 1)
	assert.True(t, errors.Is(err, types.ErrInvalidTransition))
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCancelBookingStaffBypassesTable(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).WillReturnRows(bookingRows(4, 1, 2, types.BOOKING_REJECTED, base, base.Add(time.Hour)))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(6, types.ROLE_STAFF))
	mock.ExpectExec(`UPDATE "bookings" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "resources"`).WillReturnRows(resourceRows(2, types.RESOURCE_PUBLISHED, 10, false))

	booking, err := CancelBooking(4, 6)
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_CANCELLED, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestAutoCompleteExpired(t *testing.T) {
	d, mock := NewMockDB()

	mock.ExpectExec(`UPDATE "bookings" SET`).WillReturnResult(sqlmock.NewResult(0, 3))

	err := AutoCompleteExpired(d, 0, 0)
	assert.Nil(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestUserHasCompletedBooking(t *testing.T) {
	d, mock := NewMockDB()

	mock.ExpectExec(`UPDATE "bookings" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	eligible, err := UserHasCompletedBooking(d, 1, 2)
	assert.Nil(t, err)
	assert.True(t, eligible)
	assert.Nil(t, mock.ExpectationsWereMet())
}
