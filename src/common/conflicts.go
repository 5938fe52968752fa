package common

import (
	"time"

	"cbs/src/models"
	"cbs/src/types"

	"gorm.io/gorm"
)

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any time. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict reports whether the window overlaps any PENDING or APPROVED
// booking on the resource. COMPLETED bookings are only considered when
// includeCompleted is set; FindConflicts always includes them. The asymmetry
// is intentional, do not unify without a product decision.
func HasConflict(tx *gorm.DB, resourceID uint, startDt, endDt time.Time, excludeBookingID uint, includeCompleted bool) (bool, error) {
	if err := ValidateTimeWindow(startDt, endDt); err != nil {
		return false, err
	}
	statuses := []types.BookingStatus{types.BOOKING_APPROVED, types.BOOKING_PENDING}
	if includeCompleted {
		statuses = append(statuses, types.BOOKING_COMPLETED)
	}
	q := tx.
		Model(&models.Booking{}).
		Where("resource_id = ?", resourceID).
		Where("status IN ?", statuses).
		Where("start_dt < ?", endDt).
		Where("end_dt > ?", startDt)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindConflicts returns every booking overlapping the window, including
// COMPLETED ones: a completed-but-unarchived past booking can still represent
// a physically occupied slot worth surfacing.
func FindConflicts(tx *gorm.DB, resourceID uint, startDt, endDt time.Time, excludeBookingID uint) ([]models.Booking, error) {
	if err := ValidateTimeWindow(startDt, endDt); err != nil {
		return nil, err
	}
	statuses := []types.BookingStatus{types.BOOKING_APPROVED, types.BOOKING_PENDING, types.BOOKING_COMPLETED}
	q := tx.
		Model(&models.Booking{}).
		Where("resource_id = ?", resourceID).
		Where("status IN ?", statuses).
		Where("start_dt < ?", endDt).
		Where("end_dt > ?", startDt)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	var conflicts []models.Booking
	if err := q.Order("start_dt asc").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}
