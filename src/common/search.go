package common

import (
	"net/url"
	"strconv"
	"time"

	"cbs/src/db"
	"cbs/src/models"
	"cbs/src/types"

	"gorm.io/gorm"
)

// ParseResourceFilters reads search predicates off the query string. Invalid
// or unparseable values are silently dropped rather than erroring since this
// path also serves anonymous users.
func ParseResourceFilters(values url.Values) types.ResourceFilters {
	f := types.ResourceFilters{
		Query:    values.Get("query"),
		Category: values.Get("category"),
		Location: values.Get("location"),
		Sort:     types.SORT_RECENT,
	}
	if raw := values.Get("capacity_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			f.CapacityMin = &v
		}
	}
	if raw := values.Get("date"); raw != "" {
		if day, err := time.Parse("2006-01-02", raw); err == nil {
			f.Date = &day
		}
	}
	if raw := values.Get("status"); raw != "" {
		switch types.ResourceStatus(raw) {
		case types.RESOURCE_DRAFT, types.RESOURCE_PUBLISHED, types.RESOURCE_ARCHIVED:
			status := types.ResourceStatus(raw)
			f.Status = &status
		}
	}
	switch types.SortOrder(values.Get("sort")) {
	case types.SORT_MOST_BOOKED:
		f.Sort = types.SORT_MOST_BOOKED
	case types.SORT_TOP_RATED:
		f.Sort = types.SORT_TOP_RATED
	}
	return f
}

// ApplyResourceFilters composes the filter predicates into one query plan.
// Status defaults to published when not specified.
func ApplyResourceFilters(tx *gorm.DB, f types.ResourceFilters) *gorm.DB {
	q := tx.Model(&models.Resource{})

	if f.Query != "" {
		term := "%" + f.Query + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", term, term)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.CapacityMin != nil {
		q = q.Where("capacity >= ?", *f.CapacityMin)
	}
	if f.Date != nil {
		dayStart := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.Add(24 * time.Hour)
		q = q.Where(
			"NOT EXISTS (SELECT 1 FROM bookings WHERE bookings.resource_id = resources.id AND bookings.status IN ? AND bookings.start_dt < ? AND bookings.end_dt > ?)",
			[]types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_APPROVED},
			dayEnd,
			dayStart,
		)
	}
	status := types.RESOURCE_PUBLISHED
	if f.Status != nil {
		status = *f.Status
	}
	q = q.Where("resources.status = ?", status)

	switch f.Sort {
	case types.SORT_MOST_BOOKED:
		// Resources with zero bookings sort last.
		q = q.
			Joins(
				"LEFT JOIN (SELECT resource_id, COUNT(id) AS booking_count FROM bookings WHERE status IN ? GROUP BY resource_id) AS booking_counts ON booking_counts.resource_id = resources.id",
				[]types.BookingStatus{types.BOOKING_APPROVED, types.BOOKING_COMPLETED},
			).
			Order("booking_counts.booking_count DESC NULLS LAST").
			Order("resources.created_at DESC")
	case types.SORT_TOP_RATED:
		q = q.
			Order("resources.rating_avg DESC").
			Order("resources.rating_count DESC").
			Order("resources.id DESC")
	default:
		q = q.Order("resources.created_at DESC")
	}
	return q
}

// SearchResources runs the composed query plan with pagination.
func SearchResources(f types.ResourceFilters, limit, offset int) ([]models.Resource, error) {
	d := db.GetDb()
	var resources []models.Resource
	if err := ApplyResourceFilters(d, f).
		Limit(limit).
		Offset(offset).
		Find(&resources).
		Error; err != nil {
		return nil, err
	}
	return resources, nil
}
