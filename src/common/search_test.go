package common

import (
	"net/url"
	"testing"
	"time"

	"cbs/src/models"
	"cbs/src/types"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseResourceFilters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := ParseResourceFilters(url.Values{})
		assert.Empty(t, f.Query)
		assert.Nil(t, f.CapacityMin)
		assert.Nil(t, f.Date)
		assert.Nil(t, f.Status)
		assert.Equal(t, types.SORT_RECENT, f.Sort)
	})

	t.Run("full set", func(t *testing.T) {
		f := ParseResourceFilters(url.Values{
			"query":        {"projector"},
			"category":     {"lab"},
			"location":     {"north"},
			"capacity_min": {"8"},
			"date":         {"2026-04-01"},
			"status":       {"draft"},
			"sort":         {"top_rated"},
		})
		assert.Equal(t, "projector", f.Query)
		assert.Equal(t, "lab", f.Category)
		assert.Equal(t, "north", f.Location)
		assert.Equal(t, 8, *f.CapacityMin)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *f.Date)
		assert.Equal(t, types.RESOURCE_DRAFT, *f.Status)
		assert.Equal(t, types.SORT_TOP_RATED, f.Sort)
	})

	t.Run("invalid values are dropped", func(t *testing.T) {
		f := ParseResourceFilters(url.Values{
			"capacity_min": {"abc"},
			"date":         {"04/01/2026"},
			"status":       {"pending"},
			"sort":         {"alphabetical"},
		})
		assert.Nil(t, f.CapacityMin)
		assert.Nil(t, f.Date)
		assert.Nil(t, f.Status)
		assert.Equal(t, types.SORT_RECENT, f.Sort)
	})

	t.Run("negative capacity is dropped", func(t *testing.T) {
		f := ParseResourceFilters(url.Values{"capacity_min": {"-1"}})
		assert.Nil(t, f.CapacityMin)
	})
}

func dryRunSQL(t *testing.T, f types.ResourceFilters) string {
	t.Helper()
	d, _ := NewMockDB()
	session := d.Session(&gorm.Session{DryRun: true})
	stmt := ApplyResourceFilters(session, f).Find(&[]models.Resource{}).Statement
	return stmt.SQL.String()
}

func TestApplyResourceFiltersSQL(t *testing.T) {
	t.Run("defaults to published", func(t *testing.T) {
		sql := dryRunSQL(t, types.ResourceFilters{Sort: types.SORT_RECENT})
		assert.Contains(t, sql, `resources.status = $1`)
		assert.Contains(t, sql, "resources.created_at DESC")
		assert.NotContains(t, sql, "ILIKE")
	})

	t.Run("text search hits title and description", func(t *testing.T) {
		sql := dryRunSQL(t, types.ResourceFilters{Query: "lab", Sort: types.SORT_RECENT})
		assert.Contains(t, sql, "title ILIKE")
		assert.Contains(t, sql, "description ILIKE")
	})

	t.Run("date filter excludes overlapping bookings", func(t *testing.T) {
		day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		sql := dryRunSQL(t, types.ResourceFilters{Date: &day, Sort: types.SORT_RECENT})
		assert.Contains(t, sql, "NOT EXISTS")
		assert.Contains(t, sql, "bookings.start_dt <")
		assert.Contains(t, sql, "bookings.end_dt >")
	})

	t.Run("most_booked joins the count subquery", func(t *testing.T) {
		sql := dryRunSQL(t, types.ResourceFilters{Sort: types.SORT_MOST_BOOKED})
		assert.Contains(t, sql, "LEFT JOIN")
		assert.Contains(t, sql, "booking_counts.booking_count DESC NULLS LAST")
	})

	t.Run("top_rated orders by aggregate then id", func(t *testing.T) {
		sql := dryRunSQL(t, types.ResourceFilters{Sort: types.SORT_TOP_RATED})
		assert.Contains(t, sql, "resources.rating_avg DESC")
		assert.Contains(t, sql, "resources.rating_count DESC")
		assert.Contains(t, sql, "resources.id DESC")
	})

	t.Run("capacity and category filters", func(t *testing.T) {
		capacity := 8
		sql := dryRunSQL(t, types.ResourceFilters{Category: "lab", CapacityMin: &capacity, Sort: types.SORT_RECENT})
		assert.Contains(t, sql, "category =")
		assert.Contains(t, sql, "capacity >=")
	})
}
