package scopes

import (
	"cbs/src/types"

	"gorm.io/gorm"
)

func WithPendingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", types.BOOKING_PENDING)
}

func WithReported(db *gorm.DB) *gorm.DB {
	return db.Where("is_reported = ?", true)
}

func WithHidden(db *gorm.DB) *gorm.DB {
	return db.Where("is_hidden = ?", true)
}

func VisibleOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_hidden = ?", false)
}
