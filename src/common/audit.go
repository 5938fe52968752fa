package common

import (
	"log"

	"cbs/src/db"
	"cbs/src/models"

	"github.com/google/uuid"
)

// LogAdminAction records a moderation action. Failures are logged and
// swallowed: auditing must never fail the action it records.
func LogAdminAction(adminID uint, action, targetTable string, targetID uint, details string, ipAddr *string) {
	rid := uuid.New()
	entry := models.AuditLog{
		RequestID:   &rid,
		AdminID:     adminID,
		Action:      action,
		TargetTable: targetTable,
		TargetID:    targetID,
		Details:     details,
		IPAddr:      ipAddr,
	}
	d := db.GetDb()
	if err := d.Create(&entry).Error; err != nil {
		log.Printf("Error writing audit log entry: %s\n", err.Error())
	}
}

func ListAuditLogs(limit int) ([]models.AuditLog, error) {
	d := db.GetDb()
	var entries []models.AuditLog
	if err := d.
		Model(&models.AuditLog{}).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).
		Error; err != nil {
		return nil, err
	}
	return entries, nil
}
