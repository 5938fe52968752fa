package boot

import (
	"log"
	"time"

	"cbs/src/common"
	"cbs/src/db"
	"cbs/src/lib"
	"cbs/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Resource{},
		&models.Booking{},
		&models.Review{},
		&models.Message{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the periodic sweep that completes approved bookings
// whose end time has passed. The sweep also runs lazily on reads, the job
// only bounds how stale an untouched booking can get.
func InitScheduler() {
	id, err := lib.CreateCronJob(common.SweepExpiredBookings, 5*time.Minute)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s\n", *id)
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	sched.Start()
}
