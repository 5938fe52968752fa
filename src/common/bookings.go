package common

import (
	"fmt"
	"log"
	"time"

	"cbs/src/db"
	"cbs/src/lib"
	"cbs/src/models"
	"cbs/src/models/scopes"
	"cbs/src/types"

	"gorm.io/gorm"
)

// bookingTransitions is the explicit state machine for bookings, keyed on
// (current status, action). Absent entries are invalid transitions. Staff and
// admin cancellation bypasses the table, see CancelBooking.
var bookingTransitions = map[types.BookingStatus]map[types.BookingAction]types.BookingStatus{
	types.BOOKING_PENDING: {
		types.ACTION_APPROVE: types.BOOKING_APPROVED,
		types.ACTION_REJECT:  types.BOOKING_REJECTED,
		types.ACTION_CANCEL:  types.BOOKING_CANCELLED,
	},
	types.BOOKING_APPROVED: {
		types.ACTION_COMPLETE: types.BOOKING_COMPLETED,
		types.ACTION_CANCEL:   types.BOOKING_CANCELLED,
	},
}

// CanTransition returns the target status for an action from the current
// status, or false when the transition is not permitted.
func CanTransition(current types.BookingStatus, action types.BookingAction) (types.BookingStatus, bool) {
	actions, ok := bookingTransitions[current]
	if !ok {
		return "", false
	}
	next, ok := actions[action]
	return next, ok
}

// CreateBooking runs the full admission path: resource checks, window
// validation, conflict detection, then a single transactional insert. Initial
// status is APPROVED only for published resources that do not require
// approval. Notifications are best-effort and never roll back the booking.
func CreateBooking(userID, resourceID uint, startDt, endDt time.Time) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	var resource models.Resource
	err := d.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where(&models.User{ID: userID}).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("user %d not found", userID)
			}
			return err
		}
		if err := tx.Where(&models.Resource{ID: resourceID}).First(&resource).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("resource %d not found", resourceID)
			}
			return err
		}
		if resource.Status == types.RESOURCE_ARCHIVED {
			return types.NewPayloadInvalid("cannot book archived resources")
		}
		if resource.Capacity <= 0 {
			return types.NewPayloadInvalid("resource has no capacity available")
		}
		if err := ValidateTimeWindow(startDt, endDt); err != nil {
			return err
		}
		conflict, err := HasConflict(tx, resourceID, startDt, endDt, 0, false)
		if err != nil {
			return err
		}
		if conflict {
			return types.NewConflict("booking conflicts with existing approved or pending booking")
		}

		status := types.BOOKING_PENDING
		if resource.Status == types.RESOURCE_PUBLISHED && !resource.RequiresApproval {
			status = types.BOOKING_APPROVED
		}
		booking = models.Booking{
			UserID:     userID,
			ResourceID: resourceID,
			StartDt:    startDt,
			EndDt:      endDt,
			Status:     status,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	n := lib.GetNotifier()
	if booking.Status == types.BOOKING_APPROVED {
		n.Send([]uint{userID}, "Booking Approved", fmt.Sprintf("Your booking for %s has been automatically approved.", resource.Title))
	} else {
		n.Send([]uint{userID}, "Booking Pending", fmt.Sprintf("Your booking for %s is pending approval.", resource.Title))
	}
	n.Send([]uint{resource.CreatedBy}, "New Booking", fmt.Sprintf("A new booking has been created for %s.", resource.Title))

	return &booking, nil
}

func canModerateBooking(actor *models.User, resource *models.Resource) bool {
	if actor.Role == types.ROLE_STAFF || actor.Role == types.ROLE_ADMIN {
		return true
	}
	return resource.CreatedBy == actor.ID
}

// ApproveBooking moves PENDING to APPROVED. The conflict check runs again
// inside the transaction: another overlapping booking may have been approved
// since creation, and only one of two mutually-overlapping bookings may ever
// reach APPROVED.
func ApproveBooking(bookingID, approverID uint) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	var resource models.Resource
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("booking %d not found", bookingID)
			}
			return err
		}
		next, ok := CanTransition(booking.Status, types.ACTION_APPROVE)
		if !ok {
			return types.NewInvalidTransition("cannot approve booking with status %s", booking.Status)
		}
		var approver models.User
		if err := tx.Where(&models.User{ID: approverID}).First(&approver).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("user %d not found", approverID)
			}
			return err
		}
		if err := tx.Where(&models.Resource{ID: booking.ResourceID}).First(&resource).Error; err != nil {
			return err
		}
		if !canModerateBooking(&approver, &resource) {
			return types.NewUnauthorized("only staff, admin, or resource owner can approve bookings")
		}
		conflict, err := HasConflict(tx, booking.ResourceID, booking.StartDt, booking.EndDt, booking.ID, false)
		if err != nil {
			return err
		}
		if conflict {
			return types.NewConflict("cannot approve: conflict detected with existing booking")
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("status", next).
			Error; err != nil {
			return err
		}
		booking.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	lib.GetNotifier().Send([]uint{booking.UserID}, "Booking Approved", fmt.Sprintf("Your booking for %s has been approved.", resource.Title))
	return &booking, nil
}

// RejectBooking moves PENDING to REJECTED under the same authorization as
// approval.
func RejectBooking(bookingID, approverID uint) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	var resource models.Resource
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("booking %d not found", bookingID)
			}
			return err
		}
		next, ok := CanTransition(booking.Status, types.ACTION_REJECT)
		if !ok {
			return types.NewInvalidTransition("cannot reject booking with status %s", booking.Status)
		}
		var approver models.User
		if err := tx.Where(&models.User{ID: approverID}).First(&approver).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("user %d not found", approverID)
			}
			return err
		}
		if err := tx.Where(&models.Resource{ID: booking.ResourceID}).First(&resource).Error; err != nil {
			return err
		}
		if !canModerateBooking(&approver, &resource) {
			return types.NewUnauthorized("only staff, admin, or resource owner can reject bookings")
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("status", next).
			Error; err != nil {
			return err
		}
		booking.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	lib.GetNotifier().Send([]uint{booking.UserID}, "Booking Rejected", fmt.Sprintf("Your booking for %s has been rejected.", resource.Title))
	return &booking, nil
}

// CancelBooking lets the requester cancel their own PENDING or APPROVED
// booking; staff and admin may cancel from any state.
func CancelBooking(bookingID, userID uint) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("booking %d not found", bookingID)
			}
			return err
		}
		var requester models.User
		if err := tx.Where(&models.User{ID: userID}).First(&requester).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("user %d not found", userID)
			}
			return err
		}
		privileged := requester.Role == types.ROLE_STAFF || requester.Role == types.ROLE_ADMIN
		if !privileged {
			if booking.UserID != userID {
				return types.NewUnauthorized("you do not have permission to cancel this booking")
			}
			if _, ok := CanTransition(booking.Status, types.ACTION_CANCEL); !ok {
				return types.NewInvalidTransition("cannot cancel booking with status %s", booking.Status)
			}
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("status", types.BOOKING_CANCELLED).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_CANCELLED
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resource models.Resource
	if err := d.Where(&models.Resource{ID: booking.ResourceID}).First(&resource).Error; err == nil {
		lib.GetNotifier().Send([]uint{booking.UserID}, "Booking Cancelled", fmt.Sprintf("Your booking for %s has been cancelled.", resource.Title))
	}
	return &booking, nil
}

// CompleteBooking marks an APPROVED booking COMPLETED. Admin only, and only
// once the booking's end time has passed.
func CompleteBooking(bookingID, adminID uint) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("booking %d not found", bookingID)
			}
			return err
		}
		var admin models.User
		if err := tx.Where(&models.User{ID: adminID}).First(&admin).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("user %d not found", adminID)
			}
			return err
		}
		if admin.Role != types.ROLE_ADMIN {
			return types.NewUnauthorized("only admin can complete bookings")
		}
		next, ok := CanTransition(booking.Status, types.ACTION_COMPLETE)
		if !ok {
			return types.NewInvalidTransition("cannot complete booking with status %s", booking.Status)
		}
		if time.Now().UTC().Before(booking.EndDt) {
			return types.NewPayloadInvalid("cannot complete booking before end time")
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("status", next).
			Error; err != nil {
			return err
		}
		booking.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resource models.Resource
	if err := d.Where(&models.Resource{ID: booking.ResourceID}).First(&resource).Error; err == nil {
		lib.GetNotifier().Send([]uint{booking.UserID}, "Booking Completed", fmt.Sprintf("Your booking for %s has been marked as completed.", resource.Title))
	}
	return &booking, nil
}

// AutoCompleteExpired transitions APPROVED bookings whose end time has passed
// to COMPLETED. Reads that observe booking status run it first, so status is
// eventually correct by the time it is observed without a scheduled job.
func AutoCompleteExpired(tx *gorm.DB, userID, resourceID uint) error {
	q := tx.
		Model(&models.Booking{}).
		Where("status = ?", types.BOOKING_APPROVED).
		Where("end_dt < ?", time.Now().UTC())
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if resourceID != 0 {
		q = q.Where("resource_id = ?", resourceID)
	}
	if err := q.Update("status", types.BOOKING_COMPLETED).Error; err != nil {
		return err
	}
	return nil
}

// SweepExpiredBookings runs the auto-complete pass globally. Wired to the
// periodic scheduler job as reinforcement of the lazy read-time sweep.
func SweepExpiredBookings() {
	d := db.GetDb()
	if err := d.Transaction(func(tx *gorm.DB) error {
		return AutoCompleteExpired(tx, 0, 0)
	}); err != nil {
		log.Printf("Error while sweeping expired bookings: %s\n", err.Error())
	}
}

// ListBookingsForUser returns the user's bookings newest-start first, running
// the auto-complete sweep beforehand.
func ListBookingsForUser(userID uint) ([]models.Booking, error) {
	d := db.GetDb()
	var bookings []models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := AutoCompleteExpired(tx, userID, 0); err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("user_id = ?", userID).
			Order("start_dt desc").
			Find(&bookings).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func ListBookingsForResource(resourceID uint) ([]models.Booking, error) {
	d := db.GetDb()
	var bookings []models.Booking
	if err := d.
		Model(&models.Booking{}).
		Where("resource_id = ?", resourceID).
		Order("start_dt desc").
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UserHasCompletedBooking reports review eligibility. The sweep runs first so
// a booking that just expired still counts.
func UserHasCompletedBooking(tx *gorm.DB, userID, resourceID uint) (bool, error) {
	if err := AutoCompleteExpired(tx, userID, resourceID); err != nil {
		return false, err
	}
	var count int64
	if err := tx.
		Model(&models.Booking{}).
		Where("resource_id = ?", resourceID).
		Where("user_id = ?", userID).
		Where("status = ?", types.BOOKING_COMPLETED).
		Count(&count).
		Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsBookingParticipant reports whether the user is the requester, the resource
// owner, or an admin.
func IsBookingParticipant(tx *gorm.DB, bookingID, userID uint) (bool, error) {
	var booking models.Booking
	if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if booking.UserID == userID {
		return true, nil
	}
	var resource models.Resource
	if err := tx.Where(&models.Resource{ID: booking.ResourceID}).First(&resource).Error; err == nil {
		if resource.CreatedBy == userID {
			return true, nil
		}
	}
	var user models.User
	if err := tx.Where(&models.User{ID: userID}).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return user.Role == types.ROLE_ADMIN, nil
}

func GetBooking(bookingID uint) (*models.Booking, error) {
	d := db.GetDb()
	var booking models.Booking
	if err := d.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewNotFound("booking %d not found", bookingID)
		}
		return nil, err
	}
	return &booking, nil
}

func ListPendingBookings(limit int) ([]models.Booking, error) {
	d := db.GetDb()
	var bookings []models.Booking
	if err := d.
		Model(&models.Booking{}).
		Scopes(scopes.WithPendingStatus).
		Order("created_at desc").
		Limit(limit).
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
