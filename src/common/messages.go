package common

import (
	"cbs/src/db"
	"cbs/src/models"
	"cbs/src/models/scopes"
	"cbs/src/types"
	"cbs/src/utils"

	"gorm.io/gorm"
)

// CreateMessage adds a booking-scoped message. Only booking participants may
// write, and messages are rejected for cancelled or rejected bookings.
func CreateMessage(bookingID, senderID uint, body string, recipientID *uint) (*models.Message, error) {
	body = utils.SanitizeBody(body)
	if body == "" {
		return nil, types.NewPayloadInvalid("message body cannot be empty")
	}
	if len([]rune(body)) > utils.MaxMessageLength {
		return nil, types.NewPayloadInvalid("message body exceeds maximum length of %d characters", utils.MaxMessageLength)
	}
	d := db.GetDb()
	var message models.Message
	err := d.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where(&models.Booking{ID: bookingID}).First(&booking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("booking %d not found", bookingID)
			}
			return err
		}
		if booking.Status == types.BOOKING_CANCELLED || booking.Status == types.BOOKING_REJECTED {
			return types.NewPayloadInvalid("cannot send messages for cancelled or rejected bookings")
		}
		ok, err := IsBookingParticipant(tx, bookingID, senderID)
		if err != nil {
			return err
		}
		if !ok {
			return types.NewUnauthorized("only booking participants can send messages")
		}
		if recipientID != nil {
			var recipient models.User
			if err := tx.Where(&models.User{ID: *recipientID}).First(&recipient).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return types.NewNotFound("recipient user %d not found", *recipientID)
				}
				return err
			}
			ok, err := IsBookingParticipant(tx, bookingID, *recipientID)
			if err != nil {
				return err
			}
			if !ok {
				return types.NewUnauthorized("recipient must be a participant in this booking")
			}
		}
		message = models.Message{
			BookingID:   bookingID,
			SenderID:    senderID,
			RecipientID: recipientID,
			Body:        body,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages pages through a booking's messages oldest first. Readers must
// be participants; hidden messages are only returned when includeHidden is
// requested by an admin path.
func ListMessages(bookingID, readerID uint, page, perPage int, includeHidden bool) ([]models.Message, error) {
	d := db.GetDb()
	var messages []models.Message
	err := d.Transaction(func(tx *gorm.DB) error {
		ok, err := IsBookingParticipant(tx, bookingID, readerID)
		if err != nil {
			return err
		}
		if !ok {
			return types.NewUnauthorized("only booking participants can read messages")
		}
		q := tx.
			Model(&models.Message{}).
			Where("booking_id = ?", bookingID)
		if !includeHidden {
			q = q.Scopes(scopes.VisibleOnly)
		}
		page = utils.ClampInt(page, 1, 1, 1000)
		perPage = utils.ClampInt(perPage, 20, 1, 100)
		if err := q.
			Order("created_at asc").
			Limit(perPage).
			Offset((page - 1) * perPage).
			Find(&messages).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ReportMessage flags a message; only participants of its booking may report.
func ReportMessage(messageID, reporterID uint) (*models.Message, error) {
	d := db.GetDb()
	var message models.Message
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Message{ID: messageID}).First(&message).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("message %d not found", messageID)
			}
			return err
		}
		ok, err := IsBookingParticipant(tx, message.BookingID, reporterID)
		if err != nil {
			return err
		}
		if !ok {
			return types.NewUnauthorized("only booking participants can report messages")
		}
		if err := tx.
			Model(&models.Message{}).
			Where(&models.Message{ID: message.ID}).
			Update("is_reported", true).
			Error; err != nil {
			return err
		}
		message.IsReported = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// HideMessage hides a message from non-admin readers. Admin only.
func HideMessage(messageID, adminID uint) (*models.Message, error) {
	d := db.GetDb()
	var message models.Message
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Message{ID: messageID}).First(&message).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("message %d not found", messageID)
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
			return types.NewUnauthorized("only admins can hide messages")
		}
		if err := tx.
			Model(&models.Message{}).
			Where(&models.Message{ID: message.ID}).
			Update("is_hidden", true).
			Error; err != nil {
			return err
		}
		message.IsHidden = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func ListReportedMessages(limit int) ([]models.Message, error) {
	d := db.GetDb()
	var messages []models.Message
	if err := d.
		Model(&models.Message{}).
		Scopes(scopes.WithReported).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).
		Error; err != nil {
		return nil, err
	}
	return messages, nil
}
