package common

import (
	"strings"

	"cbs/src/db"
	"cbs/src/models"
	"cbs/src/models/scopes"
	"cbs/src/types"

	"gorm.io/gorm"
)

func validateReviewPayload(rating int, comment string) (int, string, error) {
	if rating < 1 || rating > 5 {
		return 0, "", types.NewPayloadInvalid("rating must be 1..5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return 0, "", types.NewPayloadInvalid("comment required")
	}
	if len([]rune(comment)) > 1000 {
		return 0, "", types.NewPayloadInvalid("comment too long")
	}
	return rating, comment, nil
}

// recomputeResourceRating rewrites rating_avg and rating_count from a full
// scan of the resource's non-hidden reviews. Always recomputed, never
// incrementally adjusted, so the aggregate cannot drift. Runs inside the
// transaction of the triggering mutation.
func recomputeResourceRating(tx *gorm.DB, resourceID uint) error {
	var agg struct {
		Avg   *float64
		Count int64
	}
	if err := tx.
		Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(id) AS count").
		Where("resource_id = ?", resourceID).
		Where("is_hidden = ?", false).
		Scan(&agg).
		Error; err != nil {
		return err
	}
	ratingAvg := 0.0
	if agg.Count > 0 && agg.Avg != nil {
		ratingAvg = *agg.Avg
	}
	if err := tx.
		Model(&models.Resource{}).
		Where(&models.Resource{ID: resourceID}).
		Updates(map[string]any{"rating_avg": ratingAvg, "rating_count": agg.Count}).
		Error; err != nil {
		return err
	}
	return nil
}

// CreateOrUpdateReview upserts the (resource, user) review and recomputes the
// resource aggregate in the same transaction. Eligibility requires at least
// one COMPLETED booking; the auto-complete sweep runs first so a booking that
// just expired still counts.
func CreateOrUpdateReview(resourceID, userID uint, rating int, comment string) (*models.Review, error) {
	rating, comment, err := validateReviewPayload(rating, comment)
	if err != nil {
		return nil, err
	}
	d := db.GetDb()
	var review models.Review
	err = d.Transaction(func(tx *gorm.DB) error {
		var resource models.Resource
		if err := tx.Where(&models.Resource{ID: resourceID}).First(&resource).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("resource %d not found", resourceID)
			}
			return err
		}
		eligible, err := UserHasCompletedBooking(tx, userID, resourceID)
		if err != nil {
			return err
		}
		if !eligible {
			return types.NewUnauthorized("user must have a completed booking to review this resource")
		}
		err = tx.
			Where(&models.Review{ResourceID: resourceID, UserID: userID}).
			First(&review).
			Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == gorm.ErrRecordNotFound {
			review = models.Review{
				ResourceID: resourceID,
				UserID:     userID,
				Rating:     rating,
				Comment:    comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		} else {
			if err := tx.
				Model(&models.Review{}).
				Where(&models.Review{ID: review.ID}).
				Updates(map[string]any{"rating": rating, "comment": comment}).
				Error; err != nil {
				return err
			}
			review.Rating = rating
			review.Comment = comment
		}
		return recomputeResourceRating(tx, resourceID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func ListReviews(resourceID uint, includeHidden bool, limit, offset int) ([]models.Review, error) {
	d := db.GetDb()
	q := d.
		Model(&models.Review{}).
		Where("resource_id = ?", resourceID)
	if !includeHidden {
		q = q.Scopes(scopes.VisibleOnly)
	}
	var reviews []models.Review
	if err := q.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&reviews).
		Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func setReviewHidden(reviewID, adminID uint, hidden bool) (*models.Review, error) {
	d := db.GetDb()
	var review models.Review
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Review{ID: reviewID}).First(&review).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("review %d not found", reviewID)
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
			return types.NewUnauthorized("only admins can hide or unhide reviews")
		}
		if err := tx.
			Model(&models.Review{}).
			Where(&models.Review{ID: review.ID}).
			Update("is_hidden", hidden).
			Error; err != nil {
			return err
		}
		review.IsHidden = hidden
		return recomputeResourceRating(tx, review.ResourceID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// HideReview removes a review from the visible set and the aggregate.
func HideReview(reviewID, adminID uint) (*models.Review, error) {
	return setReviewHidden(reviewID, adminID, true)
}

func UnhideReview(reviewID, adminID uint) (*models.Review, error) {
	return setReviewHidden(reviewID, adminID, false)
}

func setReviewReported(reviewID uint, reported bool) (*models.Review, error) {
	d := db.GetDb()
	var review models.Review
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Review{ID: reviewID}).First(&review).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("review %d not found", reviewID)
			}
			return err
		}
		if err := tx.
			Model(&models.Review{}).
			Where(&models.Review{ID: review.ID}).
			Update("is_reported", reported).
			Error; err != nil {
			return err
		}
		review.IsReported = reported
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ReportReview flags a review for moderation. Aggregates are untouched.
func ReportReview(reviewID uint) (*models.Review, error) {
	return setReviewReported(reviewID, true)
}

func UnreportReview(reviewID uint) (*models.Review, error) {
	return setReviewReported(reviewID, false)
}

// AverageRating reads the denormalized aggregate off the resource row.
func AverageRating(resourceID uint) (float64, error) {
	d := db.GetDb()
	var resource models.Resource
	if err := d.Where(&models.Resource{ID: resourceID}).First(&resource).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, types.NewNotFound("resource %d not found", resourceID)
		}
		return 0, err
	}
	return resource.RatingAvg, nil
}

func ListReportedReviews(limit int) ([]models.Review, error) {
	d := db.GetDb()
	var reviews []models.Review
	if err := d.
		Model(&models.Review{}).
		Scopes(scopes.WithReported).
		Order("created_at desc").
		Limit(limit).
		Find(&reviews).
		Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func ListHiddenReviews(limit int) ([]models.Review, error) {
	d := db.GetDb()
	var reviews []models.Review
	if err := d.
		Model(&models.Review{}).
		Scopes(scopes.WithHidden).
		Order("created_at desc").
		Limit(limit).
		Find(&reviews).
		Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
