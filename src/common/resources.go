package common

import (
	"strings"

	"cbs/src/db"
	"cbs/src/models"
	"cbs/src/types"
	"cbs/src/utils"

	"gorm.io/gorm"
)

func validateResourcePayload(title string, capacity int, category, location string) error {
	var errs []string
	if strings.TrimSpace(title) == "" {
		errs = append(errs, "title is required and cannot be empty")
	}
	if capacity < 0 {
		errs = append(errs, "capacity must be non-negative")
	}
	if len(category) > 80 {
		errs = append(errs, "category must be 80 characters or less")
	}
	if len(location) > 80 {
		errs = append(errs, "location must be 80 characters or less")
	}
	if len(errs) > 0 {
		return types.NewPayloadInvalid("%s", strings.Join(errs, "; "))
	}
	return nil
}

// CreateResource inserts a catalog entry. Staff and admin only; status
// defaults to draft.
func CreateResource(creatorID uint, body *types.CreateResourceRequestBody) (*models.Resource, error) {
	if err := validateResourcePayload(body.Title, body.Capacity, body.Category, body.Location); err != nil {
		return nil, err
	}
	d := db.GetDb()
	var resource models.Resource
	err := d.Transaction(func(tx *gorm.DB) error {
		var creator models.User
		if err := tx.Where(&models.User{ID: creatorID}).First(&creator).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("user %d not found", creatorID)
			}
			return err
		}
		if creator.Role != types.ROLE_STAFF && creator.Role != types.ROLE_ADMIN {
			return types.NewUnauthorized("only staff or admin can create resources")
		}
		status := types.RESOURCE_DRAFT
		if body.Status != "" {
			status = types.ResourceStatus(body.Status)
		}
		resource = models.Resource{
			Title:            body.Title,
			Slug:             utils.MakeSlug(body.Title),
			Category:         body.Category,
			Location:         body.Location,
			CategoryID:       body.CategoryID,
			LocationID:       body.LocationID,
			Capacity:         body.Capacity,
			Status:           status,
			RequiresApproval: body.RequiresApproval,
			CreatedBy:        creatorID,
		}
		if body.Description != "" {
			resource.Description = &body.Description
		}
		if len(body.AvailabilityRules) > 0 {
			resource.SetAvailabilityRules(body.AvailabilityRules)
		}
		if err := tx.Create(&resource).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// UpdateResource applies a partial update after re-validating the merged
// payload.
func UpdateResource(resourceID uint, body *types.UpdateResourceRequestBody) (*models.Resource, error) {
	d := db.GetDb()
	var resource models.Resource
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Resource{ID: resourceID}).First(&resource).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("resource %d not found", resourceID)
			}
			return err
		}
		title := resource.Title
		if body.Title != nil {
			title = *body.Title
		}
		capacity := resource.Capacity
		if body.Capacity != nil {
			capacity = *body.Capacity
		}
		category := resource.Category
		if body.Category != nil {
			category = *body.Category
		}
		location := resource.Location
		if body.Location != nil {
			location = *body.Location
		}
		if err := validateResourcePayload(title, capacity, category, location); err != nil {
			return err
		}
		updates := map[string]any{}
		if body.Title != nil {
			updates["title"] = *body.Title
			updates["slug"] = utils.MakeSlug(*body.Title)
		}
		if body.Description != nil {
			updates["description"] = *body.Description
		}
		if body.Category != nil {
			updates["category"] = *body.Category
		}
		if body.Location != nil {
			updates["location"] = *body.Location
		}
		if body.CategoryID != nil {
			updates["category_id"] = *body.CategoryID
		}
		if body.LocationID != nil {
			updates["location_id"] = *body.LocationID
		}
		if body.Capacity != nil {
			updates["capacity"] = *body.Capacity
		}
		if body.Status != nil {
			updates["status"] = types.ResourceStatus(*body.Status)
		}
		if body.RequiresApproval != nil {
			updates["requires_approval"] = *body.RequiresApproval
		}
		if len(body.AvailabilityRules) > 0 {
			resource.SetAvailabilityRules(body.AvailabilityRules)
			updates["availability_rules"] = resource.AvailabilityRules
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.
			Model(&models.Resource{}).
			Where(&models.Resource{ID: resourceID}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		if err := tx.Where(&models.Resource{ID: resourceID}).First(&resource).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// ArchiveResource flips the resource to archived; archived resources reject
// new bookings in CreateBooking.
func ArchiveResource(resourceID uint) (*models.Resource, error) {
	status := string(types.RESOURCE_ARCHIVED)
	return UpdateResource(resourceID, &types.UpdateResourceRequestBody{Status: &status})
}

func UnarchiveResource(resourceID uint) (*models.Resource, error) {
	status := string(types.RESOURCE_PUBLISHED)
	return UpdateResource(resourceID, &types.UpdateResourceRequestBody{Status: &status})
}

func GetResource(resourceID uint) (*models.Resource, error) {
	d := db.GetDb()
	var resource models.Resource
	if err := d.Where(&models.Resource{ID: resourceID}).First(&resource).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewNotFound("resource %d not found", resourceID)
		}
		return nil, err
	}
	return &resource, nil
}

// ListResourcesAdmin lists without the published-only default.
func ListResourcesAdmin(status *types.ResourceStatus, limit int) ([]models.Resource, error) {
	d := db.GetDb()
	q := d.Model(&models.Resource{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var resources []models.Resource
	if err := q.
		Order("created_at desc").
		Limit(limit).
		Find(&resources).
		Error; err != nil {
		return nil, err
	}
	return resources, nil
}
