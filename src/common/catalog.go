package common

import (
	"cbs/src/db"
	"cbs/src/models"
	"cbs/src/types"

	"gorm.io/gorm"
)

func ListCategories(includeInactive bool) ([]models.Category, error) {
	d := db.GetDb()
	q := d.Model(&models.Category{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var categories []models.Category
	if err := q.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func CreateCategory(body *types.CreateCategoryRequestBody) (*models.Category, error) {
	d := db.GetDb()
	category := models.Category{
		Name:     body.Name,
		IsActive: true,
	}
	if body.Description != "" {
		category.Description = &body.Description
	}
	if body.IsActive != nil {
		category.IsActive = *body.IsActive
	}
	err := d.Transaction(func(tx *gorm.DB) error {
		var existing models.Category
		err := tx.Where(&models.Category{Name: body.Name}).First(&existing).Error
		if err == nil {
			return types.NewPayloadInvalid("category %q already exists", body.Name)
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeactivateCategory soft-deletes by clearing is_active.
func DeactivateCategory(categoryID uint) (*models.Category, error) {
	d := db.GetDb()
	var category models.Category
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Category{ID: categoryID}).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("category %d not found", categoryID)
			}
			return err
		}
		if err := tx.
			Model(&models.Category{}).
			Where(&models.Category{ID: categoryID}).
			Update("is_active", false).
			Error; err != nil {
			return err
		}
		category.IsActive = false
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func ListLocations(includeInactive bool) ([]models.Location, error) {
	d := db.GetDb()
	q := d.Model(&models.Location{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var locations []models.Location
	if err := q.Order("name asc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func CreateLocation(body *types.CreateLocationRequestBody) (*models.Location, error) {
	d := db.GetDb()
	location := models.Location{
		Name:     body.Name,
		IsActive: true,
	}
	if body.Building != "" {
		location.Building = &body.Building
	}
	if body.Floor != "" {
		location.Floor = &body.Floor
	}
	if body.IsActive != nil {
		location.IsActive = *body.IsActive
	}
	err := d.Transaction(func(tx *gorm.DB) error {
		var existing models.Location
		err := tx.Where(&models.Location{Name: body.Name}).First(&existing).Error
		if err == nil {
			return types.NewPayloadInvalid("location %q already exists", body.Name)
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(&location).Error
	})
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func DeactivateLocation(locationID uint) (*models.Location, error) {
	d := db.GetDb()
	var location models.Location
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Location{ID: locationID}).First(&location).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.NewNotFound("location %d not found", locationID)
			}
			return err
		}
		if err := tx.
			Model(&models.Location{}).
			Where(&models.Location{ID: locationID}).
			Update("is_active", false).
			Error; err != nil {
			return err
		}
		location.IsActive = false
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &location, nil
}
