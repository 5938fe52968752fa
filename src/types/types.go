package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type UserRole string

const (
	ROLE_STUDENT UserRole = "student"
	ROLE_STAFF   UserRole = "staff"
	ROLE_ADMIN   UserRole = "admin"
)

type ResourceStatus string

const (
	RESOURCE_DRAFT     ResourceStatus = "draft"
	RESOURCE_PUBLISHED ResourceStatus = "published"
	RESOURCE_ARCHIVED  ResourceStatus = "archived"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_APPROVED  BookingStatus = "approved"
	BOOKING_REJECTED  BookingStatus = "rejected"
	BOOKING_COMPLETED BookingStatus = "completed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

// BookingAction names a lifecycle transition request. The transition table in
// common/bookings.go is keyed on (current status, action).
type BookingAction string

const (
	ACTION_APPROVE  BookingAction = "approve"
	ACTION_REJECT   BookingAction = "reject"
	ACTION_CANCEL   BookingAction = "cancel"
	ACTION_COMPLETE BookingAction = "complete"
)

type SortOrder string

const (
	SORT_RECENT      SortOrder = "recent"
	SORT_MOST_BOOKED SortOrder = "most_booked"
	SORT_TOP_RATED   SortOrder = "top_rated"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=student staff admin"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateResourceRequestBody struct {
	Title             string         `json:"title" binding:"required"`
	Description       string         `json:"description,omitempty"`
	Category          string         `json:"category,omitempty" binding:"omitempty,max=80"`
	Location          string         `json:"location,omitempty" binding:"omitempty,max=80"`
	CategoryID        *uint          `json:"category_id,omitempty"`
	LocationID        *uint          `json:"location_id,omitempty"`
	Capacity          int            `json:"capacity,omitempty" binding:"omitempty,min=0"`
	Status            string         `json:"status,omitempty" binding:"omitempty,oneof=draft published archived"`
	RequiresApproval  bool           `json:"requires_approval,omitempty"`
	AvailabilityRules map[string]any `json:"availability_rules,omitempty"`
}

type UpdateResourceRequestBody struct {
	Title             *string        `json:"title,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Category          *string        `json:"category,omitempty" binding:"omitempty,max=80"`
	Location          *string        `json:"location,omitempty" binding:"omitempty,max=80"`
	CategoryID        *uint          `json:"category_id,omitempty"`
	LocationID        *uint          `json:"location_id,omitempty"`
	Capacity          *int           `json:"capacity,omitempty" binding:"omitempty,min=0"`
	Status            *string        `json:"status,omitempty" binding:"omitempty,oneof=draft published archived"`
	RequiresApproval  *bool          `json:"requires_approval,omitempty"`
	AvailabilityRules map[string]any `json:"availability_rules,omitempty"`
}

type CreateBookingRequestBody struct {
	ResourceID uint   `json:"resource_id" binding:"required"`
	StartDt    string `json:"start_dt" binding:"required,bookingdate"`
	EndDt      string `json:"end_dt" binding:"required,bookingdate,gtdate=StartDt"`
}

type CreateReviewRequestBody struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=1000"`
}

type CreateMessageRequestBody struct {
	Body        string `json:"body" binding:"required"`
	RecipientID *uint  `json:"recipient_id,omitempty"`
}

type CreateCategoryRequestBody struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type CreateLocationRequestBody struct {
	Name     string `json:"name" binding:"required,max=255"`
	Building string `json:"building,omitempty"`
	Floor    string `json:"floor,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ResourceFilters carries the parsed search predicates. Nil/zero values mean the
// predicate is absent; unparseable request inputs are dropped during parsing and
// never reach this struct.
type ResourceFilters struct {
	Query       string
	Category    string
	Location    string
	CapacityMin *int
	Date        *time.Time
	Status      *ResourceStatus
	Sort        SortOrder
}
