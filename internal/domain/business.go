package domain

import "time"

// Business is the tenant owning courts, bookings and scheduling rules.
type Business struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Timezone     string    `json:"timezone"`
	SlotDuration int       `json:"slotDuration"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateBusinessInput is the business onboarding payload.
type CreateBusinessInput struct {
	Name         string  `json:"name" validate:"required,min=3,max=120"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Timezone     string  `json:"timezone" validate:"required,timezone"`
	SlotDuration int     `json:"slotDuration" validate:"oneof=30 60 90 120"`
}

// UpdateBusinessInput is the partial business update payload.
type UpdateBusinessInput struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=3,max=120"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Timezone     *string `json:"timezone,omitempty" validate:"omitempty,timezone"`
	SlotDuration *int    `json:"slotDuration,omitempty" validate:"omitempty,oneof=30 60 90 120"`
}

// BusinessRole is a staff member's role inside a business.
type BusinessRole string

const (
	RoleOwner BusinessRole = "OWNER"
	RoleAdmin BusinessRole = "ADMIN"
	RoleStaff BusinessRole = "STAFF"
)

// BusinessUser links a user to a business with a role.
type BusinessUser struct {
	ID         string       `json:"id"`
	BusinessID string       `json:"businessId"`
	UserID     string       `json:"userId"`
	Role       BusinessRole `json:"role"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// CreateBusinessUserInput adds a user to a business.
type CreateBusinessUserInput struct {
	UserID string       `json:"userId" validate:"required,uuid"`
	Role   BusinessRole `json:"role" validate:"required,oneof=OWNER ADMIN STAFF"`
}

// UpdateBusinessUserInput changes a member's role.
type UpdateBusinessUserInput struct {
	Role BusinessRole `json:"role" validate:"required,oneof=OWNER ADMIN STAFF"`
}
