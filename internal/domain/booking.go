package domain

import "time"

// BookingStatus mirrors the backend's booking lifecycle states.
type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a reservation of a court for a date/time range.
// Date is YYYY-MM-DD; StartTime/EndTime are zero-padded HH:MM wall-clock strings.
type Booking struct {
	ID          string        `json:"id"`
	CourtID     string        `json:"courtId"`
	BusinessID  string        `json:"businessId"`
	UserID      *string       `json:"userId,omitempty"`
	GuestName   *string       `json:"guestName,omitempty"`
	GuestPhone  *string       `json:"guestPhone,omitempty"`
	GuestEmail  *string       `json:"guestEmail,omitempty"`
	Date        string        `json:"date"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime"`
	Status      BookingStatus `json:"status"`
	TotalPrice  *float64      `json:"totalPrice,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// IsActive reports whether the booking still holds its slot.
func (b Booking) IsActive() bool {
	return b.Status == BookingActive
}

// PersonLabel is the display name for the booking holder.
func (b Booking) PersonLabel() string {
	if b.GuestName != nil && *b.GuestName != "" {
		return *b.GuestName
	}
	return "Registered user"
}

// CreateBookingInput is the booking form payload.
type CreateBookingInput struct {
	CourtID    string   `json:"courtId" validate:"required,uuid"`
	BusinessID string   `json:"businessId" validate:"required,uuid"`
	UserID     *string  `json:"userId,omitempty" validate:"omitempty,uuid"`
	GuestName  *string  `json:"guestName,omitempty" validate:"omitempty,max=120"`
	GuestPhone *string  `json:"guestPhone,omitempty" validate:"omitempty,max=40"`
	GuestEmail *string  `json:"guestEmail,omitempty" validate:"omitempty,email"`
	Date       string   `json:"date" validate:"required,isodate"`
	StartTime  string   `json:"startTime" validate:"required,clock"`
	EndTime    string   `json:"endTime" validate:"required,clock"`
	TotalPrice *float64 `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	Notes      *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// UpdateBookingInput is the partial booking update payload.
type UpdateBookingInput struct {
	Status     *BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE CANCELLED"`
	Notes      *string        `json:"notes,omitempty" validate:"omitempty,max=500"`
	TotalPrice *float64       `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
}
