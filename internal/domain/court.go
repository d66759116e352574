package domain

import "time"

// Court is a bookable playing surface owned by a business.
type Court struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"businessId"`
	Name         string    `json:"name"`
	SportType    *string   `json:"sportType,omitempty"`
	Surface      *string   `json:"surface,omitempty"`
	Capacity     *int      `json:"capacity,omitempty"`
	IsIndoor     bool      `json:"isIndoor"`
	HasLighting  bool      `json:"hasLighting"`
	PricePerHour *float64  `json:"pricePerHour,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateCourtInput is the court form payload.
type CreateCourtInput struct {
	Name         string   `json:"name" validate:"required,min=1,max=120"`
	SportType    *string  `json:"sportType,omitempty"`
	Surface      *string  `json:"surface,omitempty"`
	Capacity     *int     `json:"capacity,omitempty" validate:"omitempty,gte=1"`
	IsIndoor     bool     `json:"isIndoor"`
	HasLighting  bool     `json:"hasLighting"`
	PricePerHour *float64 `json:"pricePerHour,omitempty" validate:"omitempty,gte=0"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=500"`
}

// UpdateCourtInput is the partial court update payload.
type UpdateCourtInput struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	SportType    *string  `json:"sportType,omitempty"`
	Surface      *string  `json:"surface,omitempty"`
	Capacity     *int     `json:"capacity,omitempty" validate:"omitempty,gte=1"`
	IsIndoor     *bool    `json:"isIndoor,omitempty"`
	HasLighting  *bool    `json:"hasLighting,omitempty"`
	PricePerHour *float64 `json:"pricePerHour,omitempty" validate:"omitempty,gte=0"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=500"`
}

// CourtName looks up a court name by id, with a placeholder for unknown courts.
func CourtName(courts []Court, courtID string) string {
	for _, c := range courts {
		if c.ID == courtID {
			return c.Name
		}
	}
	return "Unknown court"
}
