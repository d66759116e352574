package domain

import "time"

// GlobalRole is the platform-wide role of a user.
type GlobalRole string

const (
	GlobalRoleMaster GlobalRole = "MASTER"
	GlobalRolePlayer GlobalRole = "PLAYER"
)

// User is a platform account. The backend's password hash is never decoded.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	UserName   string     `json:"userName"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone,omitempty"`
	GlobalRole GlobalRole `json:"globalRole"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// UpdateUserInput is the partial profile update payload.
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	UserName *string `json:"userName,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Phone    *string `json:"phone,omitempty"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=1"`
	UserName string  `json:"userName" validate:"required,min=1"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest is the sign-in payload; Username accepts an email or a user name.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthUser is the trimmed user returned on registration.
type AuthUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	GlobalRole string `json:"globalRole"`
}

// RegisterResponse carries the new account and its first token.
type RegisterResponse struct {
	User        AuthUser `json:"user"`
	AccessToken string   `json:"accessToken"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
