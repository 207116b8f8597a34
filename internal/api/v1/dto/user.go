package dto

import (
	"time"

	"app/internal/model"
)

// UserUpdateRequest is used for incoming profile updates. Absent fields are
// left unchanged.
type UserUpdateRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,min=1,max=100"`
	PhotoURL    *string `json:"photoURL" validate:"omitempty,url"`
}

// UserResponse is a user profile as returned in API responses.
type UserResponse struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName,omitempty"`
	PhotoURL    *string   `json:"photoURL,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLogin   time.Time `json:"lastLogin"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}

// PhotoUploadResponse carries the presigned upload URL and the resulting
// photo URL for the profile.
type PhotoUploadResponse struct {
	UploadURL string `json:"uploadURL"`
	PhotoURL  string `json:"photoURL"`
}
