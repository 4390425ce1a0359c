package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:10;not null" json:"role"`
	ProfileImage string    `gorm:"size:500" json:"profileImage"`
	IsActive     bool      `gorm:"not null" json:"isActive"`

	DietaryPreferences datatypes.JSONSlice[string] `json:"dietaryPreferences"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is the part of a user that may be shown next to their recipes.
type PublicProfile struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profileImage,omitempty"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Username: u.Username, ProfileImage: u.ProfileImage}
}
