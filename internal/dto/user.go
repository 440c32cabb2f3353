package dto

import (
	"time"

	"github.com/SocialApp/social-service/internal/model"
	"github.com/google/uuid"
)

// GetUserDto is the public projection of an account: no email, no
// password hash.
type GetUserDto struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
	Followers      int64     `json:"followers"`
	Following      int64     `json:"following"`
	CreatedAt      time.Time `json:"created_at"`
}

func GetUserDtoFromUser(user model.User, followers int64, following int64) *GetUserDto {
	return &GetUserDto{
		ID: user.ID,
		Username: user.Username,
		Bio: user.Bio,
		ProfilePicture: user.ProfilePicture,
		Followers: followers,
		Following: following,
		CreatedAt: user.CreatedAt,
	}
}

// ViewProfileDto additionally omits the bio, matching the viewprofile
// endpoint's field set.
type ViewProfileDto struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profile_picture"`
	Followers      int64     `json:"followers"`
	Following      int64     `json:"following"`
	CreatedAt      time.Time `json:"created_at"`
}

func ViewProfileDtoFromUser(user model.User, followers int64, following int64) *ViewProfileDto {
	return &ViewProfileDto{
		ID: user.ID,
		Username: user.Username,
		ProfilePicture: user.ProfilePicture,
		Followers: followers,
		Following: following,
		CreatedAt: user.CreatedAt,
	}
}
