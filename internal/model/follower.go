package model

import (
	"time"

	"github.com/google/uuid"
)

// Follower is a single directed edge: FollowerID follows FolloweeID.
type Follower struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type FullFollower struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
}
