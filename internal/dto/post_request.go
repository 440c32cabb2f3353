package dto

import "github.com/google/uuid"

type CreatePostDto struct {
	Description string `json:"description"`
}

type UpdatePostDto struct {
	Description *string `json:"description"`
}

type CommentPostDto struct {
	PostID  uuid.UUID `json:"postId" binding:"required"`
	Comment string    `json:"comment" binding:"required"`
}

type FollowEventDto struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
	Followed   bool      `json:"followed"`
}

type NewPostEventDto struct {
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
}
