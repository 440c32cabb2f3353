package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Description string      `json:"description"`
	Likes       []uuid.UUID `json:"likes"`
	Comments    []*Comment  `json:"comments"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Comment keeps the author's username as it was at comment time,
// later username changes do not rewrite history.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
