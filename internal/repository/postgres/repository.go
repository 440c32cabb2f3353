package postgres

import (
	"context"

	"github.com/SocialApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsWithEmailOrUsername(ctx context.Context, email string, username string) (bool, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type Follow interface {
	Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
	Create(ctx context.Context, edge model.Follower) error
	Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) error
	FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	FindFollowings(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	Counts(ctx context.Context, id uuid.UUID) (followers int64, following int64, err error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByFollowed(ctx context.Context, viewerID uuid.UUID) ([]*model.Post, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error)
	LikeExists(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error
}

type PostgresRepository struct {
	User
	Follow
	Post
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User: newUserRepo(db),
		Follow: newFollowRepo(db),
		Post: newPostRepo(db),
	}
}
