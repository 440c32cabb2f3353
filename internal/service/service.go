package service

import (
	"context"
	"mime/multipart"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/SocialApp/social-service/internal/model"
	"github.com/SocialApp/social-service/internal/rabbitmq"
	"github.com/SocialApp/social-service/internal/repository"
	"github.com/SocialApp/social-service/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Auth interface {
	Register(ctx context.Context, createUserDto dto.CreateUserDto) (*dto.GetUserDto, string, error)
	Login(ctx context.Context, signInDto dto.SignInDto) (*dto.GetUserDto, string, error)
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Profile(ctx context.Context, id uuid.UUID) (*dto.GetUserDto, error)
	ViewProfile(ctx context.Context, id uuid.UUID) (*dto.ViewProfileDto, error)
	Update(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID, input dto.UpdateProfileDto) (*dto.GetUserDto, error)
	Delete(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (*dto.GetUserDto, error)
	SetAvatar(ctx context.Context, user model.User, fileHeader *multipart.FileHeader) (*dto.GetUserDto, error)
}

type Follow interface {
	Toggle(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (followed bool, err error)
	Followers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	Followings(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, description string) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FollowingFeed(ctx context.Context, viewerID uuid.UUID) ([]*model.Post, error)
	UpdateDescription(ctx context.Context, actorID uuid.UUID, postID uuid.UUID, description *string) (*model.Post, error)
	Update(ctx context.Context, actorID uuid.UUID, postID uuid.UUID, updates map[string]interface{}) (*model.Post, error)
	AddComment(ctx context.Context, actorID uuid.UUID, actorUsername string, input dto.CommentPostDto) (*model.Post, error)
	LikeToggle(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (liked bool, err error)
	Delete(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (*model.Post, error)
}

type Service struct {
	Auth
	User
	Follow
	Post
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn, files *storage.Storage) *Service {
	userService := newUserService(logger, repo, files)
	return &Service{
		Auth: newAuthService(logger, repo, userService),
		User: userService,
		Follow: newFollowService(logger, repo, mq),
		Post: newPostService(logger, repo, mq),
	}
}
