package service

import (
	"context"
	"encoding/json"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/SocialApp/social-service/internal/model"
	"github.com/SocialApp/social-service/internal/rabbitmq"
	"github.com/SocialApp/social-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
	mq *rabbitmq.MQConn
}

func newPostService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) Post {
	return &postService{
		logger: logger,
		repo: repo,
		mq: mq,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, description string) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.Create(ctx, model.Post{
		UserID: authorID,
		Description: description,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	s.publishNewPostEvent(post)

	return post, nil
}

func (s *postService) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%s) in postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.Postgres.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if posts == nil {
		posts = []*model.Post{}
	}
	return posts, nil
}

// FollowingFeed returns posts authored by anyone the viewer follows,
// newest first. An empty following set yields an empty feed, not an error.
func (s *postService) FollowingFeed(ctx context.Context, viewerID uuid.UUID) ([]*model.Post, error) {
	posts, err := s.repo.Postgres.Post.FindByFollowed(ctx, viewerID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find following feed for user(%s): %s", viewerID, err.Error())
		return nil, ErrInternal
	}

	if posts == nil {
		posts = []*model.Post{}
	}
	return posts, nil
}

func (s *postService) UpdateDescription(ctx context.Context, actorID uuid.UUID, postID uuid.UUID, description *string) (*model.Post, error) {
	post, err := s.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	if description == nil || *description == post.Description {
		return nil, ErrNothingToUpdate
	}

	if err := s.repo.Postgres.Post.UpdateByID(ctx, postID, map[string]interface{}{"description": *description}); err != nil {
		s.logger.Sugar().Errorf("failed to update post(%s) in postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return s.FindByID(ctx, postID)
}

// Update applies a caller-supplied field map. The repository allow-list
// keeps it to mutable columns, so this cannot overwrite author or
// timestamps.
func (s *postService) Update(ctx context.Context, actorID uuid.UUID, postID uuid.UUID, updates map[string]interface{}) (*model.Post, error) {
	post, err := s.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	if err := s.repo.Postgres.Post.UpdateByID(ctx, postID, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update post(%s) in postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return s.FindByID(ctx, postID)
}

func (s *postService) AddComment(ctx context.Context, actorID uuid.UUID, actorUsername string, input dto.CommentPostDto) (*model.Post, error) {
	if _, err := s.FindByID(ctx, input.PostID); err != nil {
		return nil, err
	}

	// actorUsername is stored as-is: a snapshot, not a live join
	if _, err := s.repo.Postgres.Post.AddComment(ctx, model.Comment{
		PostID: input.PostID,
		UserID: actorID,
		Username: actorUsername,
		Comment: input.Comment,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to add comment to post(%s) in postgres: %s", input.PostID, err.Error())
		return nil, ErrInternal
	}

	return s.FindByID(ctx, input.PostID)
}

func (s *postService) LikeToggle(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (bool, error) {
	if _, err := s.FindByID(ctx, postID); err != nil {
		return false, err
	}

	liked, err := s.repo.Postgres.Post.LikeExists(ctx, postID, actorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check like on post(%s): %s", postID, err.Error())
		return false, ErrInternal
	}

	if liked {
		if err := s.repo.Postgres.Post.RemoveLike(ctx, postID, actorID); err != nil {
			s.logger.Sugar().Errorf("failed to remove like on post(%s): %s", postID, err.Error())
			return false, ErrInternal
		}
	} else {
		if err := s.repo.Postgres.Post.AddLike(ctx, postID, actorID); err != nil {
			s.logger.Sugar().Errorf("failed to add like on post(%s): %s", postID, err.Error())
			return false, ErrInternal
		}
	}

	return !liked, nil
}

func (s *postService) Delete(ctx context.Context, actorID uuid.UUID, postID uuid.UUID) (*model.Post, error) {
	post, err := s.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		return nil, ErrForbidden
	}

	if err := s.repo.Postgres.Post.DeleteByID(ctx, postID); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%s) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) publishNewPostEvent(post *model.Post) {
	if s.mq == nil {
		return
	}

	queueData, err := json.Marshal(&dto.NewPostEventDto{
		PostID: post.ID,
		AuthorID: post.UserID,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return
	}

	if err := s.mq.Publish(rabbitmq.FOLLOWERS_NEW_POST_NOTIFICATIONS_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.FOLLOWERS_NEW_POST_NOTIFICATIONS_QUEUE, err.Error())
	}
}
