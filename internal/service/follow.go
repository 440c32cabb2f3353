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

type followService struct {
	logger *zap.Logger
	repo *repository.Repository
	mq *rabbitmq.MQConn
}

func newFollowService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) Follow {
	return &followService{
		logger: logger,
		repo: repo,
		mq: mq,
	}
}

// Toggle follows targetID if no edge exists yet, otherwise unfollows.
// The edge is a single row, so either branch is one atomic write.
func (s *followService) Toggle(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (bool, error) {
	if actorID == targetID {
		return false, ErrCannotFollowSelf
	}

	if _, err := s.repo.Postgres.User.FindByID(ctx, targetID); err != nil {
		if err == pgx.ErrNoRows {
			return false, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", targetID, err.Error())
		return false, ErrInternal
	}

	followed, err := s.repo.Postgres.Follow.Exists(ctx, actorID, targetID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow edge (%s -> %s): %s", actorID, targetID, err.Error())
		return false, ErrInternal
	}

	if followed {
		if err := s.repo.Postgres.Follow.Delete(ctx, actorID, targetID); err != nil {
			s.logger.Sugar().Errorf("failed to delete follow edge (%s -> %s): %s", actorID, targetID, err.Error())
			return false, ErrInternal
		}
	} else {
		if err := s.repo.Postgres.Follow.Create(ctx, model.Follower{FollowerID: actorID, FolloweeID: targetID}); err != nil {
			s.logger.Sugar().Errorf("failed to create follow edge (%s -> %s): %s", actorID, targetID, err.Error())
			return false, ErrInternal
		}
	}

	s.publishFollowEvent(actorID, targetID, !followed)

	return !followed, nil
}

func (s *followService) Followers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	followers, err := s.repo.Postgres.Follow.FindFollowers(ctx, id, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followers of user(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	if followers == nil {
		followers = []*model.FullFollower{}
	}
	return followers, nil
}

func (s *followService) Followings(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	followings, err := s.repo.Postgres.Follow.FindFollowings(ctx, id, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followings of user(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	if followings == nil {
		followings = []*model.FullFollower{}
	}
	return followings, nil
}

// publishFollowEvent is best-effort: the toggle already succeeded and a
// lost notification must not fail the request.
func (s *followService) publishFollowEvent(actorID uuid.UUID, targetID uuid.UUID, followed bool) {
	if s.mq == nil {
		return
	}

	queueData, err := json.Marshal(&dto.FollowEventDto{
		FollowerID: actorID,
		FolloweeID: targetID,
		Followed: followed,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return
	}

	if err := s.mq.Publish(rabbitmq.FOLLOWS_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.FOLLOWS_QUEUE, err.Error())
	}
}
