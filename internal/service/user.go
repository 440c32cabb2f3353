package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/SocialApp/social-service/internal/model"
	"github.com/SocialApp/social-service/internal/repository"
	"github.com/SocialApp/social-service/internal/repository/redisrepo"
	"github.com/SocialApp/social-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const USER_CACHE_TTL = time.Hour * 3

type userService struct {
	logger *zap.Logger
	repo *repository.Repository
	files *storage.Storage
}

func newUserService(logger *zap.Logger, repo *repository.Repository, files *storage.Storage) User {
	return &userService{
		logger: logger,
		repo: repo,
		files: files,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	userCache, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && userCache != nil {
		return userCache, nil
	}

	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserKey(id.String()), user, USER_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*dto.GetUserDto, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.repo.Postgres.Follow.Counts(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count follows for user(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	return dto.GetUserDtoFromUser(*user, followers, following), nil
}

func (s *userService) ViewProfile(ctx context.Context, id uuid.UUID) (*dto.ViewProfileDto, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.repo.Postgres.Follow.Counts(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count follows for user(%s): %s", id, err.Error())
		return nil, ErrInternal
	}

	return dto.ViewProfileDtoFromUser(*user, followers, following), nil
}

func (s *userService) Update(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID, input dto.UpdateProfileDto) (*dto.GetUserDto, error) {
	if actorID != targetID {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})
	if input.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), 10)
		if err != nil {
			s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
			return nil, ErrInternal
		}
		updates["password_hash"] = string(passwordHash)
	}
	if input.ProfilePicture != nil {
		updates["profile_picture"] = *input.ProfilePicture
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Username != nil {
		updates["username"] = *input.Username
	}

	if err := s.repo.Postgres.User.UpdateByID(ctx, targetID, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update user(%s) in postgres: %s", targetID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateCache(ctx, targetID)

	return s.Profile(ctx, targetID)
}

func (s *userService) Delete(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (*dto.GetUserDto, error) {
	if actorID != targetID {
		return nil, ErrForbidden
	}

	deleted, err := s.Profile(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// edges, posts, likes and comments go with the account (cascade)
	if err := s.repo.Postgres.User.DeleteByID(ctx, targetID); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s) from postgres: %s", targetID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateCache(ctx, targetID)

	return deleted, nil
}

func (s *userService) SetAvatar(ctx context.Context, user model.User, fileHeader *multipart.FileHeader) (*dto.GetUserDto, error) {
	if s.files == nil {
		return nil, ErrAvatarsDisabled
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, ErrInternal
	}
	defer file.Close()

	key := "avatars/" + user.ID.String() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := s.files.Put(ctx, key, file, fileHeader.Size, contentType); err != nil {
		s.logger.Sugar().Errorf("failed to upload avatar for user(%s): %s", user.ID, err.Error())
		return nil, ErrInternal
	}

	avatarURL := s.files.ObjectURL(key)
	if err := s.repo.Postgres.User.UpdateByID(ctx, user.ID, map[string]interface{}{"profile_picture": avatarURL}); err != nil {
		s.logger.Sugar().Errorf("failed to update user(%s) profile picture in postgres: %s", user.ID, err.Error())
		return nil, ErrInternal
	}

	s.invalidateCache(ctx, user.ID)

	return s.Profile(ctx, user.ID)
}

func (s *userService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.UserKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s) from redis: %s", id, err.Error())
	}
}
