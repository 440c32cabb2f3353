package service

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/SocialApp/social-service/internal/model"
	"github.com/SocialApp/social-service/internal/repository"
	"github.com/SocialApp/social-service/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const DEFAULT_TOKEN_EXPIRY = time.Hour * 72

type authService struct {
	logger *zap.Logger
	repo *repository.Repository
	userService User
}

func newAuthService(logger *zap.Logger, repo *repository.Repository, userService User) Auth {
	return &authService{
		logger: logger,
		repo: repo,
		userService: userService,
	}
}

func tokenExpiry() time.Duration {
	if expiry := viper.GetDuration("auth.token_ttl"); expiry > 0 {
		return expiry
	}
	return DEFAULT_TOKEN_EXPIRY
}

func signToken(user *model.User) (string, error) {
	return utils.GenerateJWT(
		[]byte(os.Getenv("SECRET_KEY")),
		jwt.MapClaims{
			"id": user.ID.String(),
			"username": user.Username,
		},
		tokenExpiry(),
	)
}

func (s *authService) Register(ctx context.Context, createUserDto dto.CreateUserDto) (*dto.GetUserDto, string, error) {
	createUserDto.Email = strings.TrimSpace(strings.ToLower(createUserDto.Email))
	createUserDto.Username = strings.TrimSpace(createUserDto.Username)

	exists, err := s.repo.Postgres.User.ExistsWithEmailOrUsername(ctx, createUserDto.Email, createUserDto.Username)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check user existence in postgres: %s", err.Error())
		return nil, "", ErrInternal
	}
	if exists {
		return nil, "", ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(createUserDto.Password), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, "", ErrInternal
	}

	newUser := model.User{
		Email: createUserDto.Email,
		Username: createUserDto.Username,
		PasswordHash: string(passwordHash),
		Bio: createUserDto.Bio,
		ProfilePicture: createUserDto.ProfilePicture,
	}
	createdUser, err := s.repo.Postgres.User.Create(ctx, newUser)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user in postgres: %s", err.Error())
		return nil, "", ErrInternal
	}

	token, err := signToken(createdUser)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign jwt: %s", err.Error())
		return nil, "", ErrInternal
	}

	return dto.GetUserDtoFromUser(*createdUser, 0, 0), token, nil
}

func (s *authService) Login(ctx context.Context, signInDto dto.SignInDto) (*dto.GetUserDto, string, error) {
	email := strings.TrimSpace(strings.ToLower(signInDto.Email))

	user, err := s.repo.Postgres.User.FindByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to get user(email: %s) from postgres: %s", email, err.Error())
		return nil, "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signInDto.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := signToken(user)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign jwt: %s", err.Error())
		return nil, "", ErrInternal
	}

	followers, following, err := s.repo.Postgres.Follow.Counts(ctx, user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count follows for user(%s): %s", user.ID, err.Error())
		return nil, "", ErrInternal
	}

	return dto.GetUserDtoFromUser(*user, followers, following), token, nil
}
