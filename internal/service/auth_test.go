package service

import (
	"context"
	"os"
	"testing"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/SocialApp/social-service/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	os.Setenv("SECRET_KEY", "test-secret")
	os.Exit(m.Run())
}

func TestRegister(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	user, token, err := env.services.Auth.Register(ctx, dto.CreateUserDto{
		Username: "alice",
		Email: "Alice@Example.com",
		Password: "password123",
		Bio: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)

	// the token identifies the created account
	claims, err := utils.DecodeJWT(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, "alice", claims["username"])

	// password is stored hashed, never plaintext
	stored, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	assert.Equal(t, "alice@example.com", stored.Email)
}

func TestRegister_DuplicateEmailOrUsername(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, _, err := env.services.Auth.Register(ctx, dto.CreateUserDto{
		Username: "alice",
		Email: "alice@example.com",
		Password: "password123",
		Bio: "hello",
	})
	require.NoError(t, err)

	_, _, err = env.services.Auth.Register(ctx, dto.CreateUserDto{
		Username: "someone-else",
		Email: "alice@example.com",
		Password: "password123",
		Bio: "hello",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, _, err = env.services.Auth.Register(ctx, dto.CreateUserDto{
		Username: "alice",
		Email: "other@example.com",
		Password: "password123",
		Bio: "hello",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	registered, _, err := env.services.Auth.Register(ctx, dto.CreateUserDto{
		Username: "alice",
		Email: "alice@example.com",
		Password: "password123",
		Bio: "hello",
	})
	require.NoError(t, err)

	user, token, err := env.services.Auth.Login(ctx, dto.SignInDto{
		Email: "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv()

	_, _, err := env.services.Auth.Login(context.Background(), dto.SignInDto{
		Email: "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, _, err := env.services.Auth.Register(ctx, dto.CreateUserDto{
		Username: "alice",
		Email: "alice@example.com",
		Password: "password123",
		Bio: "hello",
	})
	require.NoError(t, err)

	_, _, err = env.services.Auth.Login(ctx, dto.SignInDto{
		Email: "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
