package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/SocialApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const MAX_LIMIT = 50

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

const userColumns = "u.id, u.email, u.username, u.password_hash, u.bio, u.profile_picture, u.created_at, u.updated_at"

func scanUser(row interface{ Scan(dest ...interface{}) error }) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Bio,
		&user.ProfilePicture,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, email, username, password_hash, bio, profile_picture, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8)",
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Bio,
		user.ProfilePicture,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return &user, err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = $1", id))
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE u.email = $1", email))
}

func (r *userRepo) ExistsWithEmailOrUsername(ctx context.Context, email string, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM users u WHERE u.email = $1 OR u.username = $2)",
		email,
		username,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

var userAllowedUpdateFields = []string{"username", "bio", "profile_picture", "password_hash"}

func (r *userRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates = filterAllowedFields(updates, userAllowedUpdateFields)
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE users SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query += "updated_at = $" + strconv.Itoa(i) + " WHERE id = $" + strconv.Itoa(i+1)
	args = append(args, time.Now(), id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *userRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

// filterAllowedFields drops every update key that is not in the allow-list,
// callers never get to touch arbitrary columns.
func filterAllowedFields(updates map[string]interface{}, allowed []string) map[string]interface{} {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, field := range allowed {
		allowedSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedSet[field]; !ok {
			delete(updates, field)
		}
	}

	return updates
}

func maximumLimit(l *int) {
	if *l > MAX_LIMIT {
		*l = MAX_LIMIT
	}
}
