package postgres

import (
	"context"
	"time"

	"github.com/SocialApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) Follow {
	return &followRepo{
		db: db,
	}
}

func (r *followRepo) Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.followee_id = $2)",
		followerID,
		followeeID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *followRepo) Create(ctx context.Context, edge model.Follower) error {
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = time.Now()
	}
	// single-row insert, so a toggle cannot leave a half-applied edge
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(follower_id, followee_id, created_at) VALUES($1, $2, $3) ON CONFLICT DO NOTHING",
		edge.FollowerID,
		edge.FolloweeID,
		edge.CreatedAt,
	)
	return err
}

func (r *followRepo) Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2",
		followerID,
		followeeID,
	)
	return err
}

func (r *followRepo) FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username, u.bio, u.profile_picture
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.followee_id = $1
		ORDER BY f.created_at, u.id
		LIMIT $2
		OFFSET $3
		`,
		id,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followers []*model.FullFollower
	for rows.Next() {
		var follower model.FullFollower
		if err := rows.Scan(
			&follower.ID,
			&follower.Username,
			&follower.Bio,
			&follower.ProfilePicture,
		); err != nil {
			return nil, err
		}

		followers = append(followers, &follower)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return followers, nil
}

func (r *followRepo) FindFollowings(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username, u.bio, u.profile_picture
		FROM follows f
		JOIN users u ON f.followee_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at, u.id
		LIMIT $2
		OFFSET $3
		`,
		id,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followings []*model.FullFollower
	for rows.Next() {
		var following model.FullFollower
		if err := rows.Scan(
			&following.ID,
			&following.Username,
			&following.Bio,
			&following.ProfilePicture,
		); err != nil {
			return nil, err
		}

		followings = append(followings, &following)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return followings, nil
}

func (r *followRepo) Counts(ctx context.Context, id uuid.UUID) (int64, int64, error) {
	var followers, following int64
	if err := r.db.QueryRow(
		ctx,
		`
		SELECT
		(SELECT COUNT(*) FROM follows f WHERE f.followee_id = $1),
		(SELECT COUNT(*) FROM follows f WHERE f.follower_id = $1)
		`,
		id,
	).Scan(&followers, &following); err != nil {
		return 0, 0, err
	}

	return followers, following, nil
}
