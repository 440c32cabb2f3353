package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/SocialApp/social-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.Likes = []uuid.UUID{}
	post.Comments = []*model.Comment{}
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, user_id, description, created_at) VALUES($1, $2, $3, $4)",
		post.ID,
		post.UserID,
		post.Description,
		post.CreatedAt,
	)
	return &post, err
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		"SELECT p.id, p.user_id, p.description, p.created_at FROM posts p WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.UserID,
		&post.Description,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}

	posts := []*model.Post{&post}
	if err := r.hydrate(ctx, posts); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	return r.queryPosts(
		ctx,
		"SELECT p.id, p.user_id, p.description, p.created_at FROM posts p ORDER BY p.created_at DESC, p.id DESC",
	)
}

// FindByFollowed returns every post authored by someone the viewer follows,
// newest first, ties broken by id.
func (r *postRepo) FindByFollowed(ctx context.Context, viewerID uuid.UUID) ([]*model.Post, error) {
	return r.queryPosts(
		ctx,
		`
		SELECT p.id, p.user_id, p.description, p.created_at
		FROM posts p
		JOIN follows f ON f.followee_id = p.user_id
		WHERE f.follower_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		`,
		viewerID,
	)
}

var postAllowedUpdateFields = []string{"description"}

func (r *postRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates = filterAllowedFields(updates, postAllowedUpdateFields)
	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE posts SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *postRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func (r *postRepo) AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO post_comments(post_id, user_id, username, comment, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id",
		comment.PostID,
		comment.UserID,
		comment.Username,
		comment.Comment,
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *postRepo) LikeExists(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM post_likes pl WHERE pl.post_id = $1 AND pl.user_id = $2)",
		postID,
		userID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *postRepo) AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO post_likes(post_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		postID,
		userID,
	)
	return err
}

func (r *postRepo) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		"DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2",
		postID,
		userID,
	)
	return err
}

func (r *postRepo) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Description,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// hydrate fills Likes and Comments for the given posts in two batched
// queries instead of one round-trip per post.
func (r *postRepo) hydrate(ctx context.Context, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(posts))
	postMap := make(map[uuid.UUID]*model.Post, len(posts))
	for _, post := range posts {
		post.Likes = []uuid.UUID{}
		post.Comments = []*model.Comment{}
		ids = append(ids, post.ID)
		postMap[post.ID] = post
	}

	likeRows, err := r.db.Query(
		ctx,
		"SELECT pl.post_id, pl.user_id FROM post_likes pl WHERE pl.post_id = ANY($1) ORDER BY pl.created_at, pl.user_id",
		ids,
	)
	if err != nil {
		return err
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var postID, userID uuid.UUID
		if err := likeRows.Scan(&postID, &userID); err != nil {
			return err
		}

		if post, ok := postMap[postID]; ok {
			post.Likes = append(post.Likes, userID)
		}
	}
	if err := likeRows.Err(); err != nil {
		return err
	}

	commentRows, err := r.db.Query(
		ctx,
		"SELECT c.id, c.post_id, c.user_id, c.username, c.comment, c.created_at FROM post_comments c WHERE c.post_id = ANY($1) ORDER BY c.id",
		ids,
	)
	if err != nil {
		return err
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var comment model.Comment
		if err := commentRows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Username,
			&comment.Comment,
			&comment.CreatedAt,
		); err != nil {
			return err
		}

		if post, ok := postMap[comment.PostID]; ok {
			post.Comments = append(post.Comments, &comment)
		}
	}

	return commentRows.Err()
}
