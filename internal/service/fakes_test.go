package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/SocialApp/social-service/internal/model"
	"github.com/SocialApp/social-service/internal/repository"
	"github.com/SocialApp/social-service/internal/repository/postgres"
	"github.com/SocialApp/social-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// In-memory stand-ins for the postgres and redis repositories so the
// services can be exercised without a database.

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	counts map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: make(map[string]string),
		counts: make(map[string]int64),
	}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.SetJSON(ctx, key, value, ttl)
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = string(data)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var deleted int64
	for _, key := range keys {
		if _, ok := c.values[key]; ok {
			delete(c.values, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

func (c *fakeCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return redis.NewIntResult(c.counts[key], nil)
}

func (c *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = &user
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ExistsWithEmailOrUsername(ctx context.Context, email string, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil
	}
	if username, ok := updates["username"].(string); ok {
		user.Username = username
	}
	if bio, ok := updates["bio"].(string); ok {
		user.Bio = bio
	}
	if picture, ok := updates["profile_picture"].(string); ok {
		user.ProfilePicture = &picture
	}
	if hash, ok := updates["password_hash"].(string); ok {
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeFollowRepo struct {
	mu    sync.Mutex
	edges []model.Follower
	users *fakeUserRepo
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{users: users}
}

func (r *fakeFollowRepo) Exists(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, edge := range r.edges {
		if edge.FollowerID == followerID && edge.FolloweeID == followeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) Create(ctx context.Context, edge model.Follower) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	edge.CreatedAt = time.Now()
	r.edges = append(r.edges, edge)
	return nil
}

func (r *fakeFollowRepo) Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remaining := r.edges[:0]
	for _, edge := range r.edges {
		if edge.FollowerID == followerID && edge.FolloweeID == followeeID {
			continue
		}
		remaining = append(remaining, edge)
	}
	r.edges = remaining
	return nil
}

func (r *fakeFollowRepo) FindFollowers(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var followers []*model.FullFollower
	for _, edge := range r.edges {
		if edge.FolloweeID != id {
			continue
		}
		if user, ok := r.users.users[edge.FollowerID]; ok {
			followers = append(followers, &model.FullFollower{
				ID: user.ID,
				Username: user.Username,
				Bio: user.Bio,
				ProfilePicture: user.ProfilePicture,
			})
		}
	}
	return followers, nil
}

func (r *fakeFollowRepo) FindFollowings(ctx context.Context, id uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var followings []*model.FullFollower
	for _, edge := range r.edges {
		if edge.FollowerID != id {
			continue
		}
		if user, ok := r.users.users[edge.FolloweeID]; ok {
			followings = append(followings, &model.FullFollower{
				ID: user.ID,
				Username: user.Username,
				Bio: user.Bio,
				ProfilePicture: user.ProfilePicture,
			})
		}
	}
	return followings, nil
}

func (r *fakeFollowRepo) Counts(ctx context.Context, id uuid.UUID) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var followers, following int64
	for _, edge := range r.edges {
		if edge.FolloweeID == id {
			followers++
		}
		if edge.FollowerID == id {
			following++
		}
	}
	return followers, following, nil
}

type fakePostRepo struct {
	mu            sync.Mutex
	posts         map[uuid.UUID]*model.Post
	likes         map[uuid.UUID][]uuid.UUID
	comments      map[uuid.UUID][]*model.Comment
	follows       *fakeFollowRepo
	nextCommentID int64
}

func newFakePostRepo(follows *fakeFollowRepo) *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[uuid.UUID]*model.Post),
		likes: make(map[uuid.UUID][]uuid.UUID),
		comments: make(map[uuid.UUID][]*model.Comment),
		follows: follows,
	}
}

func (r *fakePostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = uuid.New()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	stored := post
	r.posts[post.ID] = &stored
	return r.hydrate(&stored), nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.hydrate(post), nil
}

func (r *fakePostRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []*model.Post
	for _, post := range r.posts {
		posts = append(posts, r.hydrate(post))
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (r *fakePostRepo) FindByFollowed(ctx context.Context, viewerID uuid.UUID) ([]*model.Post, error) {
	followees := make(map[uuid.UUID]struct{})
	r.follows.mu.Lock()
	for _, edge := range r.follows.edges {
		if edge.FollowerID == viewerID {
			followees[edge.FolloweeID] = struct{}{}
		}
	}
	r.follows.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []*model.Post
	for _, post := range r.posts {
		if _, ok := followees[post.UserID]; ok {
			posts = append(posts, r.hydrate(post))
		}
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (r *fakePostRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil
	}
	// same allow-list as the real repository
	if description, ok := updates["description"].(string); ok {
		post.Description = description
	}
	return nil
}

func (r *fakePostRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	delete(r.likes, id)
	delete(r.comments, id)
	return nil
}

func (r *fakePostRepo) AddComment(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextCommentID++
	comment.ID = r.nextCommentID
	comment.CreatedAt = time.Now()
	stored := comment
	r.comments[comment.PostID] = append(r.comments[comment.PostID], &stored)
	return &stored, nil
}

func (r *fakePostRepo) LikeExists(ctx context.Context, postID uuid.UUID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.likes[postID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) AddLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[postID] = append(r.likes[postID], userID)
	return nil
}

func (r *fakePostRepo) RemoveLike(ctx context.Context, postID uuid.UUID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remaining := r.likes[postID][:0]
	for _, id := range r.likes[postID] {
		if id == userID {
			continue
		}
		remaining = append(remaining, id)
	}
	r.likes[postID] = remaining
	return nil
}

func (r *fakePostRepo) hydrate(post *model.Post) *model.Post {
	copied := *post
	copied.Likes = append([]uuid.UUID{}, r.likes[post.ID]...)
	copied.Comments = []*model.Comment{}
	for _, comment := range r.comments[post.ID] {
		commentCopy := *comment
		copied.Comments = append(copied.Comments, &commentCopy)
	}
	return &copied
}

func sortPostsNewestFirst(posts []*model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return bytes.Compare(posts[i].ID[:], posts[j].ID[:]) > 0
	})
}

type testEnv struct {
	services *Service
	users    *fakeUserRepo
	follows  *fakeFollowRepo
	posts    *fakePostRepo
	cache    *fakeCache
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	follows := newFakeFollowRepo(users)
	posts := newFakePostRepo(follows)
	cache := newFakeCache()

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User: users,
			Follow: follows,
			Post: posts,
		},
		Redis: &redisrepo.RedisRepository{Default: cache},
	}

	return &testEnv{
		services: New(zap.NewNop(), repo, nil, nil),
		users: users,
		follows: follows,
		posts: posts,
		cache: cache,
	}
}

func (e *testEnv) createUser(username string, email string) *model.User {
	user, _ := e.users.Create(context.Background(), model.User{
		Email: email,
		Username: username,
		PasswordHash: "x",
		Bio: "bio of " + username,
	})
	return user
}
