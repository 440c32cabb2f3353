package handler

import (
	"context"
	"os"
	"time"

	"github.com/SocialApp/social-service/internal/model"
	"github.com/SocialApp/social-service/internal/rate"
	"github.com/SocialApp/social-service/internal/service"
	"github.com/SocialApp/social-service/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	AUTH_RATE_LIMIT   = 15
	POST_RATE_LIMIT   = 100
	RATE_LIMIT_WINDOW = 15 * time.Minute
)

type Handler struct {
	services *service.Service
	limiter rate.Limiter
	traffic *zap.Logger
}

func New(services *service.Service, limiter rate.Limiter, traffic *zap.Logger) *Handler {
	return &Handler{
		services: services,
		limiter: limiter,
		traffic: traffic,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PUT", "PATCH", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(h.securityHeadersMiddleware)
	r.Use(h.trafficLogMiddleware)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Hello from backend")
	})

	user := r.Group("/api/user")
	{
		user.POST("/create/user", h.rateLimitMiddleware("auth", AUTH_RATE_LIMIT), h.usersCreate)
		user.POST("/login", h.rateLimitMiddleware("auth", AUTH_RATE_LIMIT), h.usersLogin)

		user.PUT("/follow/:id", h.authMiddleware, h.usersFollow)
		user.PUT("/updateprofile/:id", h.authMiddleware, h.usersUpdateProfile)
		user.PATCH("/update/setavatar", h.authMiddleware, h.usersSetAvatar)
		user.DELETE("/delete/:id", h.authMiddleware, h.usersDelete)

		user.GET("/viewprofile/:id", h.usersViewProfile)
		user.GET("/post/user/details/:id", h.usersPostAuthorDetails)
		user.GET("/get/followings/:id", h.usersGetFollowings)
		user.GET("/get/followers/:id", h.usersGetFollowers)
		user.GET("/followingposts", h.authMiddleware, h.usersFollowingPosts)
	}

	post := r.Group("/api/post", h.rateLimitMiddleware("post", POST_RATE_LIMIT))
	{
		post.POST("/createpost", h.authMiddleware, h.postsCreate)
		post.GET("/getpost/:id", h.postsGet)
		post.GET("/get/allpost", h.authMiddleware, h.postsGetAll)
		post.PUT("/updatepost/:id", h.authMiddleware, h.postsUpdateDescription)
		post.PUT("/update/post/:id", h.authMiddleware, h.postsUpdate)
		post.PUT("/comment/post", h.authMiddleware, h.postsComment)
		post.PUT("/like/:id", h.authMiddleware, h.postsLike)
		post.DELETE("/deletepost/:id", h.authMiddleware, h.postsDelete)
	}

	return r
}

func (h *Handler) getUserDataFromTokenClaims(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("SECRET_KEY")))
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	user, err := h.services.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (h *Handler) getUser(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}
