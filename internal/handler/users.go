package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const DEFAULT_LIST_LIMIT = 50

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return uuid.Nil, false
	}

	return id, true
}

func parseLimitOffset(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DEFAULT_LIST_LIMIT)))
	if err != nil || limit <= 0 {
		limit = DEFAULT_LIST_LIMIT
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}

func (h *Handler) usersFollow(c *gin.Context) {
	user := h.getUser(c)

	targetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	followed, err := h.services.Follow.Toggle(c.Request.Context(), user.ID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	if followed {
		c.JSON(http.StatusOK, dto.NewBasicResponse(true, "followed"))
		return
	}
	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "unfollowed"))
}

func (h *Handler) usersUpdateProfile(c *gin.Context) {
	user := h.getUser(c)

	targetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input dto.UpdateProfileDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updated, err := h.services.User.Update(c.Request.Context(), user.ID, targetID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "profile updated successfully", "updateuser": updated})
}

func (h *Handler) usersSetAvatar(c *gin.Context) {
	user := h.getUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updated, err := h.services.User.SetAvatar(c.Request.Context(), *user, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "avatar updated successfully", "updateuser": updated})
}

func (h *Handler) usersDelete(c *gin.Context) {
	user := h.getUser(c)

	targetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.services.User.Delete(c.Request.Context(), user.ID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "account deleted successfully", "user": deleted})
}

func (h *Handler) usersViewProfile(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	profile, err := h.services.User.ViewProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"User": profile})
}

func (h *Handler) usersPostAuthorDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	profile, err := h.services.User.Profile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) usersGetFollowings(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)
	followings, err := h.services.Follow.Followings(c.Request.Context(), id, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, followings)
}

func (h *Handler) usersGetFollowers(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(c)
	followers, err := h.services.Follow.Followers(c.Request.Context(), id, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, followers)
}

func (h *Handler) usersFollowingPosts(c *gin.Context) {
	user := h.getUser(c)

	posts, err := h.services.Post.FollowingFeed(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
