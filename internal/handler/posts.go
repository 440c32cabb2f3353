package handler

import (
	"net/http"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CreatePostDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), user.ID, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsGet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsGetAll(c *gin.Context) {
	posts, err := h.services.Post.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": posts})
}

func (h *Handler) postsUpdateDescription(c *gin.Context) {
	user := h.getUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input dto.UpdatePostDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.UpdateDescription(c.Request.Context(), user.ID, id, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// postsUpdate accepts a field map; anything outside the repository
// allow-list is dropped, unlike the original's $set passthrough.
func (h *Handler) postsUpdate(c *gin.Context) {
	user := h.getUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), user.ID, id, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsComment(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CommentPostDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.AddComment(c.Request.Context(), user.ID, user.Username, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "new comment added successfully", "post": post})
}

func (h *Handler) postsLike(c *gin.Context) {
	user := h.getUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	liked, err := h.services.Post.LikeToggle(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if liked {
		c.JSON(http.StatusOK, dto.NewBasicResponse(true, "liked"))
		return
	}
	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "unliked"))
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.services.Post.Delete(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "post deleted successfully", "deletedPost": deleted})
}
