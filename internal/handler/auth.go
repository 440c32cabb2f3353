package handler

import (
	"net/http"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usersCreate(c *gin.Context) {
	var input dto.CreateUserDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, token, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Msg: "new user created successfully", User: user, Token: token})
}

func (h *Handler) usersLogin(c *gin.Context) {
	var input dto.SignInDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, token, err := h.services.Auth.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Msg: "user found", User: user, Token: token})
}
