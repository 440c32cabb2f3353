package handler

import (
	"errors"
	"net/http"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/SocialApp/social-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidID = errors.New("provided an invalid ID")
	errTooManyRequests = errors.New("too many requests from this IP, please try again after 15 minutes")
)

// statusFromError maps service errors onto distinct HTTP status codes,
// one per error kind instead of the original's blanket 400.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrCannotFollowSelf),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, service.ErrAvatarsDisabled):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
}
