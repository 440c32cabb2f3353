package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrUserAlreadyExists = errors.New("a user with this email/username already exists, please login")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrCannotFollowSelf = errors.New("you can't follow yourself")
	ErrForbidden = errors.New("permission denied")
	ErrNothingToUpdate = errors.New("please provide a new description to update the post")
	ErrAvatarsDisabled = errors.New("avatar storage is not configured")
)
