package model

import "library-backend/internal/shared/apperror"

var (
	ErrUserNotFound          = apperror.New(apperror.NotFound, "USER_NOT_FOUND", "user not found")
	ErrUsernameAlreadyExists = apperror.New(apperror.Conflict, "USERNAME_ALREADY_EXISTS", "username is already taken")
	ErrEmailAlreadyExists    = apperror.New(apperror.Conflict, "EMAIL_ALREADY_EXISTS", "email is already in use")
	ErrInvalidRole           = apperror.New(apperror.Validation, "INVALID_ROLE", "role must be MEMBER or ADMIN")

	// Same message for unknown user and wrong password
	ErrInvalidCredentials = apperror.New(apperror.InvalidCredentials, "INVALID_CREDENTIALS", "invalid username or password")
	ErrTooManyAttempts    = apperror.New(apperror.TooManyRequests, "TOO_MANY_ATTEMPTS", "too many login attempts, please try again later")
)
