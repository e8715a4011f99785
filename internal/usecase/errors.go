package usecase

import "errors"

var (
	ErrInternal      = errors.New("internal error")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrJobNotFound   = errors.New("job not found")
	ErrAlertNotFound = errors.New("job alert not found")
)
