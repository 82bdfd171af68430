package services

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("the user belonging to this token no longer exists")
	ErrPasswordChanged    = errors.New("password recently changed, please log in again")
	ErrWrongPassword      = errors.New("your current password is wrong")

	ErrTourNotFound  = errors.New("no tour found with that id")
	ErrTourNameTaken = errors.New("a tour with that name already exists")
	ErrInvalidGuide  = errors.New("guides must reference users with role guide or lead-guide")
	ErrReviewExists  = errors.New("you have already reviewed this tour")
)
