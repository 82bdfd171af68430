package dto

import "github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"

type SignupRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Photo           string `json:"photo"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type AuthResult struct {
	Token string
	User  *models.User
}

type TokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type SignupResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   UserData `json:"data"`
}

type UserData struct {
	User *models.User `json:"user"`
}

type UserResponse struct {
	Status string   `json:"status"`
	Data   UserData `json:"data"`
}

type UserListResponse struct {
	Status  string       `json:"status"`
	Results int          `json:"results"`
	Data    UserListData `json:"data"`
}

type UserListData struct {
	Users []models.User `json:"users"`
}
