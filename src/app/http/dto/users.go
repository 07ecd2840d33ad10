package dto

import "lightbnb/src/core/domain"

// RegisterUserRequest is the payload for POST /v1/users.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r RegisterUserRequest) ToDomain() domain.NewUser {
	return domain.NewUser{Name: r.Name, Email: r.Email, Password: r.Password}
}

// LoginRequest is the payload for POST /v1/users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
