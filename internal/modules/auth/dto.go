package auth

import "github.com/parkatlas/core/internal/models"

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=40"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func toSessionResponse(u *models.UserModel, token string) sessionResponse {
	return sessionResponse{
		Token: token,
		User:  userResponse{ID: u.ID, Username: u.Username, Name: u.Name},
	}
}
