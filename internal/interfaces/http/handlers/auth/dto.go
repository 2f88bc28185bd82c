package auth

import "github.com/keshevplus/leadhub/internal/domain/identity"

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RequestResetRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminUser is the admin as returned by login.
type AdminUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}

// MeResponse is the body of GET /auth/me.
type MeResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toAdminUser(i *identity.Identity) AdminUser {
	return AdminUser{ID: i.ID, Username: i.Username, Role: i.Role.String()}
}

func toMeResponse(i *identity.Identity) MeResponse {
	return MeResponse{
		ID:       i.ID,
		Username: i.Username,
		Email:    i.EmailOrEmpty(),
		Role:     i.Role.String(),
	}
}
