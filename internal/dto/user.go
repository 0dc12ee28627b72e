package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"omitempty,max=50"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,cnphone"`
	Code     string `json:"code" binding:"required,len=6"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,cnphone"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued credential back to the client
type TokenResponse struct {
	Token string `json:"token"`
}

type EmailCodeRequest struct {
	Email string `form:"email" binding:"required,email"`
}

type PhoneCodeRequest struct {
	Phone string `form:"phone" binding:"required,cnphone"`
}

type VerifyCodeRequest struct {
	Code  string `json:"code" binding:"required,len=6"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequest struct {
	Username string `json:"username" binding:"omitempty,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Avatar   string `json:"avatar" binding:"omitempty,max=255"`
}

// UserResponse is the outward view of an account; it never carries the
// password hash
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar,omitempty"`
	UserRole  string    `json:"user_role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
