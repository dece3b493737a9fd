package dto

import (
	"time"

	"github.com/sandytim520-svg/courseselection/internal/model"
)

// ── 用户模块 DTO ──

// UserResponse 用户信息响应
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse 从模型构造用户响应
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Name:      u.Name,
		Phone:     u.Phone,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Phone  *string `json:"phone"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Avatar *string `json:"avatar"`
}

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=32"`
	Role     string `json:"role"     binding:"required,oneof=student admin"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// UpdateUserRequest 管理员更新用户请求
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role"  binding:"omitempty,oneof=student admin"`
}

// UserListResponse 用户列表响应，按角色分组
type UserListResponse struct {
	Students []UserResponse `json:"students"`
	Admins   []UserResponse `json:"admins"`
}
