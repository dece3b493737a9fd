package model

import "time"

// 用户角色
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// DefaultAvatar 新用户默认头像
const DefaultAvatar = "🐱"

// User 用户表 — 对应 users
type User struct {
	ID           uint      `gorm:"primaryKey"                           json:"id"`
	Username     string    `gorm:"type:text;uniqueIndex;not null"       json:"username"`
	PasswordHash string    `gorm:"type:text;not null;column:password"   json:"-"`
	Role         string    `gorm:"type:text;not null;default:'student'" json:"role"`
	Name         string    `gorm:"type:text;default:''"                 json:"name"`
	StudentID    string    `gorm:"type:text;default:''"                 json:"student_id"`
	Department   string    `gorm:"type:text;default:''"                 json:"department"`
	ClassName    string    `gorm:"type:text;default:''"                 json:"class_name"`
	Phone        string    `gorm:"type:text;default:''"                 json:"phone"`
	Email        string    `gorm:"type:text;default:''"                 json:"email"`
	Avatar       string    `gorm:"type:text"                            json:"avatar"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
