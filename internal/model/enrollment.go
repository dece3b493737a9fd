package model

import "time"

// 常见收藏/选课状态（status 本身是自由文本，这两个为约定值）
const (
	EnrollStatusFavorite = "favorite"
	EnrollStatusEnrolled = "enrolled"
)

// Enrollment 收藏/选课记录 — 对应 enrollments
//
// 每个 (user_id, course_id) 至多一条记录；重复操作按 status 覆盖（upsert）。
type Enrollment struct {
	ID        uint      `gorm:"primaryKey"                           json:"id"`
	UserID    uint      `gorm:"not null;index"                       json:"user_id"`
	CourseID  uint      `gorm:"not null"                             json:"course_id"`
	Status    string    `gorm:"type:text;not null;default:'enrolled'" json:"status"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"created_at"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
