package model

import "time"

// Course 课程表 — 对应 courses
//
// 一条记录代表一个开课班组（section）。course_code 并非全局唯一：
// 同一学期内以 (semester, course_code, class_group) 作为自然键，
// 导入时据此判断插入还是更新。
type Course struct {
	ID            uint      `gorm:"primaryKey"                         json:"id"`
	Semester      string    `gorm:"type:text;not null;index"           json:"semester"`
	Department    string    `gorm:"type:text;not null;index"           json:"department"`
	Grade         string    `gorm:"type:text"                          json:"grade"`
	CourseCode    string    `gorm:"type:text;not null"                 json:"course_code"`
	CourseName    string    `gorm:"type:text;not null"                 json:"course_name"`
	CourseNameEn  string    `gorm:"type:text"                          json:"course_name_en"`
	Instructor    string    `gorm:"type:text"                          json:"instructor"`
	Credits       float64   `gorm:"type:real"                          json:"credits"`
	CourseType    string    `gorm:"type:text"                          json:"course_type"`
	Classroom     string    `gorm:"type:text"                          json:"classroom"`
	DayTime       string    `gorm:"type:text"                          json:"day_time"`
	Weekday       string    `gorm:"type:text"                          json:"weekday"` // 原始星期数字 0-7，可为空
	Period        string    `gorm:"type:text"                          json:"period"`  // 逗号分隔节次，如 "6,7"
	Capacity      int       `gorm:"not null;default:60"                json:"capacity"`
	Enrolled      int       `gorm:"not null;default:0"                 json:"enrolled"`
	ClassGroup    string    `gorm:"type:text"                          json:"class_group"`
	Remarks       string    `gorm:"type:text"                          json:"remarks"`
	CourseSummary string    `gorm:"type:text"                          json:"course_summary"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
