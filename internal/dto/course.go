package dto

import (
	"github.com/sandytim520-svg/courseselection/internal/catalog"
	"github.com/sandytim520-svg/courseselection/internal/model"
)

// ── 课程模块 DTO ──

// SearchCoursesRequest 课程检索请求
// 列表型条件以逗号分隔多个取值，條件之間取交集、同一條件內取並集
type SearchCoursesRequest struct {
	Keyword    string `form:"keyword"`
	Semester   string `form:"semester"`
	Department string `form:"department"`
	Grade      string `form:"grade"`
	CourseType string `form:"type"`
	Weekday    string `form:"weekday"`
	Period     string `form:"period"`
	Degree     string `form:"degree"`
	Category   string `form:"category"`
}

// Facets 转换为检索条件
func (r *SearchCoursesRequest) Facets() *catalog.Facets {
	return &catalog.Facets{
		Keyword:    r.Keyword,
		Semester:   r.Semester,
		Department: r.Department,
		Grade:      r.Grade,
		CourseType: r.CourseType,
		Weekday:    r.Weekday,
		Period:     r.Period,
		Degree:     r.Degree,
		Category:   r.Category,
	}
}

// CourseResponse 课程响应
type CourseResponse struct {
	ID            uint    `json:"id"`
	Semester      string  `json:"semester"`
	Department    string  `json:"department"`
	Grade         string  `json:"grade"`
	CourseCode    string  `json:"course_code"`
	CourseName    string  `json:"course_name"`
	CourseNameEn  string  `json:"course_name_en"`
	Instructor    string  `json:"instructor"`
	Credits       float64 `json:"credits"`
	CourseType    string  `json:"course_type"`
	Classroom     string  `json:"classroom"`
	DayTime       string  `json:"day_time"`
	Weekday       string  `json:"weekday"`
	Period        string  `json:"period"`
	Capacity      int     `json:"capacity"`
	Enrolled      int     `json:"enrolled"`
	ClassGroup    string  `json:"class_group"`
	Remarks       string  `json:"remarks"`
	CourseSummary string  `json:"course_summary"`
}

// NewCourseResponse 从模型构造课程响应
func NewCourseResponse(c *model.Course) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		Semester:      c.Semester,
		Department:    c.Department,
		Grade:         c.Grade,
		CourseCode:    c.CourseCode,
		CourseName:    c.CourseName,
		CourseNameEn:  c.CourseNameEn,
		Instructor:    c.Instructor,
		Credits:       c.Credits,
		CourseType:    c.CourseType,
		Classroom:     c.Classroom,
		DayTime:       c.DayTime,
		Weekday:       c.Weekday,
		Period:        c.Period,
		Capacity:      c.Capacity,
		Enrolled:      c.Enrolled,
		ClassGroup:    c.ClassGroup,
		Remarks:       c.Remarks,
		CourseSummary: c.CourseSummary,
	}
}

// CourseListResponse 课程列表响应
type CourseListResponse struct {
	Items []CourseResponse `json:"items"`
	Count int              `json:"count"`
}

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Semester      string  `json:"semester"    binding:"required"`
	Department    string  `json:"department"  binding:"required"`
	Grade         string  `json:"grade"`
	CourseCode    string  `json:"course_code"`
	CourseName    string  `json:"course_name" binding:"required"`
	CourseNameEn  string  `json:"course_name_en"`
	Instructor    string  `json:"instructor"`
	Credits       float64 `json:"credits"`
	CourseType    string  `json:"course_type"`
	Classroom     string  `json:"classroom"`
	Weekday       string  `json:"weekday"`
	Period        string  `json:"period"`
	Capacity      *int    `json:"capacity"`
	ClassGroup    string  `json:"class_group"`
	Remarks       string  `json:"remarks"`
	CourseSummary string  `json:"course_summary"`
}

// UpdateCourseRequest 更新课程请求，仅更新非空字段
type UpdateCourseRequest struct {
	Semester      *string  `json:"semester"`
	Department    *string  `json:"department"`
	Grade         *string  `json:"grade"`
	CourseCode    *string  `json:"course_code"`
	CourseName    *string  `json:"course_name"`
	CourseNameEn  *string  `json:"course_name_en"`
	Instructor    *string  `json:"instructor"`
	Credits       *float64 `json:"credits"`
	CourseType    *string  `json:"course_type"`
	Classroom     *string  `json:"classroom"`
	Weekday       *string  `json:"weekday"`
	Period        *string  `json:"period"`
	Capacity      *int     `json:"capacity"`
	ClassGroup    *string  `json:"class_group"`
	Remarks       *string  `json:"remarks"`
	CourseSummary *string  `json:"course_summary"`
}

// ImportFailure 导入失败明细
type ImportFailure struct {
	Row    int    `json:"row"`    // 出错行号（文件中的行，从 1 起）
	Reason string `json:"reason"` // 失败原因
}

// ImportResponse 课程导入结果
type ImportResponse struct {
	Imported int             `json:"imported"` // 成功写入（新增或更新）行数
	Skipped  int             `json:"skipped"`  // 跳过的空行 / 无课名行数
	Failures []ImportFailure `json:"failures"` // 单行失败明细
}
