package dto

// ── 选课模块 DTO ──

// EnrollRequest 选课 / 收藏请求
type EnrollRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Status   string `json:"status"    binding:"omitempty,oneof=enrolled favorite"`
}

// EnrollmentResponse 选课记录响应，携带课程快照
type EnrollmentResponse struct {
	ID     uint           `json:"id"`
	Status string         `json:"status"`
	Course CourseResponse `json:"course"`
}
