package handler

import "github.com/sandytim520-svg/courseselection/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Course     *CourseHandler
	Enrollment *EnrollmentHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, svc.User),
		User:       NewUserHandler(svc.User),
		Course:     NewCourseHandler(svc.Course, svc.Import, svc.Export),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
	}
}
