package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/service"
	"github.com/sandytim520-svg/courseselection/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

// Enroll 选课 / 收藏
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.enrollSvc.Enroll(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 当前用户的选课 / 收藏列表
// GET /api/v1/enrollments?status=enrolled
func (h *EnrollmentHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.enrollSvc.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Drop 退选
// DELETE /api/v1/enrollments/:course_id
func (h *EnrollmentHandler) Drop(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	courseID, err := strconv.ParseUint(c.Param("course_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, 10001, "课程 ID 无效")
		return
	}

	if err := h.enrollSvc.Drop(c.Request.Context(), userID, uint(courseID)); err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			response.NotFound(c, 13001, "选课记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
