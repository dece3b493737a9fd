package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/service"
	"github.com/sandytim520-svg/courseselection/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	importSvc service.ImportService
	exportSvc service.ExportService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(
	courseSvc service.CourseService,
	importSvc service.ImportService,
	exportSvc service.ExportService,
) *CourseHandler {
	return &CourseHandler{
		courseSvc: courseSvc,
		importSvc: importSvc,
		exportSvc: exportSvc,
	}
}

// Search 组合条件检索课程
// GET /api/v1/courses
func (h *CourseHandler) Search(c *gin.Context) {
	var req dto.SearchCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Get 课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, 10001, "课程 ID 无效")
		return
	}

	result, err := h.courseSvc.Get(c.Request.Context(), uint(id))
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

// Create 新建课程（管理员）
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Update 更新课程（管理员）
// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, 10001, "课程 ID 无效")
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Update(c.Request.Context(), uint(id), &req)
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

// Delete 删除课程（管理员），相关选课记录级联清理
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, 10001, "课程 ID 无效")
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ListSemesters 课程表中出现过的学期
// GET /api/v1/semesters
func (h *CourseHandler) ListSemesters(c *gin.Context) {
	result, err := h.courseSvc.ListSemesters(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListDepartments 课程表中出现过的系所
// GET /api/v1/departments
func (h *CourseHandler) ListDepartments(c *gin.Context) {
	result, err := h.courseSvc.ListDepartments(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Import 上传课表文件导入课程（管理员）
// POST /api/v1/courses/import  (multipart: file, semester)
func (h *CourseHandler) Import(c *gin.Context) {
	semester := c.PostForm("semester")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 12002, "缺少上传文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(c.Request.Context(), file, fileHeader.Filename, semester)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSemesterMissing):
			response.BadRequest(c, 12003, "缺少学期参数")
		case errors.Is(err, service.ErrUnsupportedFile):
			response.BadRequest(c, 12004, "不支持的文件格式")
		case errors.Is(err, service.ErrEmptyFile):
			response.BadRequest(c, 12005, "文件内容为空")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Export 按当前检索条件导出课程为 Excel
// GET /api/v1/courses/export
func (h *CourseHandler) Export(c *gin.Context) {
	var req dto.SearchCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportCourses(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrExportNoCourses) {
			response.NotFound(c, 12006, "没有符合条件的课程可导出")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
