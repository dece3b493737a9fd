package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoCourses    = errors.New("没有符合条件的课程可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 检索结果导出为 .xlsx，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	ExportCourses(ctx context.Context, req *dto.SearchCoursesRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// exportHeaders 导出表头，列顺序即写入顺序
var exportHeaders = []string{
	"學期", "系所", "年級", "科目代碼", "科目名稱", "科目英文名稱",
	"授課教師", "學分數", "課別", "上課地點", "上課時間", "上課人數",
	"上課班組", "課表備註",
}

func (s *exportService) ExportCourses(ctx context.Context, req *dto.SearchCoursesRequest) (*bytes.Buffer, string, error) {
	courses, err := s.repo.Course.Search(ctx, req.Facets())
	if err != nil {
		s.logger.Error("检索课程失败", zap.Error(err))
		return nil, "", err
	}
	if len(courses) == 0 {
		return nil, "", ErrExportNoCourses
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "課程查詢結果"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
		f.SetColWidth(sheetName, col, col, 14)
	}

	for r := range courses {
		c := &courses[r]
		values := []interface{}{
			c.Semester, c.Department, c.Grade, c.CourseCode,
			c.CourseName, c.CourseNameEn, c.Instructor, c.Credits,
			c.CourseType, c.Classroom, c.DayTime, c.Capacity,
			c.ClassGroup, c.Remarks,
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheetName, cell(col, r+2), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := "課程查詢結果.xlsx"
	if req.Semester != "" {
		filename = fmt.Sprintf("課程查詢結果_%s.xlsx", req.Semester)
	}
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
