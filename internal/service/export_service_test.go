package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/model"
)

func setupTestExportService() (ExportService, *mockCourseRepo) {
	repo, _, courseRepo, _ := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())
	return svc, courseRepo
}

func TestExportCourses(t *testing.T) {
	svc, courseRepo := setupTestExportService()
	seedCourse(courseRepo, model.Course{
		Semester: "1132", Department: "護理系", CourseCode: "1A1412001",
		CourseName: "護理學導論", Instructor: "王老師", DayTime: "週一 2-3",
	})

	buf, filename, err := svc.ExportCourses(context.Background(), &dto.SearchCoursesRequest{Semester: "1132"})
	if err != nil {
		t.Fatalf("ExportCourses 应成功，但返回错误: %v", err)
	}
	if filename != "課程查詢結果_1132.xlsx" {
		t.Errorf("文件名不符，实际=%s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("課程查詢結果")
	if err != nil {
		t.Fatalf("读取导出工作表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望表头 + 1 行数据，实际=%d 行", len(rows))
	}
	if rows[1][4] != "護理學導論" {
		t.Errorf("数据行课名不符，实际=%v", rows[1])
	}
}

func TestExportCourses_Empty(t *testing.T) {
	svc, _ := setupTestExportService()
	if _, _, err := svc.ExportCourses(context.Background(), &dto.SearchCoursesRequest{}); !errors.Is(err, ErrExportNoCourses) {
		t.Errorf("期望 ErrExportNoCourses，实际=%v", err)
	}
}
