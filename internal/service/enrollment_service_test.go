package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/model"
)

func setupTestEnrollmentService() (EnrollmentService, *mockCourseRepo, *mockEnrollmentRepo) {
	repo, _, courseRepo, enrollRepo := newTestRepo()
	svc := NewEnrollmentService(repo, zap.NewNop())
	return svc, courseRepo, enrollRepo
}

func TestEnroll_DefaultStatus(t *testing.T) {
	svc, courseRepo, _ := setupTestEnrollmentService()
	c := seedCourse(courseRepo, model.Course{Semester: "1132", Department: "護理系", CourseName: "護理學導論"})

	result, err := svc.Enroll(context.Background(), 1, &dto.EnrollRequest{CourseID: c.ID})
	if err != nil {
		t.Fatalf("Enroll 应成功，但返回错误: %v", err)
	}
	if result.Status != model.EnrollStatusEnrolled {
		t.Errorf("缺省状态应为 enrolled，实际=%s", result.Status)
	}
	if result.Course.CourseName != "護理學導論" {
		t.Errorf("响应应携带课程快照，实际=%s", result.Course.CourseName)
	}
}

func TestEnroll_RepeatSwitchesStatus(t *testing.T) {
	svc, courseRepo, enrollRepo := setupTestEnrollmentService()
	c := seedCourse(courseRepo, model.Course{Semester: "1132", Department: "護理系", CourseName: "護理學導論"})

	first, _ := svc.Enroll(context.Background(), 1, &dto.EnrollRequest{CourseID: c.ID, Status: model.EnrollStatusFavorite})
	second, err := svc.Enroll(context.Background(), 1, &dto.EnrollRequest{CourseID: c.ID, Status: model.EnrollStatusEnrolled})
	if err != nil {
		t.Fatalf("重复选课应成功，但返回错误: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("重复选课应复用同一条记录，期望 ID=%d，实际=%d", first.ID, second.ID)
	}
	if len(enrollRepo.enrollments) != 1 {
		t.Errorf("同一用户同一课程应只有一条记录，实际=%d", len(enrollRepo.enrollments))
	}
	if second.Status != model.EnrollStatusEnrolled {
		t.Errorf("状态应切换为 enrolled，实际=%s", second.Status)
	}
}

func TestEnroll_CourseNotFound(t *testing.T) {
	svc, _, _ := setupTestEnrollmentService()
	if _, err := svc.Enroll(context.Background(), 1, &dto.EnrollRequest{CourseID: 999}); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际=%v", err)
	}
}

func TestListEnrollments_FilterByStatus(t *testing.T) {
	svc, courseRepo, _ := setupTestEnrollmentService()
	c1 := seedCourse(courseRepo, model.Course{Semester: "1132", Department: "護理系", CourseName: "護理學導論"})
	c2 := seedCourse(courseRepo, model.Course{Semester: "1132", Department: "護理系", CourseName: "基礎生物學"})

	_, _ = svc.Enroll(context.Background(), 1, &dto.EnrollRequest{CourseID: c1.ID, Status: model.EnrollStatusEnrolled})
	_, _ = svc.Enroll(context.Background(), 1, &dto.EnrollRequest{CourseID: c2.ID, Status: model.EnrollStatusFavorite})

	all, err := svc.List(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("List 应成功，但返回错误: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("期望 2 条记录，实际=%d", len(all))
	}

	favorites, _ := svc.List(context.Background(), 1, model.EnrollStatusFavorite)
	if len(favorites) != 1 || favorites[0].Course.CourseName != "基礎生物學" {
		t.Errorf("按状态过滤结果不符，实际=%v", favorites)
	}
}

func TestDrop(t *testing.T) {
	svc, courseRepo, enrollRepo := setupTestEnrollmentService()
	c := seedCourse(courseRepo, model.Course{Semester: "1132", Department: "護理系", CourseName: "護理學導論"})

	_, _ = svc.Enroll(context.Background(), 1, &dto.EnrollRequest{CourseID: c.ID})
	if err := svc.Drop(context.Background(), 1, c.ID); err != nil {
		t.Fatalf("Drop 应成功，但返回错误: %v", err)
	}
	if len(enrollRepo.enrollments) != 0 {
		t.Error("退选后记录应被删除")
	}

	if err := svc.Drop(context.Background(), 1, c.ID); !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("重复退选应返回 ErrEnrollmentNotFound，实际=%v", err)
	}
}
