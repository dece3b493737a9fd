//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sandytim520-svg/courseselection/internal/catalog"
	"github.com/sandytim520-svg/courseselection/internal/model"
	"github.com/sandytim520-svg/courseselection/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=course_select password=course_select_password dbname=course_select_test sslmode=disable TimeZone=Asia/Taipei"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.AutoMigrate(&model.User{}, &model.Course{}, &model.Enrollment{}); err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}
	// Upsert 依赖的自然键唯一索引（AutoMigrate 不建组合唯一索引）
	testDB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_courses_natural_key
		ON courses (semester, course_code, class_group)`)

	code := m.Run()
	os.Exit(code)
}

func cleanCourses(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("DELETE FROM courses").Error; err != nil {
		t.Fatalf("清理课程表失败: %v", err)
	}
}

func seedTestCourse(t *testing.T, repo repository.CourseRepository, c model.Course) {
	t.Helper()
	if c.Capacity == 0 {
		c.Capacity = 60
	}
	if err := repo.Create(context.Background(), &c); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// CourseRepository
// ═══════════════════════════════════════════════════════════

func TestCourseRepo_Search_PeriodBracketing(t *testing.T) {
	cleanCourses(t)
	repo := repository.NewCourseRepo(testDB)
	ctx := context.Background()

	seedTestCourse(t, repo, model.Course{
		Semester: "1132", Department: "護理系", CourseName: "甲课",
		CourseCode: "A001", Period: "1,3",
	})
	seedTestCourse(t, repo, model.Course{
		Semester: "1132", Department: "護理系", CourseName: "乙课",
		CourseCode: "A002", Period: "13",
	})

	// 节次 1 只应命中整项成员 "1,3"，不应误中 "13"
	result, err := repo.Search(ctx, &catalog.Facets{Period: "1"})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if len(result) != 1 || result[0].CourseCode != "A001" {
		t.Errorf("期望仅命中 A001，实际=%v", result)
	}
}

func TestCourseRepo_Search_DegreeBySubstr(t *testing.T) {
	cleanCourses(t)
	repo := repository.NewCourseRepo(testDB)
	ctx := context.Background()

	seedTestCourse(t, repo, model.Course{
		Semester: "1132", Department: "護理系", CourseName: "四技课",
		CourseCode: "1A1412001",
	})
	seedTestCourse(t, repo, model.Course{
		Semester: "1132", Department: "護理系", CourseName: "硕士课",
		CourseCode: "1A1612001",
	})

	result, err := repo.Search(ctx, &catalog.Facets{Degree: "四技"})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if len(result) != 1 || result[0].CourseName != "四技课" {
		t.Errorf("学制筛选应按课程代码第 3-4 位判定，实际=%v", result)
	}
}

func TestCourseRepo_Upsert_NaturalKey(t *testing.T) {
	cleanCourses(t)
	repo := repository.NewCourseRepo(testDB)
	ctx := context.Background()

	first := &model.Course{
		Semester: "1132", Department: "護理系", CourseName: "護理學導論",
		CourseCode: "1A1412001", ClassGroup: "A", Instructor: "王老師", Capacity: 60,
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("首次 Upsert 失败: %v", err)
	}

	second := &model.Course{
		Semester: "1132", Department: "護理系", CourseName: "護理學導論",
		CourseCode: "1A1412001", ClassGroup: "A", Instructor: "陳老師", Capacity: 60,
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("重复 Upsert 失败: %v", err)
	}

	result, err := repo.Search(ctx, &catalog.Facets{Semester: "1132"})
	if err != nil {
		t.Fatalf("Search 失败: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("自然键相同应只保留一条记录，实际=%d", len(result))
	}
	if result[0].Instructor != "陳老師" {
		t.Errorf("冲突时应更新教师，实际=%s", result[0].Instructor)
	}
}

func TestCourseRepo_DistinctListings(t *testing.T) {
	cleanCourses(t)
	repo := repository.NewCourseRepo(testDB)
	ctx := context.Background()

	seedTestCourse(t, repo, model.Course{Semester: "1131", Department: "護理系", CourseName: "甲课", CourseCode: "A001"})
	seedTestCourse(t, repo, model.Course{Semester: "1132", Department: "護理系", CourseName: "乙课", CourseCode: "A002"})
	seedTestCourse(t, repo, model.Course{Semester: "1132", Department: "資訊管理系", CourseName: "丙课", CourseCode: "A003"})

	semesters, err := repo.DistinctSemesters(ctx)
	if err != nil {
		t.Fatalf("DistinctSemesters 失败: %v", err)
	}
	if len(semesters) != 2 || semesters[0] != "1132" {
		t.Errorf("期望学期 [1132 1131]，实际=%v", semesters)
	}

	departments, err := repo.DistinctDepartments(ctx)
	if err != nil {
		t.Fatalf("DistinctDepartments 失败: %v", err)
	}
	if len(departments) != 2 {
		t.Errorf("期望 2 个系所，实际=%v", departments)
	}
}
