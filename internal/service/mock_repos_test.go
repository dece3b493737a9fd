package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/sandytim520-svg/courseselection/internal/catalog"
	"github.com/sandytim520-svg/courseselection/internal/model"
	"github.com/sandytim520-svg/courseselection/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[uint]*model.User
	idCounter uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		m.idCounter++
		user.ID = m.idCounter
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsernameAndPhone(_ context.Context, username, phone string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username && u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var ids []uint
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []model.User
	for _, id := range ids {
		result = append(result, *m.users[id])
	}
	return result, nil
}

// ── Mock CourseRepository ──
//
// Search 复用 catalog.Facets.Matches 判定并按学期降序、课程代码升序排序，
// 与 GORM 实现生成的 SQL 条件语义一致

type mockCourseRepo struct {
	courses   map[uint]*model.Course
	idCounter uint
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[uint]*model.Course)}
}

func courseFields(c *model.Course) *catalog.CourseFields {
	return &catalog.CourseFields{
		Semester:   c.Semester,
		Department: c.Department,
		Grade:      c.Grade,
		CourseType: c.CourseType,
		CourseName: c.CourseName,
		Instructor: c.Instructor,
		Classroom:  c.Classroom,
		CourseCode: c.CourseCode,
		Weekday:    c.Weekday,
		Period:     c.Period,
		Remarks:    c.Remarks,
	}
}

func (m *mockCourseRepo) Search(_ context.Context, f *catalog.Facets) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if f.Matches(courseFields(c)) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Semester != result[j].Semester {
			return result[i].Semester > result[j].Semester
		}
		return result[i].CourseCode < result[j].CourseCode
	})
	return result, nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id uint) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.ID == 0 {
		m.idCounter++
		course.ID = m.idCounter
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id uint) error {
	delete(m.courses, id)
	return nil
}

// Upsert 按自然键 (semester, course_code, class_group) 冲突更新
func (m *mockCourseRepo) Upsert(_ context.Context, course *model.Course) error {
	for _, existing := range m.courses {
		if existing.Semester == course.Semester &&
			existing.CourseCode == course.CourseCode &&
			existing.ClassGroup == course.ClassGroup {
			course.ID = existing.ID
			course.Enrolled = existing.Enrolled
			m.courses[existing.ID] = course
			return nil
		}
	}
	return m.Create(context.Background(), course)
}

func (m *mockCourseRepo) DistinctSemesters(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, c := range m.courses {
		if !seen[c.Semester] {
			seen[c.Semester] = true
			result = append(result, c.Semester)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(result)))
	return result, nil
}

func (m *mockCourseRepo) DistinctDepartments(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, c := range m.courses {
		if !seen[c.Department] {
			seen[c.Department] = true
			result = append(result, c.Department)
		}
	}
	sort.Strings(result)
	return result, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[uint]*model.Enrollment
	courses     *mockCourseRepo
	idCounter   uint
}

func newMockEnrollmentRepo(courses *mockCourseRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{
		enrollments: make(map[uint]*model.Enrollment),
		courses:     courses,
	}
}

func (m *mockEnrollmentRepo) Upsert(_ context.Context, e *model.Enrollment) error {
	for _, existing := range m.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			existing.Status = e.Status
			*e = *existing
			return nil
		}
	}
	m.idCounter++
	e.ID = m.idCounter
	e.CreatedAt = time.Now()
	cp := *e
	m.enrollments[e.ID] = &cp
	return nil
}

func (m *mockEnrollmentRepo) GetByUserAndCourse(_ context.Context, userID, courseID uint) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByUser(_ context.Context, userID uint, status string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.UserID != userID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		cp := *e
		if m.courses != nil {
			if c, ok := m.courses.courses[e.CourseID]; ok {
				cc := *c
				cp.Course = &cc
			}
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		ci, cj := result[i].Course, result[j].Course
		if ci == nil || cj == nil {
			return result[i].ID < result[j].ID
		}
		if ci.Semester != cj.Semester {
			return ci.Semester > cj.Semester
		}
		return ci.CourseCode < cj.CourseCode
	})
	return result, nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, userID, courseID uint) error {
	for id, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			delete(m.enrollments, id)
		}
	}
	return nil
}

// ── 测试用 Repository 聚合 ──

func newTestRepo() (*repository.Repository, *mockUserRepo, *mockCourseRepo, *mockEnrollmentRepo) {
	userRepo := newMockUserRepo()
	courseRepo := newMockCourseRepo()
	enrollRepo := newMockEnrollmentRepo(courseRepo)
	repo := &repository.Repository{
		User:       userRepo,
		Course:     courseRepo,
		Enrollment: enrollRepo,
	}
	return repo, userRepo, courseRepo, enrollRepo
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	blocked map[string]bool
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{blocked: make(map[string]bool)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, _ time.Duration) error {
	m.blocked[jti] = true
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.blocked[jti], nil
}
