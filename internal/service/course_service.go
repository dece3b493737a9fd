package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sandytim520-svg/courseselection/internal/catalog"
	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/model"
	"github.com/sandytim520-svg/courseselection/internal/repository"
)

var ErrCourseNotFound = errors.New("课程不存在")

// defaultDepartments 课程表为空时下拉框的候选系所
var defaultDepartments = []string{
	"護理系", "高齡健康照護系", "助產及婦女健康照護系", "醫護教育暨數位學習系",
	"資訊管理系", "健康事業管理系", "休閒產業與健康促進系", "長期照護系",
	"語言治療與聽力學系", "生死與健康心理諮商系", "嬰幼兒保育系", "運動保健系",
}

// CourseService 课程业务接口
type CourseService interface {
	Search(ctx context.Context, req *dto.SearchCoursesRequest) (*dto.CourseListResponse, error)
	Get(ctx context.Context, id uint) (*dto.CourseResponse, error)
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id uint) error
	ListSemesters(ctx context.Context) ([]string, error)
	ListDepartments(ctx context.Context) ([]string, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Search(ctx context.Context, req *dto.SearchCoursesRequest) (*dto.CourseListResponse, error) {
	courses, err := s.repo.Course.Search(ctx, req.Facets())
	if err != nil {
		s.logger.Error("检索课程失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, dto.NewCourseResponse(&courses[i]))
	}
	return &dto.CourseListResponse{Items: items, Count: len(items)}, nil
}

func (s *courseService) Get(ctx context.Context, id uint) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	capacity := 60
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	course := &model.Course{
		Semester:      req.Semester,
		Department:    req.Department,
		Grade:         req.Grade,
		CourseCode:    req.CourseCode,
		CourseName:    req.CourseName,
		CourseNameEn:  req.CourseNameEn,
		Instructor:    req.Instructor,
		Credits:       req.Credits,
		CourseType:    req.CourseType,
		Classroom:     req.Classroom,
		Weekday:       req.Weekday,
		Period:        req.Period,
		DayTime:       catalog.FormatDayTime(req.Weekday, req.Period),
		Capacity:      capacity,
		ClassGroup:    req.ClassGroup,
		Remarks:       req.Remarks,
		CourseSummary: req.CourseSummary,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		return nil, err
	}
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Semester != nil {
		course.Semester = *req.Semester
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.Grade != nil {
		course.Grade = *req.Grade
	}
	if req.CourseCode != nil {
		course.CourseCode = *req.CourseCode
	}
	if req.CourseName != nil {
		course.CourseName = *req.CourseName
	}
	if req.CourseNameEn != nil {
		course.CourseNameEn = *req.CourseNameEn
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.CourseType != nil {
		course.CourseType = *req.CourseType
	}
	if req.Classroom != nil {
		course.Classroom = *req.Classroom
	}
	if req.Weekday != nil {
		course.Weekday = *req.Weekday
	}
	if req.Period != nil {
		course.Period = *req.Period
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}
	if req.ClassGroup != nil {
		course.ClassGroup = *req.ClassGroup
	}
	if req.Remarks != nil {
		course.Remarks = *req.Remarks
	}
	if req.CourseSummary != nil {
		course.CourseSummary = *req.CourseSummary
	}

	// 星期/节次变动后重新合成上课时间
	course.DayTime = catalog.FormatDayTime(course.Weekday, course.Period)

	if err := s.repo.Course.Update(ctx, course); err != nil {
		return nil, err
	}
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return s.repo.Course.Delete(ctx, id)
}

func (s *courseService) ListSemesters(ctx context.Context) ([]string, error) {
	return s.repo.Course.DistinctSemesters(ctx)
}

// ListDepartments 返回课程表中出现过的系所；表为空时回退到固定候选
func (s *courseService) ListDepartments(ctx context.Context) ([]string, error) {
	departments, err := s.repo.Course.DistinctDepartments(ctx)
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return defaultDepartments, nil
	}
	return departments, nil
}
