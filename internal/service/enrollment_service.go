package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/model"
	"github.com/sandytim520-svg/courseselection/internal/repository"
)

var ErrEnrollmentNotFound = errors.New("选课记录不存在")

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	Enroll(ctx context.Context, userID uint, req *dto.EnrollRequest) (*dto.EnrollmentResponse, error)
	List(ctx context.Context, userID uint, status string) ([]dto.EnrollmentResponse, error)
	Drop(ctx context.Context, userID, courseID uint) error
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// Enroll 选课或收藏。同一用户对同一课程重复操作时只切换状态
func (s *enrollmentService) Enroll(ctx context.Context, userID uint, req *dto.EnrollRequest) (*dto.EnrollmentResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.EnrollStatusEnrolled
	}

	e := &model.Enrollment{
		UserID:   userID,
		CourseID: req.CourseID,
		Status:   status,
	}
	if err := s.repo.Enrollment.Upsert(ctx, e); err != nil {
		s.logger.Error("写入选课记录失败", zap.Error(err))
		return nil, err
	}

	return &dto.EnrollmentResponse{
		ID:     e.ID,
		Status: e.Status,
		Course: dto.NewCourseResponse(course),
	}, nil
}

func (s *enrollmentService) List(ctx context.Context, userID uint, status string) ([]dto.EnrollmentResponse, error) {
	list, err := s.repo.Enrollment.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EnrollmentResponse, 0, len(list))
	for i := range list {
		resp := dto.EnrollmentResponse{
			ID:     list[i].ID,
			Status: list[i].Status,
		}
		if list[i].Course != nil {
			resp.Course = dto.NewCourseResponse(list[i].Course)
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *enrollmentService) Drop(ctx context.Context, userID, courseID uint) error {
	if _, err := s.repo.Enrollment.GetByUserAndCourse(ctx, userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		return err
	}
	return s.repo.Enrollment.Delete(ctx, userID, courseID)
}
