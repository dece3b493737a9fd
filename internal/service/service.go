package service

import (
	"go.uber.org/zap"

	"github.com/sandytim520-svg/courseselection/config"
	"github.com/sandytim520-svg/courseselection/internal/repository"
	"github.com/sandytim520-svg/courseselection/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Course     CourseService
	Enrollment EnrollmentService
	Import     ImportService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, blacklist, logger),
		User:       NewUserService(cfg, repo, logger),
		Course:     NewCourseService(repo, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Import:     NewImportService(cfg, repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
