package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sandytim520-svg/courseselection/internal/model"
)

// EnrollmentRepository 选课记录数据访问接口
type EnrollmentRepository interface {
	Upsert(ctx context.Context, e *model.Enrollment) error
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*model.Enrollment, error)
	ListByUser(ctx context.Context, userID uint, status string) ([]model.Enrollment, error)
	Delete(ctx context.Context, userID, courseID uint) error
}

// enrollmentRepo EnrollmentRepository 的 GORM 实现
type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

// Upsert 同一用户对同一课程仅保留一条记录，重复操作只更新状态
func (r *enrollmentRepo) Upsert(ctx context.Context, e *model.Enrollment) error {
	var existing model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", e.UserID, e.CourseID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(e).Error
	}
	if err != nil {
		return err
	}
	existing.Status = e.Status
	*e = existing
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *enrollmentRepo) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByUser 查询用户选课记录并联出课程快照，status 为空时不过滤状态。
// 排序规则与课程检索一致：学期降序、课程代码升序。
func (r *enrollmentRepo) ListByUser(ctx context.Context, userID uint, status string) ([]model.Enrollment, error) {
	db := r.db.WithContext(ctx).
		Preload("Course").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ?", userID)
	if status != "" {
		db = db.Where("enrollments.status = ?", status)
	}

	var list []model.Enrollment
	if err := db.Order("courses.semester DESC, courses.course_code ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *enrollmentRepo) Delete(ctx context.Context, userID, courseID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Enrollment{}).Error
}
