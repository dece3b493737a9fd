package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sandytim520-svg/courseselection/internal/catalog"
	"github.com/sandytim520-svg/courseselection/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Search(ctx context.Context, f *catalog.Facets) ([]model.Course, error)
	GetByID(ctx context.Context, id uint) (*model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, course *model.Course) error
	DistinctSemesters(ctx context.Context) ([]string, error)
	DistinctDepartments(ctx context.Context) ([]string, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

// Search 按组合条件检索课程，SQL 条件与 catalog.Facets.Matches 等价：
// 条件之间 AND，多值条件内部 OR，按学期降序、课程代码升序排列
func (r *courseRepo) Search(ctx context.Context, f *catalog.Facets) ([]model.Course, error) {
	db := r.db.WithContext(ctx).Model(&model.Course{})

	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		db = db.Where(
			"course_name LIKE ? OR instructor LIKE ? OR classroom LIKE ?",
			like, like, like,
		)
	}
	if f.Semester != "" {
		db = db.Where("semester = ?", f.Semester)
	}
	if f.Department != "" {
		db = db.Where("department = ?", f.Department)
	}
	if f.Grade != "" {
		db = db.Where("grade = ?", f.Grade)
	}
	if f.CourseType != "" {
		db = db.Where("course_type = ?", f.CourseType)
	}

	if weekdays := catalog.SplitList(f.Weekday); len(weekdays) > 0 {
		db = db.Where("weekday IN ?", weekdays)
	}

	// 节次为逗号列表整项成员判定，两侧补逗号防止 "1" 误中 "13"
	if periods := catalog.SplitList(f.Period); len(periods) > 0 {
		cond := r.db.Session(&gorm.Session{NewDB: true})
		for _, p := range periods {
			cond = cond.Or("(',' || period || ',') LIKE ?", "%,"+p+",%")
		}
		db = db.Where(cond)
	}

	// 学制按课程代码第 3-4 位判定；未知名称不产生条件
	if degrees := catalog.SplitList(f.Degree); len(degrees) > 0 {
		cond := r.db.Session(&gorm.Session{NewDB: true})
		n := 0
		for _, d := range degrees {
			for _, sub := range catalog.DegreeCodeSubstrings(d) {
				cond = cond.Or("SUBSTR(course_code, 3, 2) = ?", sub)
				n++
			}
		}
		if n > 0 {
			db = db.Where(cond)
		}
	}

	// 内容分类按课表备注关键字判定；未知标签不产生条件
	if tags := catalog.SplitList(f.Category); len(tags) > 0 {
		cond := r.db.Session(&gorm.Session{NewDB: true})
		n := 0
		for _, t := range tags {
			for _, sub := range catalog.CategoryTriggerSubstrings(t) {
				cond = cond.Or("remarks LIKE ?", "%"+sub+"%")
				n++
			}
		}
		if n > 0 {
			db = db.Where(cond)
		}
	}

	var courses []model.Course
	err := db.Order("semester DESC").
		Order("course_code ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete 删除课程，选课记录由外键级联清理
func (r *courseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Course{}, id).Error
}

// Upsert 按自然键 (semester, course_code, class_group) 写入：
// 已存在则更新课表字段，不存在则插入，单条语句内完成
func (r *courseRepo) Upsert(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "semester"}, {Name: "course_code"}, {Name: "class_group"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"department", "grade", "course_name", "course_name_en",
			"instructor", "credits", "course_type", "classroom",
			"day_time", "weekday", "period", "capacity",
			"remarks", "course_summary",
		}),
	}).Create(course).Error
}

func (r *courseRepo) DistinctSemesters(ctx context.Context) ([]string, error) {
	var semesters []string
	err := r.db.WithContext(ctx).Model(&model.Course{}).
		Distinct("semester").
		Order("semester DESC").
		Pluck("semester", &semesters).Error
	if err != nil {
		return nil, err
	}
	return semesters, nil
}

func (r *courseRepo) DistinctDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	err := r.db.WithContext(ctx).Model(&model.Course{}).
		Distinct("department").
		Order("department ASC").
		Pluck("department", &departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}
