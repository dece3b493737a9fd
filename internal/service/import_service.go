package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sandytim520-svg/courseselection/config"
	"github.com/sandytim520-svg/courseselection/internal/catalog"
	"github.com/sandytim520-svg/courseselection/internal/dto"
	"github.com/sandytim520-svg/courseselection/internal/model"
	"github.com/sandytim520-svg/courseselection/internal/repository"
)

// ── 导入模块业务错误 ──

var (
	ErrUnsupportedFile = errors.New("不支持的文件格式，请上传 .xlsx 或 .csv")
	ErrEmptyFile       = errors.New("文件内容为空")
	ErrSemesterMissing = errors.New("缺少学期参数")
)

// 教务导出课表的固定版式：前 3 行为标题与说明，
// 第 5 行（下标 4）为栏位名称行，数据自第 6 行（下标 5）开始
const (
	labelRowIndex = 4
	dataRowIndex  = 5
)

// columnMapping 课表栏位在行内的下标
type columnMapping struct {
	CourseCode    int
	DeptCode      int
	Grade         int
	ClassGroup    int
	CourseName    int
	CourseNameEn  int
	Instructor    int
	Capacity      int
	Credits       int
	CourseType    int
	Classroom     int
	Weekday       int
	Period        int
	Remarks       int
	CourseSummary int
}

// positionalMapping 版式未变时各栏位的固定下标
var positionalMapping = columnMapping{
	CourseCode:    3,
	DeptCode:      4,
	Grade:         7,
	ClassGroup:    8,
	CourseName:    9,
	CourseNameEn:  10,
	Instructor:    11,
	Capacity:      12,
	Credits:       15,
	CourseType:    19,
	Classroom:     20,
	Weekday:       21,
	Period:        22,
	Remarks:       23,
	CourseSummary: 24,
}

// columnLabels 栏位名称 → mapping 字段；每次导入按名称行重新解析，
// 名称缺失的栏位回退到固定下标
var columnLabels = map[string]func(*columnMapping, int){
	"科目代碼(新碼全碼)": func(m *columnMapping, i int) { m.CourseCode = i },
	"系所代碼":        func(m *columnMapping, i int) { m.DeptCode = i },
	"年級":          func(m *columnMapping, i int) { m.Grade = i },
	"上課班組":        func(m *columnMapping, i int) { m.ClassGroup = i },
	"科目中文名稱":      func(m *columnMapping, i int) { m.CourseName = i },
	"科目英文名稱":      func(m *columnMapping, i int) { m.CourseNameEn = i },
	"授課教師姓名":      func(m *columnMapping, i int) { m.Instructor = i },
	"上課人數":        func(m *columnMapping, i int) { m.Capacity = i },
	"學分數":         func(m *columnMapping, i int) { m.Credits = i },
	"課別名稱":        func(m *columnMapping, i int) { m.CourseType = i },
	"上課地點":        func(m *columnMapping, i int) { m.Classroom = i },
	"上課星期":        func(m *columnMapping, i int) { m.Weekday = i },
	"上課節次":        func(m *columnMapping, i int) { m.Period = i },
	"課表備註":        func(m *columnMapping, i int) { m.Remarks = i },
	"課程中文摘要":      func(m *columnMapping, i int) { m.CourseSummary = i },
}

// ImportService 课表导入业务接口
type ImportService interface {
	// Import 解析上传的课表文件并按自然键写入指定学期的课程。
	// 单行解析失败只记入结果明细，不中断整个导入
	Import(ctx context.Context, r io.Reader, filename, semester string) (*dto.ImportResponse, error)
}

type importService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{cfg: cfg, repo: repo, logger: logger}
}

func (s *importService) Import(ctx context.Context, r io.Reader, filename, semester string) (*dto.ImportResponse, error) {
	if strings.TrimSpace(semester) == "" {
		return nil, ErrSemesterMissing
	}

	rows, err := parseCourseFile(r, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	// 版式行不足属于"零行导入"，按结果计数上报而非拒绝请求
	var labelRow []string
	if len(rows) > labelRowIndex {
		labelRow = rows[labelRowIndex]
	}
	mapping := s.resolveMapping(labelRow)
	resolver := catalog.NewDeptResolver()

	result := &dto.ImportResponse{Failures: make([]dto.ImportFailure, 0)}
	for i := dataRowIndex; i < len(rows); i++ {
		course, skip, err := normalizeRow(rows[i], mapping, semester, resolver, s.cfg.Import.DefaultCapacity)
		if skip {
			result.Skipped++
			continue
		}
		if err != nil {
			result.Failures = append(result.Failures, dto.ImportFailure{Row: i + 1, Reason: err.Error()})
			continue
		}

		if err := s.repo.Course.Upsert(ctx, course); err != nil {
			s.logger.Warn("写入课程失败",
				zap.Int("row", i+1),
				zap.String("course_code", course.CourseCode),
				zap.Error(err))
			result.Failures = append(result.Failures, dto.ImportFailure{Row: i + 1, Reason: err.Error()})
			continue
		}
		result.Imported++
	}

	s.logger.Info("课表导入完成",
		zap.String("semester", semester),
		zap.String("file", filename),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Failures)))
	return result, nil
}

// parseCourseFile 按扩展名读取文件为二维表
func parseCourseFile(r io.Reader, filename string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xls":
		f, err := excelize.OpenReader(r)
		if err != nil {
			// excelize 只支持 OOXML，旧版 BIFF 格式的 .xls 无法解析
			if ext == ".xls" {
				return nil, fmt.Errorf("%w（旧版 .xls 请另存为 .xlsx）", ErrUnsupportedFile)
			}
			return nil, fmt.Errorf("读取 Excel 失败: %w", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyFile
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("读取工作表失败: %w", err)
		}
		return rows, nil

	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("读取 CSV 失败: %w", err)
		}
		return rows, nil

	default:
		return nil, ErrUnsupportedFile
	}
}

// resolveMapping 按栏位名称行解析各栏位下标。
// 名称行缺失或某栏位名称未出现时回退到固定下标并记录告警
func (s *importService) resolveMapping(labelRow []string) columnMapping {
	mapping := positionalMapping

	found := make(map[string]bool, len(columnLabels))
	for i, cell := range labelRow {
		label := strings.TrimSpace(cell)
		if set, ok := columnLabels[label]; ok && !found[label] {
			set(&mapping, i)
			found[label] = true
		}
	}

	if len(found) < len(columnLabels) {
		missing := make([]string, 0)
		for label := range columnLabels {
			if !found[label] {
				missing = append(missing, label)
			}
		}
		s.logger.Warn("部分栏位名称未识别，按固定下标读取",
			zap.Strings("missing", missing))
	}
	return mapping
}

// cellAt 越界时返回空串，Excel 尾部空单元格常被裁掉
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// normalizeNumericCell 把 "1.0" 这类浮点外观的整数还原为 "1"，
// 非数字内容原样返回
func normalizeNumericCell(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// isAllDigits 是否全为 ASCII 数字
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// normalizeRow 把一行原始单元格规整为课程记录。
// 课名为空的行视为留白行跳过；数字栏位解析失败时取默认值
func normalizeRow(
	row []string,
	m columnMapping,
	semester string,
	resolver *catalog.DeptResolver,
	defaultCapacity int,
) (*model.Course, bool, error) {
	courseName := cellAt(row, m.CourseName)
	if courseName == "" {
		return nil, true, nil
	}

	deptCode := normalizeNumericCell(cellAt(row, m.DeptCode))
	department := resolver.Resolve(deptCode)

	grade := normalizeNumericCell(cellAt(row, m.Grade))
	if !isAllDigits(grade) {
		grade = ""
	}

	credits := 0.0
	if v := cellAt(row, m.Credits); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			credits = f
		}
	}

	capacity := defaultCapacity
	if v := normalizeNumericCell(cellAt(row, m.Capacity)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			capacity = n
		}
	}

	// 星期栏可能带浮点外观（1.0）；非数字内容视为未排时间
	weekday := normalizeNumericCell(cellAt(row, m.Weekday))
	if !isAllDigits(weekday) {
		weekday = ""
	}

	period := cellAt(row, m.Period)

	course := &model.Course{
		Semester:      semester,
		Department:    department,
		Grade:         grade,
		CourseCode:    cellAt(row, m.CourseCode),
		CourseName:    courseName,
		CourseNameEn:  cellAt(row, m.CourseNameEn),
		Instructor:    cellAt(row, m.Instructor),
		Credits:       credits,
		CourseType:    cellAt(row, m.CourseType),
		Classroom:     cellAt(row, m.Classroom),
		Weekday:       weekday,
		Period:        period,
		DayTime:       catalog.FormatDayTime(weekday, period),
		Capacity:      capacity,
		ClassGroup:    cellAt(row, m.ClassGroup),
		Remarks:       cellAt(row, m.Remarks),
		CourseSummary: cellAt(row, m.CourseSummary),
	}
	return course, false, nil
}
