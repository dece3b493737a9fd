package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sandytim520-svg/courseselection/config"
	"github.com/sandytim520-svg/courseselection/internal/catalog"
)

func setupTestImportService() (ImportService, *mockCourseRepo) {
	cfg := &config.Config{
		Import: config.ImportConfig{
			MaxFileSize:     300 << 20,
			DefaultCapacity: 60,
		},
	}
	repo, _, courseRepo, _ := newTestRepo()
	svc := NewImportService(cfg, repo, zap.NewNop())
	return svc, courseRepo
}

// importLabelRow 按固定下标摆放栏位名称，模拟教务导出的名称行
func importLabelRow() []string {
	row := make([]string, 25)
	row[3] = "科目代碼(新碼全碼)"
	row[4] = "系所代碼"
	row[7] = "年級"
	row[8] = "上課班組"
	row[9] = "科目中文名稱"
	row[10] = "科目英文名稱"
	row[11] = "授課教師姓名"
	row[12] = "上課人數"
	row[15] = "學分數"
	row[19] = "課別名稱"
	row[20] = "上課地點"
	row[21] = "上課星期"
	row[22] = "上課節次"
	row[23] = "課表備註"
	row[24] = "課程中文摘要"
	return row
}

// importDataRow 构造一行课表数据，空位用空串占住
func importDataRow(code, dept, grade, group, name, instructor, capacity, credits, ctype, room, weekday, period, remarks string) []string {
	row := make([]string, 25)
	row[3] = code
	row[4] = dept
	row[7] = grade
	row[8] = group
	row[9] = name
	row[11] = instructor
	row[12] = capacity
	row[15] = credits
	row[19] = ctype
	row[20] = room
	row[21] = weekday
	row[22] = period
	row[23] = remarks
	return row
}

// writeTestXLSX 把二维表写成内存中的 .xlsx 文件
func writeTestXLSX(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &cells); err != nil {
			t.Fatalf("写入测试 Excel 失败: %v", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		t.Fatalf("生成测试 Excel 失败: %v", err)
	}
	return buf
}

func testImportRows() [][]string {
	return [][]string{
		{"北護課程資料"}, {}, {}, {"第一表头行"},
		importLabelRow(),
		importDataRow("1A1412001", "11120", "1", "A", "護理學導論", "王老師", "50", "2", "必修", "G301", "1.0", "2,3", "全英語授課"),
		importDataRow("2B1422005", "22140", "2", "", "資料庫系統", "林老師", "", "3", "選修", "B204", "3", "6,7", ""),
	}
}

func TestImport_Success(t *testing.T) {
	svc, courseRepo := setupTestImportService()
	buf := writeTestXLSX(t, testImportRows())

	result, err := svc.Import(context.Background(), buf, "课表.xlsx", "1132")
	if err != nil {
		t.Fatalf("Import 应成功，但返回错误: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("期望导入 2 行，实际=%d", result.Imported)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("不应有失败行，实际=%v", result.Failures)
	}

	courses, _ := courseRepo.Search(context.Background(), &catalog.Facets{Keyword: "護理學導論"})
	if len(courses) != 1 {
		t.Fatalf("期望查到 1 门课，实际=%d", len(courses))
	}
	c := courses[0]
	if c.Semester != "1132" {
		t.Errorf("学期应取导入参数 1132，实际=%s", c.Semester)
	}
	if c.Department != "護理系" {
		t.Errorf("系所代碼 112 应解析为 護理系，实际=%s", c.Department)
	}
	if c.Weekday != "1" {
		t.Errorf("星期 1.0 应还原为 1，实际=%s", c.Weekday)
	}
	if c.DayTime != "週一 2-3" {
		t.Errorf("期望 DayTime=週一 2-3，实际=%s", c.DayTime)
	}
	if c.Capacity != 50 {
		t.Errorf("期望人数 50，实际=%d", c.Capacity)
	}
}

func TestImport_DefaultCapacity(t *testing.T) {
	svc, courseRepo := setupTestImportService()
	buf := writeTestXLSX(t, testImportRows())

	if _, err := svc.Import(context.Background(), buf, "课表.xlsx", "1132"); err != nil {
		t.Fatalf("Import 应成功，但返回错误: %v", err)
	}

	courses, _ := courseRepo.Search(context.Background(), &catalog.Facets{Keyword: "資料庫系統"})
	if len(courses) != 1 {
		t.Fatalf("期望查到 1 门课，实际=%d", len(courses))
	}
	if courses[0].Capacity != 60 {
		t.Errorf("人数缺失应取默认 60，实际=%d", courses[0].Capacity)
	}
}

func TestImport_Idempotent(t *testing.T) {
	svc, courseRepo := setupTestImportService()

	if _, err := svc.Import(context.Background(), writeTestXLSX(t, testImportRows()), "课表.xlsx", "1132"); err != nil {
		t.Fatalf("首次导入应成功: %v", err)
	}

	// 同一文件换了教师后重导，应原地更新而非重复插入
	rows := testImportRows()
	rows[5][11] = "陳老師"
	result, err := svc.Import(context.Background(), writeTestXLSX(t, rows), "课表.xlsx", "1132")
	if err != nil {
		t.Fatalf("重复导入应成功: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("期望写入 2 行，实际=%d", result.Imported)
	}

	all, _ := courseRepo.Search(context.Background(), &catalog.Facets{})
	if len(all) != 2 {
		t.Fatalf("重复导入后课程总数应仍为 2，实际=%d", len(all))
	}

	courses, _ := courseRepo.Search(context.Background(), &catalog.Facets{Keyword: "護理學導論"})
	if len(courses) != 1 || courses[0].Instructor != "陳老師" {
		t.Errorf("重导后教师应更新为 陳老師，实际=%v", courses)
	}
}

func TestImport_SkipsRowsWithoutCourseName(t *testing.T) {
	svc, _ := setupTestImportService()

	rows := testImportRows()
	rows = append(rows, importDataRow("3C0000001", "11120", "1", "", "", "", "", "", "", "", "", "", ""))
	result, err := svc.Import(context.Background(), writeTestXLSX(t, rows), "课表.xlsx", "1132")
	if err != nil {
		t.Fatalf("Import 应成功，但返回错误: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Errorf("期望 imported=2 skipped=1，实际 imported=%d skipped=%d", result.Imported, result.Skipped)
	}
}

func TestImport_CSV(t *testing.T) {
	svc, courseRepo := setupTestImportService()

	// CSV 解析会整行丢弃空行，版式占位行须留有内容
	var sb strings.Builder
	w := csvJoin
	sb.WriteString(w([]string{"北護課程資料"}) + "\n,\n,\n" + w([]string{"第一表头行"}) + "\n")
	sb.WriteString(w(importLabelRow()) + "\n")
	sb.WriteString(w(importDataRow("1A1412001", "11120", "1", "A", "護理學導論", "王老師", "50", "2", "必修", "G301", "1", "2,3", "")) + "\n")

	result, err := svc.Import(context.Background(), strings.NewReader(sb.String()), "课表.csv", "1132")
	if err != nil {
		t.Fatalf("CSV 导入应成功，但返回错误: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("期望导入 1 行，实际=%d", result.Imported)
	}

	courses, _ := courseRepo.Search(context.Background(), &catalog.Facets{})
	if len(courses) != 1 || courses[0].CourseName != "護理學導論" {
		t.Errorf("CSV 导入结果不符，实际=%v", courses)
	}
}

// csvJoin 把一行单元格编成 CSV 文本，含逗号的值加引号
func csvJoin(row []string) string {
	out := make([]string, len(row))
	for i, v := range row {
		if strings.Contains(v, ",") {
			v = `"` + v + `"`
		}
		out[i] = v
	}
	return strings.Join(out, ",")
}

func TestImport_SemesterRequired(t *testing.T) {
	svc, _ := setupTestImportService()
	buf := writeTestXLSX(t, testImportRows())

	if _, err := svc.Import(context.Background(), buf, "课表.xlsx", "  "); !errors.Is(err, ErrSemesterMissing) {
		t.Errorf("期望 ErrSemesterMissing，实际=%v", err)
	}
}

func TestImport_UnsupportedExtension(t *testing.T) {
	svc, _ := setupTestImportService()

	_, err := svc.Import(context.Background(), strings.NewReader("x"), "课表.pdf", "1132")
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("期望 ErrUnsupportedFile，实际=%v", err)
	}
}

func TestImport_LegacyXLS(t *testing.T) {
	svc, _ := setupTestImportService()

	// 旧版 BIFF 格式的 .xls 无法按 OOXML 解析，应归为格式不支持而非内部错误
	_, err := svc.Import(context.Background(), strings.NewReader("D0CF11E0 not a workbook"), "课表.xls", "1132")
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("期望 ErrUnsupportedFile，实际=%v", err)
	}
}

func TestImport_NoDataRows(t *testing.T) {
	svc, _ := setupTestImportService()

	// 版式完整但数据区为空的文件属于"导入 0 行"，不是请求错误
	rows := testImportRows()[:dataRowIndex]
	result, err := svc.Import(context.Background(), writeTestXLSX(t, rows), "课表.xlsx", "1132")
	if err != nil {
		t.Fatalf("无数据行的文件应按零行导入处理: %v", err)
	}
	if result.Imported != 0 || result.Skipped != 0 || len(result.Failures) != 0 {
		t.Errorf("期望全零结果，实际 imported=%d skipped=%d failures=%d",
			result.Imported, result.Skipped, len(result.Failures))
	}
}

func TestResolveMapping_ShiftedColumns(t *testing.T) {
	svc, _ := setupTestImportService()
	impl := svc.(*importService)

	// 名称行列序整体左移两格，应按名称而非固定下标解析
	labels := importLabelRow()[2:]
	mapping := impl.resolveMapping(labels)
	if mapping.CourseCode != 1 {
		t.Errorf("科目代碼应按名称行解析到下标 1，实际=%d", mapping.CourseCode)
	}
	if mapping.CourseName != 7 {
		t.Errorf("科目中文名稱应解析到下标 7，实际=%d", mapping.CourseName)
	}
}

func TestResolveMapping_FallbackToPositions(t *testing.T) {
	svc, _ := setupTestImportService()
	impl := svc.(*importService)

	mapping := impl.resolveMapping([]string{"完全", "不认识", "的名称"})
	if mapping != positionalMapping {
		t.Error("名称行无法识别时应回退到固定下标")
	}
}

func TestNormalizeRow_GradeDigitsOnly(t *testing.T) {
	resolver := catalog.NewDeptResolver()
	row := importDataRow("1A1412001", "11120", "一年級", "", "護理學導論", "", "", "", "", "", "", "", "")

	course, skip, err := normalizeRow(row, positionalMapping, "1132", resolver, 60)
	if err != nil || skip {
		t.Fatalf("该行应正常规整: skip=%v err=%v", skip, err)
	}
	if course.Grade != "" {
		t.Errorf("非数字年级应清空，实际=%q", course.Grade)
	}
}

func TestNormalizeRow_NonNumericWeekday(t *testing.T) {
	resolver := catalog.NewDeptResolver()
	row := importDataRow("1A1412001", "11120", "1", "", "護理學導論", "", "", "", "", "", "密集", "2,3", "")

	course, skip, err := normalizeRow(row, positionalMapping, "1132", resolver, 60)
	if err != nil || skip {
		t.Fatalf("该行应正常规整: skip=%v err=%v", skip, err)
	}
	if course.Weekday != "" || course.DayTime != "" {
		t.Errorf("非数字星期应清空且不合成上课时间，实际 weekday=%q day_time=%q", course.Weekday, course.DayTime)
	}
}
