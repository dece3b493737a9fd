package catalog

import "strings"

// ── 多维组合查询 ────────────────────────────────────────────
//
// Facets 描述一次课程查询的全部筛选维度。所有维度可选、可任意
// 组合：维度之间取 AND，多值维度内部取 OR。Matches 是与存储层
// 无关的纯判定，数据库查询按同一批对照表生成等价条件。
// ─────────────────────────────────────────────────────────────

// Facets 课程查询条件
type Facets struct {
	Keyword    string // 课名/教师/教室 模糊匹配
	Semester   string // 精确
	Department string // 精确
	Grade      string // 精确
	CourseType string // 精确
	Weekday    string // 逗号分隔星期集合，逐项精确相等
	Period     string // 逗号分隔节次集合，逐项整项成员判定
	Degree     string // 逗号分隔学制名称集合
	Category   string // 逗号分隔内容分类标签集合
}

// IsEmpty 是否未启用任何筛选
func (f *Facets) IsEmpty() bool {
	return f.Keyword == "" && f.Semester == "" && f.Department == "" &&
		f.Grade == "" && f.CourseType == "" && f.Weekday == "" &&
		f.Period == "" && f.Degree == "" && f.Category == ""
}

// SplitList 拆分逗号分隔的多值维度，丢弃空项
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PeriodListContains 判断节次 p 是否为逗号列表 list 的整项成员。
// 两侧各补一个逗号后做包含判定，避免 "1" 误中 "13"。
func PeriodListContains(list, p string) bool {
	return strings.Contains(","+list+",", ","+p+",")
}

// CourseFields Matches 判定所需的课程字段子集
type CourseFields struct {
	Semester   string
	Department string
	Grade      string
	CourseType string
	CourseName string
	Instructor string
	Classroom  string
	CourseCode string
	Weekday    string
	Period     string
	Remarks    string
}

// Matches 判断一门课是否命中全部已启用维度
func (f *Facets) Matches(c *CourseFields) bool {
	if f.Keyword != "" {
		if !strings.Contains(c.CourseName, f.Keyword) &&
			!strings.Contains(c.Instructor, f.Keyword) &&
			!strings.Contains(c.Classroom, f.Keyword) {
			return false
		}
	}
	if f.Semester != "" && c.Semester != f.Semester {
		return false
	}
	if f.Department != "" && c.Department != f.Department {
		return false
	}
	if f.Grade != "" && c.Grade != f.Grade {
		return false
	}
	if f.CourseType != "" && c.CourseType != f.CourseType {
		return false
	}

	if f.Weekday != "" {
		hit := false
		for _, w := range SplitList(f.Weekday) {
			if c.Weekday == w {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if f.Period != "" {
		hit := false
		for _, p := range SplitList(f.Period) {
			if PeriodListContains(c.Period, p) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	// 未知学制/分类名称不产生条件：整组均未知时该维度视为未启用
	if f.Degree != "" {
		if known := knownDegrees(SplitList(f.Degree)); len(known) > 0 {
			if !MatchesDegree(c.CourseCode, known) {
				return false
			}
		}
	}
	if f.Category != "" {
		if known := knownCategories(SplitList(f.Category)); len(known) > 0 {
			if !MatchesCategory(c.Remarks, known) {
				return false
			}
		}
	}

	return true
}

// knownDegrees 过滤出对照表中存在的学制名称
func knownDegrees(degrees []string) []string {
	var out []string
	for _, d := range degrees {
		if len(degreeCodes[d]) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// knownCategories 过滤出对照表中存在的分类标签
func knownCategories(tags []string) []string {
	var out []string
	for _, t := range tags {
		if len(categoryTriggers[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}
