package catalog

// ── 学制分类 ────────────────────────────────────────────────
//
// 学制并不直接存储，而是从科目代码第 3-4 位（1 起算）的两位子串
// 推断。多个子串可指向同一学制；无法识别的子串不归类（仅在学制
// 筛选启用时被排除，不影响无筛选查询）。
// ─────────────────────────────────────────────────────────────

// degreeCodes 学制名称 → 科目代码第 3-4 位子串集合
//
// 二技(三年) 与 二技(二年) 在教务编码上共用 33/23 两个子串，
// 任一名称的筛选都命中两者。
var degreeCodes = map[string][]string{
	"四技":      {"14"},
	"二技":      {"12"},
	"二技(三年)":  {"33", "23"},
	"二技(二年)":  {"33", "23"},
	"碩士班":     {"16", "46", "86"},
	"博士班":     {"17", "87"},
	"學士後系":    {"19"},
	"學士後多元專長": {"15"},
	"學士後學位學程": {"18"},
}

// degreeBySubstr 子串 → 规范学制名称（展示用反查表）
var degreeBySubstr = map[string]string{
	"14": "四技",
	"12": "二技",
	"33": "二技(三年)",
	"23": "二技(二年)",
	"16": "碩士班",
	"46": "碩士班",
	"86": "碩士班",
	"17": "博士班",
	"87": "博士班",
	"19": "學士後系",
	"15": "學士後多元專長",
	"18": "學士後學位學程",
}

// degreeSubstr 取科目代码第 3-4 位子串，长度不足返回空串
func degreeSubstr(courseCode string) string {
	if len(courseCode) < 4 {
		return ""
	}
	return courseCode[2:4]
}

// ClassifyDegree 按科目代码推断学制名称，无法识别返回空串
func ClassifyDegree(courseCode string) string {
	return degreeBySubstr[degreeSubstr(courseCode)]
}

// DegreeCodeSubstrings 返回学制名称对应的代码子串集合。
// 未知学制名称返回 nil（筛选时静默忽略，不产生任何条件）。
func DegreeCodeSubstrings(degree string) []string {
	return degreeCodes[degree]
}

// MatchesDegree 判断科目代码是否命中任一请求学制
func MatchesDegree(courseCode string, degrees []string) bool {
	sub := degreeSubstr(courseCode)
	if sub == "" {
		return false
	}
	for _, d := range degrees {
		for _, s := range degreeCodes[d] {
			if s == sub {
				return true
			}
		}
	}
	return false
}
