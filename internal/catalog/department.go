package catalog

import (
	"fmt"
	"sort"
)

// ── 系所代码解析 ────────────────────────────────────────────
//
// 职责：将教务导出档中的系所代码解析为系所显示名称。
//
// 设计决策：
//   - 代码在不同年度的导出档之间并不稳定，解析采用多级回退，
//     保证任何一行都能归类、导入永不因此失败
//   - 静态对照表覆盖已知代码；同一次导入中出现过的代码进入
//     run 级 learned 表；再退而按 4 位前缀匹配（处理末位流水号
//     变体）；最后按首位数字归入学院
//   - Resolver 非并发安全，按单次导入创建一个实例
// ─────────────────────────────────────────────────────────────

// deptTable 静态系所代码对照表（覆盖已知教务代码）
var deptTable = map[string]string{
	// 护理学院 (11xxx)
	"11120": "護理系",
	"11140": "護理系",
	"11161": "護理助產及婦女健康系",
	"11162": "護理助產及婦女健康系",
	"11163": "護理助產及婦女健康系",
	"11164": "護理助產及婦女健康系",
	"11165": "護理助產及婦女健康系",
	"11166": "護理助產及婦女健康系",
	"11167": "護理助產及婦女健康系",
	"11168": "護理助產及婦女健康系",
	"11169": "中西醫結合護理研究所",
	"11170": "中西醫結合護理研究所",
	"11190": "護理系",
	"11230": "護理系",
	"11330": "護理系",
	"11461": "高齡健康照護系",
	"11462": "高齡健康照護系",
	"11463": "高齡健康照護系",
	"11464": "高齡健康照護系",
	"11465": "高齡健康照護系",
	"11466": "高齡健康照護系",
	"11467": "高齡健康照護系",
	"11468": "高齡健康照護系",
	"11860": "醫護教育暨數位學習系",
	"11870": "醫護教育暨數位學習系",

	// 跨系所或学院 (1Cxxx, 1Dxxx, 13xxx)
	"1C120": "護理學院(不分系)",
	"1C160": "護理學院(不分系)",
	"1C330": "護理學院(不分系)",
	"1C860": "護理學院(不分系)",
	"1D110": "護理學院(不分系)",
	"1D120": "護理學院(不分系)",
	"1D160": "護理學院(不分系)",
	"13140": "護理學院(不分系)",
	"13160": "護理學院(不分系)",

	// 健康科技学院 (2xxxx)
	"20160": "健康科技學院(不分系)",
	"21120": "健康事業管理系",
	"21140": "健康事業管理系",
	"21160": "健康事業管理系",
	"21330": "健康事業管理系",
	"21460": "健康事業管理系",
	"22140": "資訊管理系",
	"22160": "資訊管理系",
	"23140": "長期照護系",
	"23160": "長期照護系",
	"23460": "長期照護系",
	"24120": "休閒產業與健康促進系",
	"24150": "休閒產業與健康促進系",
	"24160": "休閒產業與健康促進系",
	"25140": "語言治療與聽力學系",
	"25161": "語言治療與聽力學系",
	"25162": "語言治療與聽力學系",
	"26860": "健康科技學院(不分系)",

	// 人类发展与健康学院 (3xxxx)
	"30860": "人類發展與健康學院(不分系)",
	"31120": "嬰幼兒保育系",
	"31140": "嬰幼兒保育系",
	"31160": "嬰幼兒保育系",
	"31180": "嬰幼兒保育系",
	"32140": "運動保健系",
	"32160": "運動保健系",
	"32460": "運動保健系",
	"32860": "高齡健康暨運動保健技優專班",
	"33140": "生死與健康心理諮商系",
	"33161": "生死與健康心理諮商系",
	"33162": "生死與健康心理諮商系",

	// 研究所 (4xxxx)
	"41140": "中西醫結合護理研究所(舊)",
	"42140": "國際健康科技碩士學位學程",
	"43160": "人工智慧與健康大數據研究所",

	// 通识与体育 (9xxxx)
	"90100": "通識教育中心",
	"90200": "體育室",
}

// deptTableKeys 静态表键的有序视图。前缀回退按此顺序扫描，
// 同一前缀命中多个条目时总是取字典序最小的键，保证同一代码
// 在任何进程中的解析结果一致
var deptTableKeys = func() []string {
	keys := make([]string, 0, len(deptTable))
	for k := range deptTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// collegeByDigit 按代码首位归类学院（末级回退前的最后一层）
var collegeByDigit = map[byte]string{
	'1': "護理學院",
	'2': "健康科技學院",
	'3': "人類發展與健康學院",
	'4': "研究所課程",
}

// DeptResolver 系所代码解析器，按单次导入持有 learned 表
type DeptResolver struct {
	learned map[string]string
}

// NewDeptResolver 创建解析器（learned 表为空）
func NewDeptResolver() *DeptResolver {
	return &DeptResolver{learned: make(map[string]string)}
}

// Resolve 解析系所代码为系所名称。全函数，任何输入都有结果。
//
// 回退顺序：静态表 → learned 表 → 4 位前缀 → 首位数字学院 → 其他(code)。
// 前四层命中的结果写入 learned 表，同档后续相同代码直接命中。
func (r *DeptResolver) Resolve(code string) string {
	if code == "" {
		return ""
	}

	if name, ok := deptTable[code]; ok {
		r.learned[code] = name
		return name
	}
	if name, ok := r.learned[code]; ok {
		return name
	}

	// 前缀匹配：处理同系所仅末位不同的代码变体
	if len(code) >= 4 {
		prefix := code[:4]
		for _, k := range deptTableKeys {
			if len(k) >= 4 && k[:4] == prefix {
				name := deptTable[k]
				r.learned[code] = name
				return name
			}
		}
	}

	// 按首位数字归入学院
	if college, ok := collegeByDigit[code[0]]; ok {
		r.learned[code] = college
		return college
	}

	// 未归类代码不写 learned，后续若出现权威行仍可改进
	return fmt.Sprintf("其他(%s)", code)
}

// Learn 记录一条 run 级代码→名称映射（来自档内已出现的权威行）
func (r *DeptResolver) Learn(code, name string) {
	if code != "" && name != "" {
		r.learned[code] = name
	}
}
