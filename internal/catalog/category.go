package catalog

import "strings"

// ── 课程内容分类 ────────────────────────────────────────────
//
// 分类标签不直接存储，从课表备注（remarks）中按固定触发子串
// 侦测。每个标签独立判定，一门课可带零到多个标签；"EMI全英語授課"
// 与 "全英語授課" 是两个独立标签，可同时命中。
// 侦测为区分大小写的子串包含，保持与教务备注原文一致。
// ─────────────────────────────────────────────────────────────

// categoryTriggers 标签名称 → 触发子串集合（任一命中即带标签）
var categoryTriggers = map[string][]string{
	"跨校":       {"跨校"},
	"跨域課程":     {"跨域"},
	"全英語授課":    {"全英語", "全英文"},
	"EMI全英語授課": {"EMI"},
	"同步遠距教學":   {"同步遠距"},
	"非同步遠距教學":  {"非同步遠距"},
	"混合式遠距教學":  {"混合式遠距"},
	"遠距教學課程":   {"遠距教學"},
	"遠距輔助課程":   {"遠距輔助"},
}

// categoryTagOrder 标签的稳定输出顺序
var categoryTagOrder = []string{
	"跨校", "跨域課程", "全英語授課", "EMI全英語授課",
	"同步遠距教學", "非同步遠距教學", "混合式遠距教學",
	"遠距教學課程", "遠距輔助課程",
}

// hasCategoryTag 判断备注是否命中指定标签
func hasCategoryTag(remarks, tag string) bool {
	for _, trigger := range categoryTriggers[tag] {
		if strings.Contains(remarks, trigger) {
			return true
		}
	}
	return false
}

// ClassifyCategories 扫描备注文本，返回命中的标签集合（稳定顺序）
func ClassifyCategories(remarks string) []string {
	if remarks == "" {
		return nil
	}
	var tags []string
	for _, tag := range categoryTagOrder {
		if hasCategoryTag(remarks, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CategoryTriggerSubstrings 返回标签对应的触发子串集合。
// 未知标签返回 nil（筛选时静默忽略）。
func CategoryTriggerSubstrings(tag string) []string {
	return categoryTriggers[tag]
}

// MatchesCategory 判断备注是否命中任一请求标签
func MatchesCategory(remarks string, tags []string) bool {
	if remarks == "" {
		return false
	}
	for _, tag := range tags {
		if hasCategoryTag(remarks, tag) {
			return true
		}
	}
	return false
}
