package catalog

import "strings"

// weekdayLabels 星期数字 → 中文标签（0 与 7 均为周日）
var weekdayLabels = map[string]string{
	"1": "週一",
	"2": "週二",
	"3": "週三",
	"4": "週四",
	"5": "週五",
	"6": "週六",
	"7": "週日",
	"0": "週日",
}

// WeekdayLabel 返回星期数字对应的中文标签，未知返回空串
func WeekdayLabel(weekday string) string {
	return weekdayLabels[weekday]
}

// FormatDayTime 由星期数字与节次列表合成展示字符串。
//
//	("1", "6,7") → "週一 6-7"
//	("1", "")    → "週一"
//	("", "6,7")  → ""（无星期时一律为空）
func FormatDayTime(weekday, period string) string {
	label := weekdayLabels[weekday]
	if label == "" {
		return ""
	}
	if period == "" {
		return label
	}
	return label + " " + strings.ReplaceAll(period, ",", "-")
}
