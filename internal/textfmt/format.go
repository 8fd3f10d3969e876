// Package textfmt 提供规则使用的无状态文本格式化函数。
// 所有函数对任意输入都有结果，对已符合规范的输入不做改变。
package textfmt

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	zeroMinutesPattern = regexp.MustCompile(`:00\b`)
	meridiemPattern    = regexp.MustCompile(`(?i)\s*([ap])\.?m\b\.?`)
	rangeSplitPattern  = regexp.MustCompile(`(?i)\s*[-–—]\s*|\s+to\s+`)
	multiSpacePattern  = regexp.MustCompile(`  +`)
)

// EnDash 时间范围连接符
const EnDash = "–"

// FormatTime 格式化单个时间："3:00 PM" -> "3 pm"，"9:30 a.m." -> "9:30 am"
func FormatTime(timeStr string) string {
	// 先规范 am/pm，"3:00PM" 才能在 :00 后形成词边界
	timeStr = meridiemPattern.ReplaceAllStringFunc(timeStr, func(m string) string {
		marker := strings.ReplaceAll(strings.TrimSpace(m), ".", "")
		return " " + strings.ToLower(marker)
	})
	timeStr = zeroMinutesPattern.ReplaceAllString(timeStr, "")
	return strings.TrimSpace(timeStr)
}

// FormatTimeRange 格式化时间范围："8:00 AM - 5:00 PM" -> "8 am–5 pm"
// 无法恰好拆成两段时原样返回，不做猜测。
func FormatTimeRange(timeRange string) string {
	parts := rangeSplitPattern.Split(timeRange, -1)
	if len(parts) != 2 {
		return timeRange
	}

	start := FormatTime(parts[0])
	end := FormatTime(parts[1])
	if start == "" || end == "" {
		return timeRange
	}
	return start + EnDash + end
}

var numberWords = map[int]string{
	1: "one", 2: "two", 3: "three", 4: "four", 5: "five",
	6: "six", 7: "seven", 8: "eight", 9: "nine",
}

// SpellOutNumber 将 1-9 转为英文单词，其他数字原样输出
func SpellOutNumber(num int) string {
	if word, ok := numberWords[num]; ok {
		return word
	}
	return strconv.Itoa(num)
}

// AddCommasToNumber 为 1000 及以上的整数添加千位分隔符，无法解析时原样返回
func AddCommasToNumber(numStr string) string {
	num, err := strconv.ParseInt(strings.ReplaceAll(numStr, ",", ""), 10, 64)
	if err != nil {
		return numStr
	}
	if num < 1000 {
		return numStr
	}
	return message.NewPrinter(language.English).Sprintf("%d", num)
}

// CleanDoubleSpaces 将连续多个空格合并为一个
func CleanDoubleSpaces(text string) string {
	return multiSpacePattern.ReplaceAllString(text, " ")
}
