// Package rules 按固定顺序对单个段落执行写作规范规则。
// 规则在启动时由配置编译，之后只读，可被多个文档并发共享。
package rules

import (
	"regexp"
	"unicode/utf8"

	"github.com/allanpk716/docx_standards/internal/domain"
)

// 校正记录中的规则名
const (
	NameStateAbbreviation = "State Abbreviation"
	NameAmpersand         = "Ampersand"
	NameDoubleSpaces      = "Double Spaces"
	NameDigitalTerms      = "Digital Terminology"
	NameTimeRange         = "Time Range"
	NameTimeFormat        = "Time Format"
	NameNumberSpelling    = "Number Spelling"
	NameNumberCommas      = "Number Commas"
	NamePhoneFormat       = "Phone Format"
	NameHealthcareTerms   = "Healthcare Terminology"
	NameBranding          = "MVP Branding"
	NameTrademark         = "Trademark Symbol"
	NameHeadingCase       = "Heading Case"
)

// Recorder 接收一条校正
type Recorder func(rule, original, corrected string)

// Rule 单条规则，对文本做纯函数变换，通过 record 报告每处修改
type Rule interface {
	Name() string
	Apply(text string, record Recorder) string
}

// replacer 为一个匹配计算替换值与记录用的规则名，ok 为 false 时跳过
type replacer func(text string, m domain.Match) (replacement, rule string, ok bool)

// replaceAll 收集全部匹配后从后往前替换，校正按文中出现顺序记录
func replaceAll(tm domain.TextMatcher, text string, pattern *regexp.Regexp, record Recorder, fn replacer) string {
	matches := tm.FindMatches(text, pattern)
	if len(matches) == 0 {
		return text
	}

	kept := make([]domain.Match, 0, len(matches))
	rules := make([]string, 0, len(matches))
	for _, m := range matches {
		replacement, rule, ok := fn(text, m)
		if !ok || replacement == m.Original {
			continue
		}
		m.Replacement = replacement
		kept = append(kept, m)
		rules = append(rules, rule)
	}
	if len(kept) == 0 {
		return text
	}

	// kept 按位置降序
	for i := len(kept) - 1; i >= 0; i-- {
		record(rules[i], kept[i].Original, kept[i].Replacement)
	}
	return tm.ReplaceMatches(text, kept)
}

// window 取匹配前后各 radius 字节的上下文，边界对齐到字符
func window(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}

	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}
	return text[from:to]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return isDigit(b) || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
