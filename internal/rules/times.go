package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/textfmt"
)

var (
	timeRangePattern  = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*[ap]\.?m\.?\s*(?:[-–—]|\bto\b)\s*\d{1,2}(?::\d{2})?\s*[ap]\.?m\b\.?`)
	singleTimePattern = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*[ap]\.?m\b\.?`)
)

const (
	closingQuotes   = "\"'”’»"
	closingBrackets = ")]}"
)

// timeRule 先处理时间范围，再处理单个时间
type timeRule struct {
	tm domain.TextMatcher
}

func (r *timeRule) Name() string { return NameTimeFormat }

func (r *timeRule) Apply(text string, record Recorder) string {
	text = replaceAll(r.tm, text, timeRangePattern, record, func(content string, m domain.Match) (string, string, bool) {
		return keepSentencePeriod(content, m, textfmt.FormatTimeRange(m.Original)), NameTimeRange, true
	})
	return replaceAll(r.tm, text, singleTimePattern, record, func(content string, m domain.Match) (string, string, bool) {
		return keepSentencePeriod(content, m, textfmt.FormatTime(m.Original)), NameTimeFormat, true
	})
}

// keepSentencePeriod 匹配吞掉的结尾句点若同时是句末标点，则补回。
// 句点后紧跟闭引号时总是补回；紧跟闭括号时看括号之后是否为句末或大写开头。
func keepSentencePeriod(content string, m domain.Match, formatted string) string {
	if !strings.HasSuffix(m.Original, ".") || strings.HasSuffix(formatted, ".") {
		return formatted
	}
	rest := strings.TrimLeft(content[m.EndPos:], " \t")
	if r, _ := utf8.DecodeRuneInString(rest); strings.ContainsRune(closingQuotes, r) {
		return formatted + "."
	}
	rest = strings.TrimLeft(strings.TrimLeft(rest, closingBrackets), " \t")
	if rest == "" || textfmt.StartsUpper(rest) {
		return formatted + "."
	}
	return formatted
}
