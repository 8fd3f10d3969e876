package rules

import (
	"regexp"
	"strings"

	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/textfmt"
)

var (
	ampersandPattern   = regexp.MustCompile(`&`)
	doubleSpacePattern = regexp.MustCompile(`  +`)
)

// ampersandRule 将 & 替换为配置的词，附近出现例外短语 (AT&T) 时保留
type ampersandRule struct {
	tm          domain.TextMatcher
	replaceWith string
	exceptions  []string
	window      int
}

func (r *ampersandRule) Name() string { return NameAmpersand }

func (r *ampersandRule) Apply(text string, record Recorder) string {
	return replaceAll(r.tm, text, ampersandPattern, record, func(content string, m domain.Match) (string, string, bool) {
		context := window(content, m.StartPos, m.EndPos, r.window)
		for _, exception := range r.exceptions {
			if exception != "" && strings.Contains(context, exception) {
				return "", "", false
			}
		}

		// "R&D" 这类紧贴写法补空格
		replacement := r.replaceWith
		if m.StartPos > 0 && isAlnum(content[m.StartPos-1]) {
			replacement = " " + replacement
		}
		if m.EndPos < len(content) && isAlnum(content[m.EndPos]) {
			replacement += " "
		}
		return replacement, NameAmpersand, true
	})
}

// spacesRule 连续空格合并为一个，每处记录一次
type spacesRule struct {
	tm domain.TextMatcher
}

func (r *spacesRule) Name() string { return NameDoubleSpaces }

func (r *spacesRule) Apply(text string, record Recorder) string {
	if !strings.Contains(text, "  ") {
		return text
	}
	return replaceAll(r.tm, text, doubleSpacePattern, record, func(_ string, m domain.Match) (string, string, bool) {
		return textfmt.CleanDoubleSpaces(m.Original), NameDoubleSpaces, true
	})
}
