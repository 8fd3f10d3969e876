package rules

import (
	"fmt"
	"regexp"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/matcher"
	"github.com/allanpk716/docx_standards/internal/textfmt"
)

type compiledPattern struct {
	pattern  *regexp.Regexp
	template string
}

// patternRule 正则替换，区分大小写，替换值支持 $1 引用
type patternRule struct {
	tm      domain.TextMatcher
	name    string
	entries []compiledPattern
}

func newPatternRule(tm domain.TextMatcher, name, field string, items []config.PatternReplacement) (*patternRule, error) {
	r := &patternRule{tm: tm, name: name}
	for i, item := range items {
		if item.Pattern == "" || item.Correct == "" {
			return nil, fmt.Errorf("%w: %s[%d] 缺少 pattern 或 correct", domain.ErrInvalidConfig, field, i)
		}
		pattern, err := regexp.Compile(item.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d] 正则无法编译: %w", domain.ErrInvalidConfig, field, i, err)
		}
		r.entries = append(r.entries, compiledPattern{pattern: pattern, template: item.Correct})
	}
	return r, nil
}

func (r *patternRule) Name() string { return r.name }

func (r *patternRule) Apply(text string, record Recorder) string {
	for _, entry := range r.entries {
		entry := entry
		text = replaceAll(r.tm, text, entry.pattern, record, func(content string, m domain.Match) (string, string, bool) {
			return matcher.Expand(entry.pattern, entry.template, content, m), r.name, true
		})
	}
	return text
}

type compiledTerm struct {
	pattern *regexp.Regexp
	correct string
}

// termRule 整词、忽略大小写的术语替换；原文首字母大写时替换值首字母也大写
type termRule struct {
	tm      domain.TextMatcher
	name    string
	entries []compiledTerm
}

func newTermRule(tm domain.TextMatcher, name, field string, pairs [][2]string) (*termRule, error) {
	r := &termRule{tm: tm, name: name}
	for i, pair := range pairs {
		wrong, correct := pair[0], pair[1]
		if wrong == "" || correct == "" {
			return nil, fmt.Errorf("%w: %s[%d] 缺少替换词", domain.ErrInvalidConfig, field, i)
		}
		pattern, err := matcher.WordPattern(wrong, true)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", domain.ErrInvalidConfig, field, i, err)
		}
		r.entries = append(r.entries, compiledTerm{pattern: pattern, correct: correct})
	}
	return r, nil
}

func termPairs(items []config.TermReplacement) [][2]string {
	pairs := make([][2]string, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, [2]string{item.Wrong, item.Correct})
	}
	return pairs
}

func brandPairs(items []config.PatternReplacement) [][2]string {
	pairs := make([][2]string, 0, len(items))
	for _, item := range items {
		pairs = append(pairs, [2]string{item.Pattern, item.Correct})
	}
	return pairs
}

func (r *termRule) Name() string { return r.name }

func (r *termRule) Apply(text string, record Recorder) string {
	for _, entry := range r.entries {
		correct := entry.correct
		text = replaceAll(r.tm, text, entry.pattern, record, func(_ string, m domain.Match) (string, string, bool) {
			if textfmt.StartsUpper(m.Original) {
				return textfmt.UpperFirst(correct), r.name, true
			}
			return correct, r.name, true
		})
	}
	return text
}
