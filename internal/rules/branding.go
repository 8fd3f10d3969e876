package rules

import (
	"fmt"
	"regexp"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/matcher"
	"github.com/allanpk716/docx_standards/internal/textfmt"
)

// trademarkRule 在品牌词第一次出现处加商标符号；文中已有带符号的写法时不做任何修改
type trademarkRule struct {
	tm     domain.TextMatcher
	term   string
	mark   string
	bare   *regexp.Regexp
	marked *regexp.Regexp
}

func newTrademarkRule(tm domain.TextMatcher, cfg *config.Trademark) (*trademarkRule, error) {
	term, mark := cfg.Term, cfg.Mark
	if term == "" {
		term = config.DefaultTrademarkTerm
	}
	if mark == "" {
		mark = config.DefaultTrademarkMark
	}

	bare, err := matcher.WordPattern(term, false)
	if err != nil {
		return nil, fmt.Errorf("%w: branding.gia_platform.term: %w", domain.ErrInvalidConfig, err)
	}
	marked, err := matcher.WordPattern(term+mark, false)
	if err != nil {
		return nil, fmt.Errorf("%w: branding.gia_platform.mark: %w", domain.ErrInvalidConfig, err)
	}
	return &trademarkRule{tm: tm, term: term, mark: mark, bare: bare, marked: marked}, nil
}

func (r *trademarkRule) Name() string { return NameTrademark }

func (r *trademarkRule) Apply(text string, record Recorder) string {
	if r.marked.MatchString(text) {
		return text
	}

	matches := r.tm.FindMatches(text, r.bare)
	if len(matches) == 0 {
		return text
	}

	// 降序排列，最后一个是第一次出现
	first := matches[len(matches)-1]
	first.Replacement = first.Original + r.mark
	record(NameTrademark, first.Original, first.Replacement)
	return r.tm.ReplaceMatches(text, []domain.Match{first})
}

// headingRule 标题大小写：title_case_levels 中的级别用标题格式，其余级别用句子格式
type headingRule struct {
	levels []int
}

func (r *headingRule) convert(text string, level int) string {
	if level <= 0 {
		return text
	}
	if textfmt.ShouldBeTitleCase(level, r.levels) {
		return textfmt.ToTitleCase(text)
	}
	return textfmt.ToSentenceCase(text)
}
