package rules

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/correction"
	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/matcher"
	"github.com/allanpk716/docx_standards/internal/shield"
)

// Engine 编译后的规则链
type Engine struct {
	rules    []Rule
	headings *headingRule
}

// NewEngine 按固定顺序编译已启用的规则，未启用或缺省的规则不参与执行。
// 配置项缺失或正则无法编译时返回 domain.ErrInvalidConfig。
func NewEngine(cs *config.CommunicationsStandards) (*Engine, error) {
	e := &Engine{}
	if cs == nil {
		return e, nil
	}

	tm := matcher.NewTextMatcher()
	var errs error
	add := func(r Rule, err error) {
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		e.rules = append(e.rules, r)
	}

	if sa := cs.StateAbbreviations; sa != nil && sa.IsEnabled() {
		add(newPatternRule(tm, NameStateAbbreviation, "state_abbreviations.replacements", sa.Replacements))
	}

	if p := cs.Punctuation; p != nil {
		if amp := p.NoAmpersands; amp != nil && amp.IsEnabled() {
			if amp.ReplaceWith == "" {
				add(nil, fmt.Errorf("%w: punctuation.no_ampersands 缺少 replace_with", domain.ErrInvalidConfig))
			} else {
				radius := amp.Window
				if radius == 0 {
					radius = config.DefaultWindow
				}
				add(&ampersandRule{tm: tm, replaceWith: amp.ReplaceWith, exceptions: amp.Exceptions, window: radius}, nil)
			}
		}
		if p.SingleSpaces.IsEnabled() {
			add(&spacesRule{tm: tm}, nil)
		}
	}

	if dt := cs.DigitalTerms; dt != nil && dt.IsEnabled() {
		add(newTermRule(tm, NameDigitalTerms, "digital_terms.replacements", termPairs(dt.Replacements)))
	}

	if cs.Times.IsEnabled() {
		add(&timeRule{tm: tm}, nil)
	}

	if n := cs.Numbers; n != nil && n.IsEnabled() {
		add(newNumberRule(tm, n), nil)
	}

	if ht := cs.HealthcareTerms; ht != nil && ht.IsEnabled() {
		add(newTermRule(tm, NameHealthcareTerms, "healthcare_terms.replacements", termPairs(ht.Replacements)))
	}

	if b := cs.Branding; b != nil && b.IsEnabled() {
		if len(b.MVPTerminology) > 0 {
			add(newTermRule(tm, NameBranding, "branding.mvp_terminology", brandPairs(b.MVPTerminology)))
		}
		if g := b.GiaPlatform; g != nil && g.IsEnabled() {
			add(newTrademarkRule(tm, g))
		}
	}

	if h := cs.Headings; h != nil && h.IsEnabled() {
		e.headings = &headingRule{levels: h.TitleCaseLevels}
	}

	if errs != nil {
		return nil, errs
	}
	return e, nil
}

// Names 已启用规则的名称，按执行顺序
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.rules)+1)
	for _, r := range e.rules {
		names = append(names, r.Name())
	}
	if e.headings != nil {
		names = append(names, NameHeadingCase)
	}
	return names
}

// Apply 校正一个正文段落，见 ApplyHeading
func (e *Engine) Apply(text, location string, log *correction.Log) string {
	return e.ApplyHeading(text, 0, location, log)
}

// ApplyHeading 校正一个段落：保护 → 规则链 → 标题大小写 → 恢复。
// level 为 0 表示正文。空白段落原样返回。
// 恢复后仍残留占位符时放弃本段的全部修改，原文返回且不记录。
func (e *Engine) ApplyHeading(text string, level int, location string, log *correction.Log) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	var pending []domain.Correction
	record := func(rule, original, corrected string) {
		pending = append(pending, domain.Correction{
			Rule:      rule,
			Original:  original,
			Corrected: corrected,
			Location:  location,
		})
	}

	protected, placeholders := shield.Protect(text)

	corrected := protected
	for _, r := range e.rules {
		corrected = r.Apply(corrected, record)
	}

	if e.headings != nil && level > 0 {
		cased := e.headings.convert(corrected, level)
		if cased != corrected {
			record(NameHeadingCase, shield.Restore(corrected, placeholders), shield.Restore(cased, placeholders))
			corrected = cased
		}
	}

	restored := shield.Restore(corrected, placeholders)
	if shield.HasTokens(restored) && !shield.HasTokens(text) {
		return text
	}
	if log != nil {
		log.Append(pending...)
	}
	return restored
}
