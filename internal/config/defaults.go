package config

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"

	"github.com/allanpk716/docx_standards/internal/domain"
)

// 默认值
const (
	DefaultVersion            = "1.0"
	DefaultOutputSuffix       = "_processed"
	DefaultMaxConcurrentFiles = 1
	DefaultWindow             = 10
	DefaultYearMin            = 1900
	DefaultYearMax            = 2100
	DefaultPhoneMinDigits     = 7
	DefaultCommaThreshold     = 1000
	DefaultTrademarkTerm      = "Gia"
	DefaultTrademarkMark      = "®"
	DefaultStartMarker        = "start_page_copy"
	DefaultEndMarker          = "end_page_copy"
	DefaultDisclaimerStart    = "start_disclaimer"
	DefaultDisclaimerEnd      = "end_disclaimer"
	MaxConcurrentFilesLimit   = 50
)

// SetDefaults 补齐缺省字段，不会改变规则的启用状态
func SetDefaults(config *Config) {
	if config == nil {
		return
	}

	if config.Version == "" {
		config.Version = DefaultVersion
	}

	if config.Processing == nil {
		config.Processing = &ProcessingConfig{}
	}
	p := config.Processing
	if p.SectionMarkers.Start == "" {
		p.SectionMarkers.Start = DefaultStartMarker
	}
	if p.SectionMarkers.End == "" {
		p.SectionMarkers.End = DefaultEndMarker
	}
	if p.DisclaimerMarkers.Start == "" {
		p.DisclaimerMarkers.Start = DefaultDisclaimerStart
	}
	if p.DisclaimerMarkers.End == "" {
		p.DisclaimerMarkers.End = DefaultDisclaimerEnd
	}
	if p.OutputSuffix == "" {
		p.OutputSuffix = DefaultOutputSuffix
	}
	if p.MaxConcurrentFiles == 0 {
		p.MaxConcurrentFiles = DefaultMaxConcurrentFiles
	}

	if config.CommunicationsStandards == nil {
		config.CommunicationsStandards = &CommunicationsStandards{}
	}
	cs := config.CommunicationsStandards

	if cs.Punctuation != nil && cs.Punctuation.NoAmpersands != nil && cs.Punctuation.NoAmpersands.Window == 0 {
		cs.Punctuation.NoAmpersands.Window = DefaultWindow
	}

	if cs.Numbers != nil {
		if cs.Numbers.SpellOut == nil {
			cs.Numbers.SpellOut = &SpellOut{}
		}
		so := cs.Numbers.SpellOut
		if so.Window == 0 {
			so.Window = DefaultWindow
		}
		if len(so.CurrencySymbols) == 0 {
			so.CurrencySymbols = []string{"$"}
		}
		if so.YearMin == 0 {
			so.YearMin = DefaultYearMin
		}
		if so.YearMax == 0 {
			so.YearMax = DefaultYearMax
		}
		if so.PhoneMinDigits == 0 {
			so.PhoneMinDigits = DefaultPhoneMinDigits
		}
		if cs.Numbers.AddCommas == nil {
			cs.Numbers.AddCommas = &AddCommas{}
		}
		if cs.Numbers.AddCommas.Threshold == 0 {
			cs.Numbers.AddCommas.Threshold = DefaultCommaThreshold
		}
	}

	if cs.Branding != nil && cs.Branding.GiaPlatform != nil {
		if cs.Branding.GiaPlatform.Term == "" {
			cs.Branding.GiaPlatform.Term = DefaultTrademarkTerm
		}
		if cs.Branding.GiaPlatform.Mark == "" {
			cs.Branding.GiaPlatform.Mark = DefaultTrademarkMark
		}
	}

	if cs.Headings != nil && len(cs.Headings.TitleCaseLevels) == 0 {
		cs.Headings.TitleCaseLevels = []int{1, 2}
	}
}

// ValidateConfig 验证配置的有效性，收集全部问题后一次返回
func (cm *configManager) ValidateConfig(config *Config) error {
	return Validate(config)
}

// Validate 验证配置，返回的错误可用 errors.Is 匹配 domain.ErrInvalidConfig，
// 具体问题可用 multierr.Errors 展开
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: 配置不能为空", domain.ErrInvalidConfig)
	}

	var errs error
	if strings.TrimSpace(config.ProjectName) == "" {
		errs = multierr.Append(errs, fmt.Errorf("项目名称不能为空"))
	}
	errs = multierr.Append(errs, validateProcessing(config.Processing))
	errs = multierr.Append(errs, validateStandards(config.CommunicationsStandards))

	if errs != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errs)
	}
	return nil
}

func validateProcessing(p *ProcessingConfig) error {
	if p == nil {
		return nil
	}

	var errs error
	if p.SectionMarkers.Start == "" || p.SectionMarkers.End == "" {
		errs = multierr.Append(errs, fmt.Errorf("processing.section_markers 的 start 与 end 不能为空"))
	}
	if p.MaxConcurrentFiles < 1 || p.MaxConcurrentFiles > MaxConcurrentFilesLimit {
		errs = multierr.Append(errs, fmt.Errorf("processing.max_concurrent_files 必须在 1-%d 之间，当前: %d",
			MaxConcurrentFilesLimit, p.MaxConcurrentFiles))
	}
	if strings.ContainsAny(p.OutputSuffix, `/\`) {
		errs = multierr.Append(errs, fmt.Errorf("processing.output_suffix 不能包含路径分隔符: %s", p.OutputSuffix))
	}
	if p.Targets.WordCount < 0 {
		errs = multierr.Append(errs, fmt.Errorf("processing.targets.word_count 不能为负数"))
	}
	if p.Targets.ReadingLevel < 0 {
		errs = multierr.Append(errs, fmt.Errorf("processing.targets.reading_level 不能为负数"))
	}
	return errs
}

func validateStandards(cs *CommunicationsStandards) error {
	if cs == nil {
		return nil
	}

	var errs error

	if sa := cs.StateAbbreviations; sa != nil {
		for i, r := range sa.Replacements {
			field := fmt.Sprintf("state_abbreviations.replacements[%d]", i)
			errs = multierr.Append(errs, requireKey(field, "pattern", r.Pattern))
			errs = multierr.Append(errs, requireKey(field, "correct", r.Correct))
			if r.Pattern != "" {
				if _, err := regexp.Compile(r.Pattern); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("%s.pattern 不是有效的正则表达式: %w", field, err))
				}
			}
		}
	}

	if pu := cs.Punctuation; pu != nil && pu.NoAmpersands != nil {
		amp := pu.NoAmpersands
		if amp.IsEnabled() {
			errs = multierr.Append(errs, requireKey("punctuation.no_ampersands", "replace_with", amp.ReplaceWith))
		}
		if amp.Window < 0 {
			errs = multierr.Append(errs, fmt.Errorf("punctuation.no_ampersands.window 不能为负数"))
		}
	}

	errs = multierr.Append(errs, validateTerms("digital_terms", cs.DigitalTerms))
	errs = multierr.Append(errs, validateTerms("healthcare_terms", cs.HealthcareTerms))

	if n := cs.Numbers; n != nil {
		if so := n.SpellOut; so != nil {
			for _, e := range so.Exclusions {
				if !knownExclusions[e] {
					errs = multierr.Append(errs, fmt.Errorf("numbers.spell_out.exclusions 含未知类别: %s", e))
				}
			}
			if so.Window < 0 {
				errs = multierr.Append(errs, fmt.Errorf("numbers.spell_out.window 不能为负数"))
			}
			if so.YearMin >= so.YearMax {
				errs = multierr.Append(errs, fmt.Errorf("numbers.spell_out.year_min 必须小于 year_max"))
			}
		}
		if n.AddCommas != nil && n.AddCommas.Threshold < 0 {
			errs = multierr.Append(errs, fmt.Errorf("numbers.add_commas.threshold 不能为负数"))
		}
	}

	if b := cs.Branding; b != nil {
		for i, r := range b.MVPTerminology {
			field := fmt.Sprintf("branding.mvp_terminology[%d]", i)
			errs = multierr.Append(errs, requireKey(field, "pattern", r.Pattern))
			errs = multierr.Append(errs, requireKey(field, "correct", r.Correct))
		}
		if g := b.GiaPlatform; g != nil && g.IsEnabled() {
			errs = multierr.Append(errs, requireKey("branding.gia_platform", "term", g.Term))
			errs = multierr.Append(errs, requireKey("branding.gia_platform", "mark", g.Mark))
		}
	}

	if h := cs.Headings; h != nil {
		for _, level := range h.TitleCaseLevels {
			if level < 1 || level > 9 {
				errs = multierr.Append(errs, fmt.Errorf("headings.title_case_levels 含无效级别: %d", level))
			}
		}
	}

	return errs
}

func validateTerms(name string, t *Terminology) error {
	if t == nil {
		return nil
	}
	var errs error
	for i, r := range t.Replacements {
		field := fmt.Sprintf("%s.replacements[%d]", name, i)
		errs = multierr.Append(errs, requireKey(field, "wrong", r.Wrong))
		errs = multierr.Append(errs, requireKey(field, "correct", r.Correct))
	}
	return errs
}

func requireKey(field, key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s 缺少 %s", field, key)
	}
	return nil
}
