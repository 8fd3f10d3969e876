package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/domain"
	"github.com/allanpk716/docx_standards/internal/textfmt"
)

var (
	integerPattern  = regexp.MustCompile(`\b\d+\b`)
	phonePattern    = regexp.MustCompile(`(?:\b1[\s.-])?(?:\(\d{3}\)\s?|\b\d{3}[\s.-])?\b\d{3}[.-]\d{4}\b`)
	tollFreePattern = regexp.MustCompile(`\b1-\d{10}\b`)
	meridiemPattern = regexp.MustCompile(`(?i)^\s*[ap]\.?m\b`)
)

// numberRule 1-9 拼写为单词，达到阈值的整数加千位分隔符，其余不变。
// 启用 format_phones 时先统一电话号码格式，电话号码内的数字随后不再改写。
type numberRule struct {
	tm           domain.TextMatcher
	spellOut     config.SpellOut
	threshold    int64
	formatPhones bool
}

func newNumberRule(tm domain.TextMatcher, cfg *config.Numbers) *numberRule {
	r := &numberRule{tm: tm, threshold: config.DefaultCommaThreshold}
	if cfg.SpellOut != nil {
		r.spellOut = *cfg.SpellOut
	}
	if r.spellOut.Window == 0 {
		r.spellOut.Window = config.DefaultWindow
	}
	if r.spellOut.PhoneMinDigits == 0 {
		r.spellOut.PhoneMinDigits = config.DefaultPhoneMinDigits
	}
	if r.spellOut.YearMin == 0 && r.spellOut.YearMax == 0 {
		r.spellOut.YearMin, r.spellOut.YearMax = config.DefaultYearMin, config.DefaultYearMax
	}
	if len(r.spellOut.CurrencySymbols) == 0 {
		r.spellOut.CurrencySymbols = []string{"$"}
	}
	if cfg.AddCommas != nil && cfg.AddCommas.Threshold > 0 {
		r.threshold = int64(cfg.AddCommas.Threshold)
	}
	r.formatPhones = cfg.FormatPhones.IsEnabled()
	return r
}

func (r *numberRule) Name() string { return NameNumberSpelling }

func (r *numberRule) Apply(text string, record Recorder) string {
	if r.formatPhones {
		text = replaceAll(r.tm, text, phonePattern, record, func(_ string, m domain.Match) (string, string, bool) {
			return textfmt.FormatPhoneNumber(m.Original), NamePhoneFormat, true
		})
	}

	var phones [][]int
	if r.skipPhones() {
		phones = append(phonePattern.FindAllStringIndex(text, -1), tollFreePattern.FindAllStringIndex(text, -1)...)
	}

	return replaceAll(r.tm, text, integerPattern, record, func(content string, m domain.Match) (string, string, bool) {
		if r.untouchable(content, m) {
			return "", "", false
		}
		num, err := strconv.ParseInt(m.Original, 10, 64)
		if err != nil || r.excluded(content, m, num, phones) {
			return "", "", false
		}

		switch {
		case num >= 1 && num <= 9:
			return textfmt.SpellOutNumber(int(num)), NameNumberSpelling, true
		case num >= r.threshold:
			return textfmt.AddCommasToNumber(m.Original), NameNumberCommas, true
		}
		return "", "", false
	})
}

// untouchable 属于更大数字字面量 (1,500、3.5、0123) 或钟点 (3:30、3 pm) 的数字
func (r *numberRule) untouchable(content string, m domain.Match) bool {
	start, end := m.StartPos, m.EndPos

	if len(m.Original) > 1 && m.Original[0] == '0' {
		return true
	}
	if start >= 2 && isDigit(content[start-2]) && strings.ContainsRune(",.:", rune(content[start-1])) {
		return true
	}
	if end+1 < len(content) && strings.ContainsRune(",.:", rune(content[end])) && isDigit(content[end+1]) {
		return true
	}
	return meridiemPattern.MatchString(content[end:])
}

// excluded 只检查配置中列出的排除类别
func (r *numberRule) excluded(content string, m domain.Match, num int64, phones [][]int) bool {
	so := &r.spellOut
	context := window(content, m.StartPos, m.EndPos, so.Window)

	if so.Excludes(config.ExcludePercentages) &&
		(strings.Contains(context, "%") || strings.Contains(strings.ToLower(context), "percent")) {
		return true
	}
	if so.Excludes(config.ExcludeCurrency) {
		for _, symbol := range so.CurrencySymbols {
			if symbol != "" && strings.Contains(context, symbol) {
				return true
			}
		}
	}
	if so.Excludes(config.ExcludeYears) && len(m.Original) == 4 &&
		num > int64(so.YearMin) && num < int64(so.YearMax) {
		return true
	}
	if r.skipPhones() {
		if len(m.Original) >= so.PhoneMinDigits {
			return true
		}
		for _, span := range phones {
			if m.StartPos >= span[0] && m.EndPos <= span[1] {
				return true
			}
		}
	}
	return false
}

func (r *numberRule) skipPhones() bool {
	return r.formatPhones || r.spellOut.Excludes(config.ExcludePhoneNumbers)
}
