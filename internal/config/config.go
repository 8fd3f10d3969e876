package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/allanpk716/docx_standards/internal/domain"
)

// Toggle 规则开关。enabled: true 或 check: auto 视为启用，缺省即关闭
type Toggle struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Check   string `json:"check,omitempty" yaml:"check,omitempty"`
}

// IsEnabled 判断规则是否启用
func (t *Toggle) IsEnabled() bool {
	if t == nil {
		return false
	}
	if t.Enabled != nil {
		return *t.Enabled
	}
	return strings.EqualFold(t.Check, "auto")
}

// PatternReplacement 模式替换项
type PatternReplacement struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Correct string `json:"correct" yaml:"correct"`
}

// TermReplacement 术语替换项
type TermReplacement struct {
	Wrong   string `json:"wrong" yaml:"wrong"`
	Correct string `json:"correct" yaml:"correct"`
}

// StateAbbreviations 州名缩写规则
type StateAbbreviations struct {
	Toggle       `yaml:",inline"`
	Replacements []PatternReplacement `json:"replacements" yaml:"replacements"`
}

// Ampersands 与号规则
type Ampersands struct {
	Toggle      `yaml:",inline"`
	ReplaceWith string   `json:"replace_with" yaml:"replace_with"`
	Exceptions  []string `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
	Window      int      `json:"window,omitempty" yaml:"window,omitempty"`
}

// Punctuation 标点规则组
type Punctuation struct {
	NoAmpersands *Ampersands `json:"no_ampersands,omitempty" yaml:"no_ampersands,omitempty"`
	SingleSpaces *Toggle     `json:"single_spaces,omitempty" yaml:"single_spaces,omitempty"`
}

// Terminology 术语替换规则
type Terminology struct {
	Toggle       `yaml:",inline"`
	Replacements []TermReplacement `json:"replacements" yaml:"replacements"`
}

// 数字拼写的排除类别
const (
	ExcludePercentages  = "percentages"
	ExcludeCurrency     = "currency"
	ExcludeYears        = "years"
	ExcludePhoneNumbers = "phone_numbers"
)

var knownExclusions = map[string]bool{
	ExcludePercentages:  true,
	ExcludeCurrency:     true,
	ExcludeYears:        true,
	ExcludePhoneNumbers: true,
}

// SpellOut 个位数拼写配置
type SpellOut struct {
	Exclusions      []string `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`
	Window          int      `json:"window,omitempty" yaml:"window,omitempty"`
	CurrencySymbols []string `json:"currency_symbols,omitempty" yaml:"currency_symbols,omitempty"`
	YearMin         int      `json:"year_min,omitempty" yaml:"year_min,omitempty"`
	YearMax         int      `json:"year_max,omitempty" yaml:"year_max,omitempty"`
	PhoneMinDigits  int      `json:"phone_min_digits,omitempty" yaml:"phone_min_digits,omitempty"`
}

// Excludes 判断是否列出了某个排除类别
func (s *SpellOut) Excludes(kind string) bool {
	if s == nil {
		return false
	}
	for _, e := range s.Exclusions {
		if e == kind {
			return true
		}
	}
	return false
}

// AddCommas 千位分隔配置
type AddCommas struct {
	Threshold int `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// Numbers 数字规则
type Numbers struct {
	Toggle       `yaml:",inline"`
	SpellOut     *SpellOut  `json:"spell_out,omitempty" yaml:"spell_out,omitempty"`
	AddCommas    *AddCommas `json:"add_commas,omitempty" yaml:"add_commas,omitempty"`
	FormatPhones *Toggle    `json:"format_phones,omitempty" yaml:"format_phones,omitempty"`
}

// Trademark 商标符号规则
type Trademark struct {
	Toggle `yaml:",inline"`
	Term   string `json:"term,omitempty" yaml:"term,omitempty"`
	Mark   string `json:"mark,omitempty" yaml:"mark,omitempty"`
}

// Branding 品牌规则
type Branding struct {
	Toggle         `yaml:",inline"`
	MVPTerminology []PatternReplacement `json:"mvp_terminology,omitempty" yaml:"mvp_terminology,omitempty"`
	GiaPlatform    *Trademark           `json:"gia_platform,omitempty" yaml:"gia_platform,omitempty"`
}

// Headings 标题大小写规则
type Headings struct {
	Toggle          `yaml:",inline"`
	TitleCaseLevels []int `json:"title_case_levels,omitempty" yaml:"title_case_levels,omitempty"`
}

// CommunicationsStandards 全部写作规范规则
type CommunicationsStandards struct {
	StateAbbreviations *StateAbbreviations `json:"state_abbreviations,omitempty" yaml:"state_abbreviations,omitempty"`
	Punctuation        *Punctuation        `json:"punctuation,omitempty" yaml:"punctuation,omitempty"`
	DigitalTerms       *Terminology        `json:"digital_terms,omitempty" yaml:"digital_terms,omitempty"`
	Times              *Toggle             `json:"times,omitempty" yaml:"times,omitempty"`
	Numbers            *Numbers            `json:"numbers,omitempty" yaml:"numbers,omitempty"`
	HealthcareTerms    *Terminology        `json:"healthcare_terms,omitempty" yaml:"healthcare_terms,omitempty"`
	Branding           *Branding           `json:"branding,omitempty" yaml:"branding,omitempty"`
	Headings           *Headings           `json:"headings,omitempty" yaml:"headings,omitempty"`
}

// Targets 文档指标目标
type Targets struct {
	WordCount    int     `json:"word_count,omitempty" yaml:"word_count,omitempty"`
	ReadingLevel float64 `json:"reading_level,omitempty" yaml:"reading_level,omitempty"`
}

// ProcessingConfig 处理配置
type ProcessingConfig struct {
	SectionMarkers     domain.SectionMarkers `json:"section_markers" yaml:"section_markers"`
	DisclaimerMarkers  domain.SectionMarkers `json:"disclaimer_markers" yaml:"disclaimer_markers"`
	ProcessTables      bool                  `json:"process_tables" yaml:"process_tables"`
	AppendReport       *bool                 `json:"append_report,omitempty" yaml:"append_report,omitempty"`
	WriteAuditJSON     bool                  `json:"write_audit_json" yaml:"write_audit_json"`
	OutputSuffix       string                `json:"output_suffix" yaml:"output_suffix"`
	MaxConcurrentFiles int                   `json:"max_concurrent_files" yaml:"max_concurrent_files"`
	ExcludePatterns    []string              `json:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty"`
	Targets            Targets               `json:"targets" yaml:"targets"`
	Keywords           []string              `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// ShouldAppendReport 是否在文档末尾追加分析报告，缺省为是
func (p *ProcessingConfig) ShouldAppendReport() bool {
	if p == nil || p.AppendReport == nil {
		return true
	}
	return *p.AppendReport
}

// MaxKeywords 参与密度分析的关键词上限
const MaxKeywords = 5

// EffectiveKeywords 去掉空白项并截取前 MaxKeywords 个关键词
func (p *ProcessingConfig) EffectiveKeywords() []string {
	if p == nil {
		return nil
	}
	var keywords []string
	for _, k := range p.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// Config 表示完整的配置文件结构
type Config struct {
	ProjectName             string                   `json:"project_name" yaml:"project_name"`
	Version                 string                   `json:"version,omitempty" yaml:"version,omitempty"`
	Processing              *ProcessingConfig        `json:"processing,omitempty" yaml:"processing,omitempty"`
	CommunicationsStandards *CommunicationsStandards `json:"communications_standards,omitempty" yaml:"communications_standards,omitempty"`
}

// ConfigManager 配置管理接口
type ConfigManager interface {
	LoadConfig(filePath string) (*Config, error)
	ValidateConfig(config *Config) error
	SaveConfig(config *Config, filePath string) error
	GenerateTemplate(templateType string) (*Config, error)
}

// configManager 配置管理器实现
type configManager struct {
	backup bool
}

// Option 配置管理器选项
type Option func(*configManager)

// WithBackup 保存时为已存在的配置文件创建备份
func WithBackup(enabled bool) Option {
	return func(cm *configManager) {
		cm.backup = enabled
	}
}

// NewConfigManager 创建新的配置管理器
func NewConfigManager(opts ...Option) ConfigManager {
	cm := &configManager{backup: true}
	for _, opt := range opts {
		opt(cm)
	}
	return cm
}

// LoadConfig 从 JSON 或 YAML 文件加载配置，补齐默认值并验证
func (cm *configManager) LoadConfig(filePath string) (*Config, error) {
	if filePath == "" {
		return nil, fmt.Errorf("%w: 配置文件路径不能为空", domain.ErrInvalidConfig)
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: 配置文件不存在: %s", domain.ErrInvalidConfig, filePath)
	}

	format, err := formatOf(filePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: 解析配置文件失败: %w", domain.ErrInvalidConfig, err)
	}

	SetDefaults(config)

	if err := cm.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return config, nil
}

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func formatOf(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("%w: 配置文件必须是 JSON 或 YAML 格式，当前文件: %s",
			domain.ErrInvalidConfig, filepath.Ext(filePath))
	}
}

// decode 严格解析，未知字段视为错误
func decode(data []byte, format string) (*Config, error) {
	var config Config

	switch format {
	case formatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&config); err != nil {
			return nil, err
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	return &config, nil
}
