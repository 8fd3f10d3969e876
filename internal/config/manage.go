package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SaveConfig 保存配置到文件，格式由扩展名决定
func (cm *configManager) SaveConfig(config *Config, filePath string) error {
	if config == nil {
		return fmt.Errorf("配置不能为空")
	}

	format, err := formatOf(filePath)
	if err != nil {
		return err
	}

	if err := cm.ValidateConfig(config); err != nil {
		return fmt.Errorf("配置验证失败: %w", err)
	}

	if cm.backup {
		if _, err := createBackup(filePath); err != nil {
			return fmt.Errorf("创建备份失败: %w", err)
		}
	}

	data, err := encode(config, format)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

func encode(config *Config, format string) ([]byte, error) {
	if format == formatJSON {
		return json.MarshalIndent(config, "", "  ")
	}
	return yaml.Marshal(config)
}

// createBackup 为已存在的配置文件创建带时间戳的备份，返回备份路径
func createBackup(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", nil
	}

	dir := filepath.Dir(filePath)
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	timestamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(dir, fmt.Sprintf("%s_backup_%s%s", name, timestamp, ext))

	src, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("读取原文件失败: %w", err)
	}

	if err := os.WriteFile(backupPath, src, 0644); err != nil {
		return "", fmt.Errorf("写入备份文件失败: %w", err)
	}

	return backupPath, nil
}

// 模板类型
const (
	TemplateBasic = "basic"
	TemplateFull  = "full"
)

// GenerateTemplate 生成配置模板
func (cm *configManager) GenerateTemplate(templateType string) (*Config, error) {
	var config *Config
	switch templateType {
	case TemplateBasic:
		config = generateBasicTemplate()
	case TemplateFull:
		config = generateFullTemplate()
	default:
		return nil, fmt.Errorf("未知的模板类型: %s", templateType)
	}

	SetDefaults(config)
	return config, nil
}

func enabled() Toggle {
	on := true
	return Toggle{Enabled: &on}
}

// generateBasicTemplate 生成基础模板：只启用不依赖术语表的规则
func generateBasicTemplate() *Config {
	return &Config{
		ProjectName: "Member Communications",
		Version:     DefaultVersion,
		Processing: &ProcessingConfig{
			ProcessTables:      false,
			OutputSuffix:       DefaultOutputSuffix,
			MaxConcurrentFiles: 1,
			ExcludePatterns:    []string{"~$*", "*.tmp"},
		},
		CommunicationsStandards: &CommunicationsStandards{
			Punctuation: &Punctuation{
				NoAmpersands: &Ampersands{
					Toggle:      enabled(),
					ReplaceWith: "and",
					Exceptions:  []string{"AT&T", "Q&A", "P&C"},
				},
				SingleSpaces: &Toggle{Check: "auto"},
			},
			Times: &Toggle{Check: "auto"},
			Numbers: &Numbers{
				Toggle: enabled(),
				SpellOut: &SpellOut{
					Exclusions: []string{ExcludePercentages, ExcludeCurrency, ExcludeYears, ExcludePhoneNumbers},
				},
			},
		},
	}
}

// generateFullTemplate 生成完整模板：启用全部规则并给出示例术语表
func generateFullTemplate() *Config {
	config := generateBasicTemplate()

	on := true
	config.Processing.ProcessTables = true
	config.Processing.WriteAuditJSON = true
	config.Processing.AppendReport = &on
	config.Processing.MaxConcurrentFiles = 4
	config.Processing.Targets = Targets{WordCount: 500, ReadingLevel: 8}
	config.Processing.Keywords = []string{"care", "coverage", "plan"}

	cs := config.CommunicationsStandards
	cs.Numbers.FormatPhones = &Toggle{Check: "auto"}
	cs.StateAbbreviations = &StateAbbreviations{
		Toggle: enabled(),
		Replacements: []PatternReplacement{
			{Pattern: `\bN\.Y\.`, Correct: "NY"},
			{Pattern: `\bVt\.`, Correct: "VT"},
			{Pattern: `\bMass\.`, Correct: "MA"},
			{Pattern: `\bConn\.`, Correct: "CT"},
			{Pattern: `\bPenn\.`, Correct: "PA"},
		},
	}
	cs.DigitalTerms = &Terminology{
		Toggle: enabled(),
		Replacements: []TermReplacement{
			{Wrong: "e-mail", Correct: "email"},
			{Wrong: "log in", Correct: "sign in"},
			{Wrong: "web site", Correct: "website"},
			{Wrong: "online portal", Correct: "member portal"},
		},
	}
	cs.HealthcareTerms = &Terminology{
		Toggle: enabled(),
		Replacements: []TermReplacement{
			{Wrong: "healthcare", Correct: "health care"},
			{Wrong: "doctor", Correct: "provider"},
			{Wrong: "insurance card", Correct: "member ID card"},
		},
	}
	cs.Branding = &Branding{
		Toggle: enabled(),
		MVPTerminology: []PatternReplacement{
			{Pattern: "MVP Health care", Correct: "MVP Health Care"},
			{Pattern: "MVP Health Plan", Correct: "MVP Health Care"},
		},
		GiaPlatform: &Trademark{Toggle: enabled()},
	}
	cs.Headings = &Headings{Toggle: enabled()}

	return config
}
