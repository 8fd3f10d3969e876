package domain

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidConfig 配置错误：缺少必填字段、正则无法编译等，在处理任何文档之前终止运行
	ErrInvalidConfig = errors.New("规则配置无效")
	// ErrUnsupportedDocument 文档无法加载或解析
	ErrUnsupportedDocument = errors.New("不支持的文档")
)

// Paragraph 文档段落，核心只读取整段文本并在变化时整体写回
type Paragraph interface {
	Text() string
	SetText(text string)
}

// HeadingParagraph 可以识别标题级别的段落
type HeadingParagraph interface {
	Paragraph
	// HeadingLevel 返回标题级别 (1-9)，正文返回 0
	HeadingLevel() int
}

// SectionMarkers 界定待校正区域的一对标记行
type SectionMarkers struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Document 文档容器协作者接口
type Document interface {
	SectionParagraphs(markers SectionMarkers) []Paragraph
	TableParagraphs() []Paragraph
	AppendReportSection(text string) error
	SaveAs(outputPath string) error
	Close() error
}

// TextMatcher 规则匹配器接口：先收集所有匹配，再从后往前替换
type TextMatcher interface {
	FindMatches(content string, pattern *regexp.Regexp) []Match
	ReplaceMatches(content string, matches []Match) string
}

// Match 表示一个匹配项
type Match struct {
	Original    string // 匹配到的原文
	Replacement string // 替换值
	StartPos    int    // 开始位置
	EndPos      int    // 结束位置
	Groups      []int  // 子匹配位置，与 regexp 的 submatch index 一致
}

// Correction 一条校正记录，创建后不可修改
type Correction struct {
	Rule      string `json:"rule"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Location  string `json:"location,omitempty"`
}

// RuleCount 按规则汇总的校正次数
type RuleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}
