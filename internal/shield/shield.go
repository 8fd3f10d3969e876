// Package shield 在规则执行前用占位符替换不可改写的内容（URL、[...]、<...>），执行后再原样恢复。
package shield

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind 受保护内容的类别
type Kind string

const (
	KindURL     Kind = "URL"
	KindBracket Kind = "BRACKET"
	KindAngle   Kind = "ANGLE"
)

// 占位符首尾使用私有区字符，正文中不会出现；内部用下划线连接，
// 整个占位符对 \b 来说是一个完整的词，整词规则无法命中其中任何片段。
const (
	tokenOpen  = "\uE000"
	tokenClose = "\uE001"
)

var (
	urlPattern     = regexp.MustCompile(`https?://[^\s]+|www\.[^\s]+`)
	bracketPattern = regexp.MustCompile(`\[[^\]]+\]`)
	anglePattern   = regexp.MustCompile(`<[^>]+>`)
)

// Placeholder 一个占位符及其替换掉的原文
type Placeholder struct {
	Token    string
	Original string
	Kind     Kind
}

// Map 单个段落内的占位符表，按生成顺序保存
type Map struct {
	entries []Placeholder
}

// Len 返回占位符数量
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries 返回占位符列表的副本
func (m *Map) Entries() []Placeholder {
	if m == nil {
		return nil
	}
	out := make([]Placeholder, len(m.entries))
	copy(out, m.entries)
	return out
}

// Protect 依次保护 URL、方括号内容、尖括号内容
// 三类共用一个计数器；方括号和尖括号在已保护的文本上匹配，
// 因此方括号内的 URL 先变成 URL 占位符，再被外层方括号占位符包住。
func Protect(text string) (string, *Map) {
	m := &Map{}
	counter := 0

	mint := func(kind Kind, original string) string {
		for {
			token := fmt.Sprintf("%sSHIELD_%s_%d_%s", tokenOpen, kind, counter, tokenClose)
			counter++
			if !strings.Contains(text, token) {
				m.entries = append(m.entries, Placeholder{Token: token, Original: original, Kind: kind})
				return token
			}
		}
	}

	protected := text
	for _, step := range []struct {
		kind    Kind
		pattern *regexp.Regexp
	}{
		{KindURL, urlPattern},
		{KindBracket, bracketPattern},
		{KindAngle, anglePattern},
	} {
		kind := step.kind
		protected = step.pattern.ReplaceAllStringFunc(protected, func(match string) string {
			return mint(kind, match)
		})
	}

	return protected, m
}

// Restore 用原文替换全部占位符
// 按生成顺序的逆序恢复：外层占位符先展开，其中包含的内层占位符随后被替换。
func Restore(text string, m *Map) string {
	if m.Len() == 0 {
		return text
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		entry := m.entries[i]
		text = strings.ReplaceAll(text, entry.Token, entry.Original)
	}
	return text
}

// HasTokens 检查文本中是否残留占位符
func HasTokens(text string) bool {
	return strings.Contains(text, tokenOpen)
}
