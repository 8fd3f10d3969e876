package matcher

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/allanpk716/docx_standards/internal/domain"
)

// textMatcher 规则匹配器实现
type textMatcher struct{}

// NewTextMatcher 创建新的规则匹配器
func NewTextMatcher() domain.TextMatcher {
	return &textMatcher{}
}

// FindMatches 在内容中查找模式的所有不重叠匹配，结果按位置从后往前排列
func (tm *textMatcher) FindMatches(content string, pattern *regexp.Regexp) []domain.Match {
	if pattern == nil || content == "" {
		return nil
	}

	indexes := pattern.FindAllStringSubmatchIndex(content, -1)
	matches := make([]domain.Match, 0, len(indexes))
	for _, index := range indexes {
		matches = append(matches, domain.Match{
			Original: content[index[0]:index[1]],
			StartPos: index[0],
			EndPos:   index[1],
			Groups:   index,
		})
	}

	// 按位置排序，从后往前替换避免位置偏移
	sortDescending(matches)
	return matches
}

// ReplaceMatches 根据匹配结果替换内容
// 所有位置都基于未修改的原文，替换从最大的开始位置折叠到最小的开始位置，
// 前面尚未处理的位置不会因后面的长度变化而失效。
func (tm *textMatcher) ReplaceMatches(content string, matches []domain.Match) string {
	if len(matches) == 0 {
		return content
	}

	ordered := make([]domain.Match, len(matches))
	copy(ordered, matches)
	sortDescending(ordered)

	result := content
	limit := len(content)
	for _, match := range ordered {
		// 越界或与已替换区间重叠的匹配直接跳过
		if match.StartPos < 0 || match.EndPos > limit || match.StartPos > match.EndPos {
			continue
		}
		result = result[:match.StartPos] + match.Replacement + result[match.EndPos:]
		limit = match.StartPos
	}

	return result
}

// Expand 按 regexp 模板语法 ($1, ${name}) 展开替换值
func Expand(pattern *regexp.Regexp, template, content string, match domain.Match) string {
	return string(pattern.ExpandString(nil, template, content, match.Groups))
}

func sortDescending(matches []domain.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartPos > matches[j].StartPos
	})
}

var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*regexp.Regexp)
)

// WordPattern 返回整词匹配的正则，term 按字面量处理。
// 只在 term 首尾是单词字符时加 \b，"Gia®" 这类以符号结尾的词同样可以匹配。
func WordPattern(term string, ignoreCase bool) (*regexp.Regexp, error) {
	if term == "" {
		return nil, fmt.Errorf("匹配词不能为空")
	}

	expr := regexp.QuoteMeta(term)
	if isWordByte(term[0]) {
		expr = `\b` + expr
	}
	if isWordByte(term[len(term)-1]) {
		expr += `\b`
	}
	if ignoreCase {
		expr = `(?i)` + expr
	}

	patternMu.Lock()
	defer patternMu.Unlock()

	if pattern, exists := patternCache[expr]; exists {
		return pattern, nil
	}
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache[expr] = pattern
	return pattern, nil
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// CountMatches 统计模式在内容中的匹配次数
func CountMatches(content string, pattern *regexp.Regexp) int {
	if pattern == nil {
		return 0
	}
	return len(pattern.FindAllStringIndex(content, -1))
}
