package metrics

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/summarize"
)

// CountSyllables 英文单词的音节数，由 prose 的音节规则计算。
// 先去掉标点与数字，纯数字或符号返回 0，其余至少为 1。
func CountSyllables(word string) int {
	w := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, word)
	if w == "" {
		return 0
	}
	return max(summarize.Syllables(w), 1)
}
