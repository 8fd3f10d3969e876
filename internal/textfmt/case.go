package textfmt

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// 标题格式中保持小写的虚词
var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "in": true, "of": true, "on": true, "or": true,
	"the": true, "to": true, "up": true, "via": true,
}

var headingStylePattern = regexp.MustCompile(`(?i)Heading ?(\d)`)

// DefaultTitleCaseLevels H1、H2 使用标题格式，H3 及以下使用句子格式
var DefaultTitleCaseLevels = []int{1, 2}

// ToTitleCase 转为标题格式，首词和末词总是大写，其余虚词小写。
// 整句不是全大写时，全大写的缩写词 (MVP、ID) 保持不变。
func ToTitleCase(text string) string {
	words := strings.Fields(text)
	caser := cases.Title(language.English)
	shouting := isShouting(text)

	for i, word := range words {
		switch {
		case keepAsIs(word, shouting):
		case i == 0 || i == len(words)-1:
			words[i] = caser.String(word)
		case smallWords[strings.ToLower(word)]:
			words[i] = strings.ToLower(word)
		default:
			words[i] = caser.String(word)
		}
	}

	return strings.Join(words, " ")
}

// ToSentenceCase 转为句子格式，仅首字母大写，缩写词规则同 ToTitleCase
func ToSentenceCase(text string) string {
	words := strings.Fields(text)
	shouting := isShouting(text)

	for i, word := range words {
		switch {
		case keepAsIs(word, shouting):
		case i == 0:
			words[i] = UpperFirst(strings.ToLower(word))
		default:
			words[i] = strings.ToLower(word)
		}
	}

	return strings.Join(words, " ")
}

// keepAsIs 含私有区字符的占位词与缩写词不做大小写转换
func keepAsIs(word string, shouting bool) bool {
	for _, r := range word {
		if unicode.Is(unicode.Co, r) {
			return true
		}
	}
	return !shouting && isAcronym(word)
}

func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}

// isShouting 整段文字的字母全部大写
func isShouting(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}

// UpperFirst 仅将首字母大写，其余保持不变
func UpperFirst(text string) string {
	if text == "" {
		return text
	}
	first, size := utf8.DecodeRuneInString(text)
	return strings.ToUpper(string(first)) + text[size:]
}

// StartsUpper 检查文本首字符是否为大写字母
func StartsUpper(text string) bool {
	if text == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(text)
	return strings.ToUpper(string(first)) == string(first) && strings.ToLower(string(first)) != string(first)
}

// HeadingLevel 从样式名提取标题级别 ("Heading 1"、"Heading2")，非标题返回 0
func HeadingLevel(styleName string) int {
	match := headingStylePattern.FindStringSubmatch(styleName)
	if match == nil {
		return 0
	}
	level, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return level
}

// ShouldBeTitleCase 判断标题级别是否使用标题格式
func ShouldBeTitleCase(level int, titleLevels []int) bool {
	if len(titleLevels) == 0 {
		titleLevels = DefaultTitleCaseLevels
	}
	for _, l := range titleLevels {
		if l == level {
			return true
		}
	}
	return false
}
