package textfmt

import (
	"regexp"
	"strings"
)

var (
	nonDigitPattern = regexp.MustCompile(`\D`)
	linkPattern     = regexp.MustCompile(`~([^~]+)~\s*\[([^\]]+)\]`)
	urlPrefix       = regexp.MustCompile(`^(https?://|www\.)`)
)

// Link 文中以 "~锚文本~ [url]" 标注的链接
type Link struct {
	Anchor string `json:"anchor"`
	URL    string `json:"url"`
}

// FormatPhoneNumber 按规范格式化电话号码：10 位纯数字，或 1- 开头的 11 位免费电话
func FormatPhoneNumber(phone string) string {
	digits := nonDigitPattern.ReplaceAllString(phone, "")

	switch {
	case len(digits) == 10:
		return digits
	case len(digits) == 11 && digits[0] == '1':
		return "1-" + digits[1:]
	}
	return phone
}

// ExtractLinks 提取 "~anchor~ [url]" 格式的链接
func ExtractLinks(text string) []Link {
	var links []Link
	for _, m := range linkPattern.FindAllStringSubmatch(text, -1) {
		links = append(links, Link{
			Anchor: strings.TrimSpace(m[1]),
			URL:    strings.TrimSpace(m[2]),
		})
	}
	return links
}

// IsURL 判断文本是否以 http(s):// 或 www. 开头
func IsURL(text string) bool {
	return urlPrefix.MatchString(strings.ToLower(text))
}
