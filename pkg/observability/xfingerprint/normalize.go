package xfingerprint

import "regexp"

// maxMessageLength 规范化消息的最大长度（按字符计，硬截断，无省略号）
const maxMessageLength = 100

// 消息规范化的替换模式
//
// 三个替换按固定顺序依次作用于当前字符串：UUID → 数字 → 引号串。
// UUID 含连字符且不是纯数字，先替换 UUID 可避免数字替换把它拆碎；
// 替换出的占位符不含数字，后续的数字替换不会吞掉它们。
var (
	uuidPattern   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	numberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	quotedPattern = regexp.MustCompile(`"[^"]*"`)
)

// Normalize 将自由文本错误消息重写为稳定模式
//
// 依次替换：
//   - UUID 形态的子串（8-4-4-4-12 十六进制分组）→ {uuid}
//   - 独立的整数/小数 → {number}
//   - 双引号括起的子串 → {string}
//
// 结果截断到 100 个字符。纯函数，空串原样返回。
//
// 规范化的目的是让只差实例数据的消息归并为同一分组键：
// "Account 123 not found" 与 "Account 456 not found" 都归一为
// "Account {number} not found"。
func Normalize(message string) string {
	if message == "" {
		return ""
	}

	s := uuidPattern.ReplaceAllString(message, "{uuid}")
	s = numberPattern.ReplaceAllString(s, "{number}")
	s = quotedPattern.ReplaceAllString(s, "{string}")

	if runes := []rune(s); len(runes) > maxMessageLength {
		s = string(runes[:maxMessageLength])
	}
	return s
}
