// Package token 提供启发式 Token 数估算
package token

import (
	"regexp"
	"unicode/utf8"
)

// 词段匹配包含 Unicode 字母数字，日文假名汉字连续段也算一个词段
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Estimate 估算文本的 Token 数
// 宽字符（码点 >127，日文汉字假名等）按 1.5 权重，
// 词段按 1.3 权重，超过 500 字的长文本追加 len/10。
// 结果仅保证随文本长度单调不减且 >=1，不等同任何真实分词器
func Estimate(text string) int {
	wide := 0
	for _, r := range text {
		if r > 127 {
			wide++
		}
	}
	words := len(wordPattern.FindAllString(text, -1))

	estimated := int(float64(wide)*1.5 + float64(words)*1.3)

	runes := utf8.RuneCountInString(text)
	if runes > 500 {
		estimated += runes / 10
	}

	if estimated < 1 {
		estimated = 1
	}
	return estimated
}
