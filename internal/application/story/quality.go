package story

import (
	"strings"
	"unicode/utf8"
)

// 读者留存相关的引子词，命中一种加 5 分
var engagingWords = []string{
	"しかし", "だが", "突然", "ついに", "果たして",
	"なぜなら", "そして", "もし", "驚くべきことに",
}

// 热门题材关键词，命中任意一个加 15 分
var popularKeywords = []string{"魔法", "異世界", "ドラゴン", "冒険"}

// Score 对梗概做启发式质量打分，返回 0-100
// 纯函数，不访问会话与外部服务
func Score(synopsis string) int {
	score := 0

	length := utf8.RuneCountInString(synopsis)
	switch {
	case length >= 200 && length <= 400:
		score += 30
	case length >= 150 && length <= 500:
		score += 20
	default:
		score += 10
	}

	for _, w := range engagingWords {
		if strings.Contains(synopsis, w) {
			score += 5
		}
	}

	if strings.Contains(synopsis, "?") || strings.Contains(synopsis, "！") {
		score += 10
	}

	for _, kw := range popularKeywords {
		if strings.Contains(synopsis, kw) {
			score += 15
			break
		}
	}

	sentences := 0
	for _, s := range strings.Split(synopsis, "。") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences >= 3 && sentences <= 6 {
		score += 20
	}

	if score > 100 {
		score = 100
	}
	return score
}
