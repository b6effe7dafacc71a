package token

import (
	"strings"
	"testing"
)

func TestEstimateFloor(t *testing.T) {
	if got := Estimate(""); got != 1 {
		t.Errorf("Estimate(\"\") = %d, want 1", got)
	}
	if got := Estimate(" "); got != 1 {
		t.Errorf("Estimate(\" \") = %d, want 1", got)
	}
}

func TestEstimateWeights(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		// 2 个词段 * 1.3 = 2.6 -> 2
		{"ascii words", "hello world", 2},
		// 1 个词段 * 1.3 = 1.3 -> 1
		{"single word", "abc", 1},
		// 3 宽 * 1.5 + 1 词段 * 1.3 = 5.8 -> 5
		{"japanese runes", "あいう", 5},
		// 5 宽 * 1.5 + 1 词段 * 1.3 = 8.8 -> 8
		{"japanese word run", "こんにちは", 8},
		// 连续字母假名算一个词段: 2 宽 * 1.5 + 1.3 = 4.3 -> 4
		{"mixed", "あいabc", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateLongTextSurcharge(t *testing.T) {
	// 501 宽 * 1.5 + 1 词段 * 1.3 = 752.8 -> 752, 长文本附加 501/10 = 50
	text := strings.Repeat("あ", 501)
	if got, want := Estimate(text), 752+50; got != want {
		t.Errorf("Estimate(long) = %d, want %d", got, want)
	}

	// 正好 500 字不触发附加: 750 + 1.3 = 751.3 -> 751
	text = strings.Repeat("あ", 500)
	if got, want := Estimate(text), 751; got != want {
		t.Errorf("Estimate(500 runes) = %d, want %d", got, want)
	}
}

func TestEstimateMonotonic(t *testing.T) {
	prev := 0
	text := ""
	for i := 0; i < 100; i++ {
		text += "言葉と words "
		got := Estimate(text)
		if got < prev {
			t.Fatalf("estimate decreased at iteration %d: %d -> %d", i, prev, got)
		}
		prev = got
	}
}
