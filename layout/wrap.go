package layout

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Wrap 以贪心策略把文本折成不超过 width 个字符的行。
// 连续空白折叠为单个空格；超长单词不拆分，单独成行。
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, len(words)/4+1)
	var b strings.Builder
	n := 0
	for _, w := range words {
		wl := charLen(w)
		// 恰好等于 width 时仍放入当前行
		if n > 0 && n+1+wl > width {
			lines = append(lines, b.String())
			b.Reset()
			n = 0
		}
		if n > 0 {
			b.WriteByte(' ')
			n++
		}
		b.WriteString(w)
		n += wl
	}
	return append(lines, b.String())
}

// SplitHardBreaks 按显式换行拆分，保留空段。\r\n 视为一个换行。
func SplitHardBreaks(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// Lines 返回块按其模式拆出的行。
func Lines(block TextBlock, width int) []string {
	if block.Mode == ModeVerbatim {
		return SplitHardBreaks(block.Text)
	}
	return Wrap(block.Text, width)
}

// charLen 以 NFC 码点数计宽，组合字符与预组合字符等宽。
func charLen(s string) int {
	if norm.NFC.IsNormalString(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(norm.NFC.String(s))
}
