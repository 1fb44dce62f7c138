package fpdfrenderer

import (
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// toCP1252 把文本转为核心字体使用的 cp1252 字节串。
// 输入先做 NFC 归一化，cp1252 没有的字母去掉附加符号（ė→e，ų→u），
// 无法依附的组合符号丢弃，仍无法表示的字符写成 '?'。
func toCP1252(s string) string {
	s = norm.NFC.String(s)
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
			continue
		}
		for _, base := range stripMarks(string(r)) {
			if b, ok := charmap.Windows1252.EncodeRune(base); ok {
				out = append(out, b)
			} else {
				out = append(out, '?')
			}
		}
	}
	return string(out)
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	res, _, err := transform.String(t, s)
	if err != nil {
		return "?"
	}
	return res
}
