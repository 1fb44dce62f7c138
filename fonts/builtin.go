package fonts

import (
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
)

// Builtin 返回嵌入的 Latin Modern Roman 字体数据，覆盖立陶宛语所需的拉丁扩展字符。
func Builtin(bold bool) []byte {
	if bold {
		return lmroman10bold.TTF
	}
	return lmroman10regular.TTF
}
