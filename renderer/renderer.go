package renderer

import (
	"io"

	"github.com/ByLCY/statement/document"
	"github.com/ByLCY/statement/fonts"
	"github.com/ByLCY/statement/layout"
)

// Surface 是可以持久化的绘制面：排版引擎通过 layout.Surface 绘制，
// 调用方在结束后通过 WriteTo 或 Save 输出 PDF。
type Surface interface {
	layout.Surface
	WriteTo(w io.Writer) (int64, error)
	Save(path string) error
}

// Options 是各个后端共用的构造参数。
type Options struct {
	Width   float64 // mm
	Height  float64 // mm
	FontDir string  // Family 中相对路径的根目录
	Family  fonts.Family
	Theme   fonts.Theme
	Meta    document.Meta
}

// OptionsFromPlan 用编译结果与选定的字体族构造 Options。
func OptionsFromPlan(plan *document.Plan, family fonts.Family, fontDir string) Options {
	return Options{
		Width:   plan.PageWidth,
		Height:  plan.PageHeight,
		FontDir: fontDir,
		Family:  family,
		Theme:   plan.Theme,
		Meta:    plan.Meta,
	}
}
