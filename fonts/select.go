package fonts

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoFont 表示偏好链中没有任何可用字体。
var ErrNoFont = errors.New("fonts: 偏好链中没有可用字体")

// Family 描述一个字体族。Regular/Bold 为相对字体目录的文件路径；
// Builtin 表示由绘制面自行提供的兜底字体，总是可用。
type Family struct {
	Name    string `json:"name"`
	Regular string `json:"regular,omitempty"`
	Bold    string `json:"bold,omitempty"`
	Builtin bool   `json:"builtin,omitempty"`
}

// DefaultChain 依次尝试 DejaVu Sans、Arial，最后回退到内建字体。
var DefaultChain = []Family{
	{Name: "DejaVuSans", Regular: "DejaVuSans.ttf", Bold: "DejaVuSans-Bold.ttf"},
	{Name: "Arial", Regular: "arial.ttf", Bold: "arialbd.ttf"},
	{Name: "Helvetica", Builtin: true},
}

// Select 返回 preference 中第一个出现在 available 里的字体族。
// 内建字体不需要出现在 available 中。
func Select(available map[string]bool, preference []Family) (Family, error) {
	for _, f := range preference {
		if f.Builtin || available[f.Name] {
			return f, nil
		}
	}
	return Family{}, ErrNoFont
}

// Available 探测 dir 下哪些字体族的文件齐全。Bold 为空时只要求 Regular。
func Available(dir string, preference []Family) map[string]bool {
	out := make(map[string]bool, len(preference))
	for _, f := range preference {
		if f.Builtin {
			out[f.Name] = true
			continue
		}
		if f.Regular == "" {
			continue
		}
		ok := fileExists(f.Path(dir, false))
		if ok && f.Bold != "" {
			ok = fileExists(f.Path(dir, true))
		}
		if ok {
			out[f.Name] = true
		}
	}
	return out
}

// Path 返回字重对应的文件路径；没有粗体文件时使用常规字重。
func (f Family) Path(dir string, bold bool) string {
	file := f.Regular
	if bold && f.Bold != "" {
		file = f.Bold
	}
	if file == "" || filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

// Load 读取字体族某个字重的字体数据。内建字体返回嵌入的 Latin Modern。
func (f Family) Load(dir string, bold bool) ([]byte, error) {
	if f.Builtin {
		return Builtin(bold), nil
	}
	return os.ReadFile(f.Path(dir, bold))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
