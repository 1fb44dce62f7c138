package layout

import (
	"encoding/json"
	"os"
)

// Call 记录一次绘制面调用。
type Call struct {
	Op    string  `json:"op"` // draw / newPage
	Page  int     `json:"page"`
	Text  string  `json:"text,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Role  Role    `json:"role,omitempty"`
	Align Align   `json:"align,omitempty"`
}

// Recorder 记录所有调用；Next 非空时转发给它，否则使用 Width/Height 作为页面尺寸。
type Recorder struct {
	Next   Surface
	Width  float64
	Height float64
	Calls  []Call

	page int
}

var _ Surface = (*Recorder)(nil)

// NewRecorder 返回包装 next 的记录器。
func NewRecorder(next Surface) *Recorder { return &Recorder{Next: next} }

func (r *Recorder) DrawLine(text string, x, y float64, style LineStyle) error {
	r.Calls = append(r.Calls, Call{Op: "draw", Page: r.page, Text: text, X: x, Y: y, Role: style.Role, Align: style.Align})
	if r.Next != nil {
		return r.Next.DrawLine(text, x, y, style)
	}
	return nil
}

func (r *Recorder) NewPage() error {
	r.page++
	r.Calls = append(r.Calls, Call{Op: "newPage", Page: r.page})
	if r.Next != nil {
		return r.Next.NewPage()
	}
	return nil
}

func (r *Recorder) PageSize() (float64, float64) {
	if r.Next != nil {
		return r.Next.PageSize()
	}
	return r.Width, r.Height
}

// Drawn 返回所有 draw 调用的文本。
func (r *Recorder) Drawn() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == "draw" {
			out = append(out, c.Text)
		}
	}
	return out
}

// WriteDebugJSON 将调用序列输出为 JSON，便于调试或可视化。
func WriteDebugJSON(calls []Call, path string) error {
	data, err := json.MarshalIndent(calls, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
