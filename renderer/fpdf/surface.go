package fpdfrenderer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/statement/fonts"
	"github.com/ByLCY/statement/layout"
	"github.com/ByLCY/statement/renderer"
)

// coreFamily 是 fpdf 内置、无需字体文件的兜底字体。
const coreFamily = "Helvetica"

// Surface draws lines via codeberg.org/go-pdf/fpdf.
type Surface struct {
	opts   renderer.Options
	pdf    *fpdf.Fpdf
	family string
	core   bool // 使用核心字体时文本需转为 cp1252
	pages  int
}

var _ renderer.Surface = (*Surface)(nil)

// New creates an fpdf surface with its first page already open. The selected
// family is registered up front; if its files cannot be read or parsed the
// surface falls back to core Helvetica.
func New(opts renderer.Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸非法: %gx%g", opts.Width, opts.Height)
	}
	if opts.Theme == nil {
		opts.Theme = fonts.DefaultTheme()
	}
	// Size 已按方向给出宽高；"L" 会让 fpdf 再交换一次
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: opts.Width, Ht: opts.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	applyMeta(pdf, opts)

	s := &Surface{opts: opts, pdf: pdf}
	s.registerFamily()
	pdf.AddPage()
	s.pages = 1
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("初始化 PDF 失败: %w", err)
	}
	return s, nil
}

func applyMeta(pdf *fpdf.Fpdf, opts renderer.Options) {
	meta := opts.Meta
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
}

func (s *Surface) registerFamily() {
	f := s.opts.Family
	if f.Builtin {
		s.useCore()
		return
	}
	regular, err := f.Load(s.opts.FontDir, false)
	if err != nil {
		s.useCore()
		return
	}
	bold, err := f.Load(s.opts.FontDir, true)
	if err != nil {
		s.useCore()
		return
	}
	s.pdf.AddUTF8FontFromBytes(f.Name, "", regular)
	s.pdf.AddUTF8FontFromBytes(f.Name, "B", bold)
	if s.pdf.Err() {
		s.pdf.ClearError()
		s.useCore()
		return
	}
	s.family = f.Name
}

func (s *Surface) useCore() {
	s.family = coreFamily
	s.core = true
}

// Family 返回实际使用的字体族名称。
func (s *Surface) Family() string { return s.family }

// Pages 返回当前页数。
func (s *Surface) Pages() int { return s.pages }

// PageSize 返回页面宽高（mm）。
func (s *Surface) PageSize() (float64, float64) { return s.opts.Width, s.opts.Height }

// NewPage 开始新的一页。
func (s *Surface) NewPage() error {
	s.pdf.AddPage()
	s.pages++
	return s.pdf.Error()
}

// DrawLine 以 (x, y) 为基线起点绘制一行；fpdf 的 y 轴向下，这里做翻转。
func (s *Surface) DrawLine(text string, x, y float64, style layout.LineStyle) error {
	if text == "" {
		return nil
	}
	st := s.opts.Theme.For(style.Role)
	weight := ""
	if st.Bold {
		weight = "B"
	}
	s.pdf.SetFont(s.family, weight, st.Size)
	if s.core {
		text = toCP1252(text)
	}
	if style.Align == layout.AlignCenter {
		x -= s.pdf.GetStringWidth(text) / 2
	}
	s.pdf.Text(x, s.opts.Height-y, text)
	return s.pdf.Error()
}

// WriteTo 输出 PDF；fpdf 输出后文档即关闭，只能调用一次。
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.WriteTo(w)
}

// Save 将 PDF 写入 path。
func (s *Surface) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建 PDF 文件失败: %w", err)
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
