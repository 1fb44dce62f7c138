package canvasrenderer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/statement/fonts"
	"github.com/ByLCY/statement/layout"
	"github.com/ByLCY/statement/renderer"
)

// Surface draws lines via github.com/tdewolff/canvas, one canvas per page.
type Surface struct {
	opts  renderer.Options
	pages []*canvas.Canvas
	ctx   *canvas.Context

	fontMu   sync.Mutex
	family   *canvas.FontFamily
	fallback *canvas.FontFamily
	faces    map[fonts.Style]*canvas.FontFace
}

var _ renderer.Surface = (*Surface)(nil)

// New creates a canvas surface with its first page already open.
func New(opts renderer.Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸非法: %gx%g", opts.Width, opts.Height)
	}
	if opts.Theme == nil {
		opts.Theme = fonts.DefaultTheme()
	}
	s := &Surface{
		opts:  opts,
		faces: map[fonts.Style]*canvas.FontFace{},
	}
	s.addPage()
	return s, nil
}

func (s *Surface) addPage() {
	c := canvas.New(s.opts.Width, s.opts.Height)
	ctx := canvas.NewContext(c)
	// 左下角为原点、y 向上，与排版光标一致
	ctx.SetCoordSystem(canvas.CartesianI)
	s.pages = append(s.pages, c)
	s.ctx = ctx
}

// PageSize 返回页面宽高（mm）。
func (s *Surface) PageSize() (float64, float64) { return s.opts.Width, s.opts.Height }

// Pages 返回当前页数。
func (s *Surface) Pages() int { return len(s.pages) }

// NewPage 开始新的一页。
func (s *Surface) NewPage() error {
	s.addPage()
	return nil
}

// DrawLine 以 (x, y) 为基线起点绘制一行；居中对齐时 x 为行中心。
func (s *Surface) DrawLine(text string, x, y float64, style layout.LineStyle) error {
	if text == "" {
		return nil
	}
	face, err := s.face(s.opts.Theme.For(style.Role))
	if err != nil {
		return err
	}
	align := canvas.Left
	if style.Align == layout.AlignCenter {
		align = canvas.Center
	}
	s.ctx.DrawText(x, y, canvas.NewTextLine(face, text, align))
	return nil
}

// WriteTo 将所有页面写成 PDF。
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	writer := pdf.New(&buf, s.opts.Width, s.opts.Height, nil)
	meta := s.opts.Meta
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)
	for i, c := range s.pages {
		if i > 0 {
			writer.NewPage(s.opts.Width, s.opts.Height)
		}
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
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

func (s *Surface) face(style fonts.Style) (*canvas.FontFace, error) {
	s.fontMu.Lock()
	defer s.fontMu.Unlock()

	if face, ok := s.faces[style]; ok {
		return face, nil
	}
	family, err := s.ensureFamily()
	if err != nil {
		return nil, err
	}
	weight := canvas.FontRegular
	if style.Bold {
		weight = canvas.FontBold
	}
	face := family.Face(style.Size, canvas.Black, weight, canvas.FontNormal)
	s.faces[style] = face
	return face, nil
}

// ensureFamily 加载选定字体族，失败时回退到内建字体。调用方持有 fontMu。
func (s *Surface) ensureFamily() (*canvas.FontFamily, error) {
	if s.family != nil {
		return s.family, nil
	}
	family, err := loadFamily(s.opts.Family, s.opts.FontDir)
	if err != nil {
		fallback, fbErr := s.builtin()
		if fbErr != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", s.opts.Family.Name, err)
		}
		family = fallback
	}
	s.family = family
	return family, nil
}

func (s *Surface) builtin() (*canvas.FontFamily, error) {
	if s.fallback != nil {
		return s.fallback, nil
	}
	family, err := loadFamily(fonts.Family{Name: "statement-fallback", Builtin: true}, "")
	if err != nil {
		return nil, err
	}
	s.fallback = family
	return family, nil
}

func loadFamily(f fonts.Family, dir string) (*canvas.FontFamily, error) {
	name := f.Name
	if name == "" {
		name = "Body"
	}
	family := canvas.NewFontFamily(name)
	for _, w := range []struct {
		bold  bool
		style canvas.FontStyle
	}{{false, canvas.FontRegular}, {true, canvas.FontBold}} {
		data, err := f.Load(dir, w.bold)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, w.style); err != nil {
			return nil, fmt.Errorf("解析字体 %s 失败: %w", name, err)
		}
	}
	return family, nil
}
