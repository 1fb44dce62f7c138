package layout

// state 是单次排版过程独占的可变状态。
type state struct {
	surface Surface
	cfg     Config
	width   float64
	height  float64
	cursor  float64
}

// RenderBlocks 依次把 blocks 排版到 surface 上：贪心换行、逐行下移光标，
// 空间不足时向绘制面请求新页。surface 初始应已处于第一页。
// 空的 blocks 是合法输入，不产生任何调用。
func RenderBlocks(surface Surface, blocks []TextBlock, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(blocks) == 0 {
		return nil
	}
	st := &state{surface: surface, cfg: cfg}
	st.width, st.height = surface.PageSize()
	st.cursor = st.top()

	for _, block := range blocks {
		if err := st.renderBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func (st *state) top() float64 { return st.height - st.cfg.TopMargin }

func (st *state) renderBlock(block TextBlock) error {
	// 光标已到底边距时逐行检查自会换页，这里不再追加一页
	if block.Closing && st.cfg.ClosingThreshold > 0 &&
		st.cursor > st.cfg.BottomMargin && st.cursor < st.cfg.ClosingThreshold {
		if err := st.newPage(); err != nil {
			return err
		}
	}

	style := LineStyle{Role: block.Role, Align: block.Align}
	if style.Role == "" {
		style.Role = RoleBody
	}
	if style.Align == "" {
		style.Align = AlignLeft
	}
	x := st.cfg.LeftMargin
	if style.Align == AlignCenter {
		x = st.width / 2
	}

	for _, line := range Lines(block, st.cfg.WrapWidth) {
		if st.cursor-st.cfg.BottomMargin < st.cfg.LineHeight {
			if err := st.newPage(); err != nil {
				return err
			}
		}
		if err := st.surface.DrawLine(line, x, st.cursor, style); err != nil {
			return &SurfaceError{Op: "drawLine", Err: err}
		}
		st.cursor -= st.cfg.LineHeight
	}
	// 空块同样推进间距，用作段落之间的空白
	st.cursor -= st.cfg.BlockSpacing
	return nil
}

func (st *state) newPage() error {
	if err := st.surface.NewPage(); err != nil {
		return &SurfaceError{Op: "newPage", Err: err}
	}
	st.cursor = st.top()
	return nil
}
