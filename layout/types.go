package layout

// 该文件定义排版引擎的输入块、行样式与绘制面接口。

// Mode 决定文本块如何拆分成行。
type Mode int

const (
	// ModeWrap 按空白折叠后贪心换行。
	ModeWrap Mode = iota
	// ModeVerbatim 仅按显式换行拆分，每段一行（空段即空行）。
	ModeVerbatim
)

func (m Mode) String() string {
	switch m {
	case ModeWrap:
		return "wrap"
	case ModeVerbatim:
		return "verbatim"
	default:
		return "unknown"
	}
}

// Role 是交给绘制面的样式标签，引擎本身不解释它。
type Role string

const (
	RoleTitle    Role = "title"
	RoleSubtitle Role = "subtitle"
	RoleBody     Role = "body"
	RoleClosing  Role = "closing"
)

// Align 为行的水平对齐方式。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// TextBlock 是一段逻辑文本。Text 视为不可变输入。
type TextBlock struct {
	Text  string `json:"text"`
	Mode  Mode   `json:"mode"`
	Role  Role   `json:"role,omitempty"`
	Align Align  `json:"align,omitempty"`
	// Closing 标记结尾块：绘制前若光标低于 Config.ClosingThreshold 则强制换页，
	// 避免签名区被页边界拆开。
	Closing bool `json:"closing,omitempty"`
}

// LineStyle 随每次 DrawLine 传给绘制面，由调用方决定字体与字号。
type LineStyle struct {
	Role  Role  `json:"role"`
	Align Align `json:"align"`
}

// Surface 是引擎消费的绘制面。坐标单位为 mm，原点在页面左下角，y 向上。
// Align 为 center 时 x 是行中心，否则是行起点。
type Surface interface {
	DrawLine(text string, x, y float64, style LineStyle) error
	NewPage() error
	PageSize() (width, height float64)
}
