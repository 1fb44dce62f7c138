package layout

import "math"

// Config 描述一次排版的版式参数，长度单位均为 mm。
type Config struct {
	WrapWidth    int     `json:"wrapWidth"`    // 每行最大字符数（码点，NFC 归一化后计数）
	LineHeight   float64 `json:"lineHeight"`   // 行距
	TopMargin    float64 `json:"topMargin"`    // 新页首行基线距页顶
	BottomMargin float64 `json:"bottomMargin"` // 光标不得低于此值
	LeftMargin   float64 `json:"leftMargin"`   // 左对齐行的 x
	BlockSpacing float64 `json:"blockSpacing"` // 每个块之后的固定间距
	// ClosingThreshold 为结尾块的安全线，0 表示关闭主动换页。
	ClosingThreshold float64 `json:"closingThreshold"`
}

// DefaultConfig 与原始声明书脚本的版式一致。
func DefaultConfig() Config {
	return Config{
		WrapWidth:        95,
		LineHeight:       6,
		TopMargin:        30,
		BottomMargin:     20,
		LeftMargin:       20,
		BlockSpacing:     2,
		ClosingThreshold: 60,
	}
}

// Validate 在任何绘制之前检查参数。
func (c Config) Validate() error {
	lengths := []struct {
		field string
		value float64
	}{
		{"lineHeight", c.LineHeight},
		{"topMargin", c.TopMargin},
		{"bottomMargin", c.BottomMargin},
		{"leftMargin", c.LeftMargin},
		{"blockSpacing", c.BlockSpacing},
		{"closingThreshold", c.ClosingThreshold},
	}
	for _, l := range lengths {
		if math.IsNaN(l.value) || math.IsInf(l.value, 0) {
			return &ConfigurationError{Field: l.field, Reason: "必须为有限数值"}
		}
	}
	switch {
	case c.WrapWidth < 1:
		return &ConfigurationError{Field: "wrapWidth", Reason: "必须 ≥ 1"}
	case c.LineHeight <= 0:
		return &ConfigurationError{Field: "lineHeight", Reason: "必须为正数"}
	case c.TopMargin < 0:
		return &ConfigurationError{Field: "topMargin", Reason: "不能为负数"}
	case c.BottomMargin < 0:
		return &ConfigurationError{Field: "bottomMargin", Reason: "不能为负数"}
	case c.LeftMargin < 0:
		return &ConfigurationError{Field: "leftMargin", Reason: "不能为负数"}
	case c.BlockSpacing < 0:
		return &ConfigurationError{Field: "blockSpacing", Reason: "不能为负数"}
	case c.ClosingThreshold < 0:
		return &ConfigurationError{Field: "closingThreshold", Reason: "不能为负数"}
	}
	return nil
}
