package fonts

import "github.com/ByLCY/statement/layout"

// Style 为某个角色使用的字重与字号（pt）。
type Style struct {
	Bold bool    `json:"bold"`
	Size float64 `json:"size"`
}

// Theme 将行角色映射到字体样式。
type Theme map[layout.Role]Style

// DefaultTheme 标题 16pt 粗体，其余 10pt 常规。
func DefaultTheme() Theme {
	return Theme{
		layout.RoleTitle:    {Bold: true, Size: 16},
		layout.RoleSubtitle: {Size: 10},
		layout.RoleBody:     {Size: 10},
		layout.RoleClosing:  {Size: 10},
	}
}

// For 返回角色对应的样式，未知角色使用 body。
func (t Theme) For(role layout.Role) Style {
	if s, ok := t[role]; ok && s.Size > 0 {
		return s
	}
	if s, ok := t[layout.RoleBody]; ok && s.Size > 0 {
		return s
	}
	return Style{Size: 10}
}
