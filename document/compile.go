package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/statement/binding"
	"github.com/ByLCY/statement/dsl"
	"github.com/ByLCY/statement/fonts"
	"github.com/ByLCY/statement/layout"
)

// Plan 是编译后的文档：页面尺寸、版式参数、文本块与字体设置，可直接交给排版引擎。
type Plan struct {
	Meta       Meta               `json:"meta"`
	PageWidth  float64            `json:"pageWidth"`
	PageHeight float64            `json:"pageHeight"`
	Config     layout.Config      `json:"config"`
	Blocks     []layout.TextBlock `json:"blocks"`
	Fonts      []fonts.Family     `json:"fonts"`
	Theme      fonts.Theme        `json:"theme"`
	// Unresolved 列出数据中找不到的占位符路径。
	Unresolved []string `json:"unresolved,omitempty"`
}

// Meta 保存 PDF 元信息。
type Meta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
}

// Compile 把 DSL AST 编译为 Plan，data 用于 ${...} 插值，可为 nil。
func Compile(doc *dsl.Document, data any) (*Plan, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	plan := &Plan{
		Meta:   Meta{Creator: "statement"},
		Config: layout.DefaultConfig(),
		Theme:  fonts.DefaultTheme(),
	}
	c := &compiler{plan: plan, data: data, seen: map[string]bool{}}

	var page *dsl.PageSection
	for _, section := range doc.Sections {
		switch {
		case section.Meta != nil:
			c.meta(section.Meta.Block)
		case section.Resources != nil:
			if err := c.resources(section.Resources.Block); err != nil {
				return nil, err
			}
		case section.Page != nil:
			if page != nil {
				return nil, fmt.Errorf("文档只能包含一个 page 段落")
			}
			page = section.Page
		}
	}
	if page == nil {
		return nil, fmt.Errorf("文档中缺少 page 段落")
	}
	if err := c.page(page); err != nil {
		return nil, err
	}
	if len(plan.Fonts) == 0 {
		plan.Fonts = append([]fonts.Family(nil), fonts.DefaultChain...)
	}
	if err := plan.Config.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

type compiler struct {
	plan *Plan
	data any
	seen map[string]bool
}

func (c *compiler) text(s string) string {
	for _, path := range binding.Missing(s, c.data) {
		if !c.seen[path] {
			c.seen[path] = true
			c.plan.Unresolved = append(c.plan.Unresolved, path)
		}
	}
	return binding.Interpolate(s, c.data)
}

func (c *compiler) meta(block *dsl.Block) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		value := c.text(stmt.Assignment.Value.Text())
		switch strings.ToLower(stmt.Assignment.Key) {
		case "title":
			c.plan.Meta.Title = value
		case "author":
			c.plan.Meta.Author = value
		case "subject":
			c.plan.Meta.Subject = value
		case "creator":
			c.plan.Meta.Creator = value
		case "keywords":
			c.plan.Meta.Keywords = nil
			for _, k := range strings.Split(value, ",") {
				if k = strings.TrimSpace(k); k != "" {
					c.plan.Meta.Keywords = append(c.plan.Meta.Keywords, k)
				}
			}
		}
	}
}

func (c *compiler) resources(block *dsl.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		cmd := stmt.Command
		if cmd == nil {
			continue
		}
		switch cmd.Name {
		case "font":
			family, err := parseFont(cmd)
			if err != nil {
				return err
			}
			c.plan.Fonts = append(c.plan.Fonts, family)
		case "style":
			role, style, err := parseStyle(cmd, c.plan.Theme)
			if err != nil {
				return err
			}
			c.plan.Theme[role] = style
		default:
			return fmt.Errorf("第 %d 行: resources 中未知的声明 %s", cmd.Pos.Line, cmd.Name)
		}
	}
	return nil
}

func parseFont(cmd *dsl.Command) (fonts.Family, error) {
	if len(cmd.Args) == 0 {
		return fonts.Family{}, fmt.Errorf("第 %d 行: font 缺少名称", cmd.Pos.Line)
	}
	family := fonts.Family{Name: cmd.Args[0].Value}
	for _, arg := range cmd.Args[1:] {
		if arg.Value == "builtin" {
			family.Builtin = true
		}
	}
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch stmt.Assignment.Key {
			case "regular", "src":
				family.Regular = stmt.Assignment.Value.Text()
			case "bold":
				family.Bold = stmt.Assignment.Value.Text()
			}
		}
	}
	if !family.Builtin && family.Regular == "" {
		return fonts.Family{}, fmt.Errorf("第 %d 行: 字体 %s 缺少 regular 文件", cmd.Pos.Line, family.Name)
	}
	return family, nil
}

func parseStyle(cmd *dsl.Command, theme fonts.Theme) (layout.Role, fonts.Style, error) {
	if len(cmd.Args) == 0 {
		return "", fonts.Style{}, fmt.Errorf("第 %d 行: style 缺少角色名", cmd.Pos.Line)
	}
	role := layout.Role(cmd.Args[0].Value)
	style := theme.For(role)
	if cmd.Block == nil {
		return role, style, nil
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		value := stmt.Assignment.Value.Text()
		switch stmt.Assignment.Key {
		case "size":
			l, err := layout.ParseLength(value)
			if err != nil {
				return "", fonts.Style{}, fmt.Errorf("第 %d 行: %w", stmt.Assignment.Pos.Line, err)
			}
			// 字号未写单位时按 pt 理解
			if l.Unit == layout.UnitNone {
				l.Unit = layout.UnitPT
			}
			style.Size = l.ToPT()
		case "weight":
			style.Bold = strings.EqualFold(value, "bold")
		}
	}
	return role, style, nil
}

func (c *compiler) page(section *dsl.PageSection) error {
	width, height, err := resolvePageSize(section.Spec)
	if err != nil {
		return err
	}
	c.plan.PageWidth, c.plan.PageHeight = width, height
	if err := resolveMargin(section.Spec.Params, &c.plan.Config); err != nil {
		return err
	}
	if section.Block == nil {
		return fmt.Errorf("page 段落缺少内容")
	}

	for _, stmt := range section.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := c.setting(stmt.Assignment); err != nil {
				return err
			}
		case stmt.Command != nil:
			block, err := c.block(stmt.Command)
			if err != nil {
				return err
			}
			c.plan.Blocks = append(c.plan.Blocks, block)
		}
	}
	return nil
}

func (c *compiler) setting(a *dsl.Assignment) error {
	value := a.Value.Text()
	if a.Key == "wrap-width" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("第 %d 行: wrap-width 必须为整数: %w", a.Pos.Line, err)
		}
		c.plan.Config.WrapWidth = n
		return nil
	}

	var target *float64
	switch a.Key {
	case "line-height":
		target = &c.plan.Config.LineHeight
	case "spacing":
		target = &c.plan.Config.BlockSpacing
	case "closing-threshold":
		target = &c.plan.Config.ClosingThreshold
	default:
		return fmt.Errorf("第 %d 行: 未知的版式设置 %s", a.Pos.Line, a.Key)
	}
	l, err := layout.ParseLength(value)
	if err != nil {
		return fmt.Errorf("第 %d 行: %s: %w", a.Pos.Line, a.Key, err)
	}
	*target = l.ToMM()
	return nil
}

// block 把 text/gap/verbatim/closing 指令转换为文本块。
func (c *compiler) block(cmd *dsl.Command) (layout.TextBlock, error) {
	var tb layout.TextBlock
	switch cmd.Name {
	case "text":
		tb.Role = layout.RoleBody
	case "verbatim":
		tb.Role = layout.RoleBody
		tb.Mode = layout.ModeVerbatim
	case "closing":
		tb.Role = layout.RoleClosing
		tb.Mode = layout.ModeVerbatim
		tb.Closing = true
	case "gap":
		return layout.TextBlock{Role: layout.RoleBody}, nil
	default:
		return tb, fmt.Errorf("第 %d 行: 未知指令 %s", cmd.Pos.Line, cmd.Name)
	}

	for _, arg := range cmd.Args {
		switch arg.Value {
		case "center":
			tb.Align = layout.AlignCenter
		case "left":
			tb.Align = layout.AlignLeft
		case "verbatim":
			tb.Mode = layout.ModeVerbatim
		case "wrap":
			tb.Mode = layout.ModeWrap
		default:
			// 角色须为内置角色或已在 resources 中用 style 声明
			role := layout.Role(arg.Value)
			if _, ok := c.plan.Theme[role]; !ok {
				return tb, fmt.Errorf("第 %d 行: %s 的未知参数 %s", arg.Pos.Line, cmd.Name, arg.Value)
			}
			tb.Role = role
		}
	}
	tb.Text = c.text(extractText(cmd.Block))
	return tb, nil
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var builder strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			builder.WriteString(string(stmt.Text.Value))
		}
	}
	return builder.String()
}

func resolvePageSize(spec dsl.PageSpec) (float64, float64, error) {
	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}
	width, height := base[0], base[1]
	for _, token := range spec.Params {
		if token.Value == "landscape" {
			width, height = height, width
		}
	}
	return width, height, nil
}

// resolveMargin 读取 margin 之后的 1~4 个长度，语义同 CSS：
// 1 个值四边相同；2 个值为上下、左右；3 个值为上、左右、下；4 个值为上右下左。
// 右边距不影响按字符数折行，这里忽略。
func resolveMargin(params []*dsl.Lexeme, cfg *layout.Config) error {
	for i, token := range params {
		if token.Value != "margin" {
			continue
		}
		var vals []float64
		for j := i + 1; j < len(params) && len(vals) < 4; j++ {
			if params[j].Type != "Number" {
				break
			}
			l, err := layout.ParseLength(params[j].Value)
			if err != nil {
				return fmt.Errorf("margin: %w", err)
			}
			vals = append(vals, l.ToMM())
		}
		switch len(vals) {
		case 0:
			return fmt.Errorf("margin 缺少数值")
		case 1:
			cfg.TopMargin, cfg.BottomMargin, cfg.LeftMargin = vals[0], vals[0], vals[0]
		case 2:
			cfg.TopMargin, cfg.BottomMargin, cfg.LeftMargin = vals[0], vals[0], vals[1]
		case 3:
			cfg.TopMargin, cfg.BottomMargin, cfg.LeftMargin = vals[0], vals[2], vals[1]
		default:
			cfg.TopMargin, cfg.BottomMargin, cfg.LeftMargin = vals[0], vals[2], vals[3]
		}
	}
	return nil
}
