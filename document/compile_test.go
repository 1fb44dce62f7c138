package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/statement/dsl"
	"github.com/ByLCY/statement/fonts"
	"github.com/ByLCY/statement/layout"
)

func compileString(t *testing.T, src string, data any) *Plan {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("解析 DSL 失败: %v", err)
	}
	plan, err := Compile(doc, data)
	if err != nil {
		t.Fatalf("编译失败: %v", err)
	}
	return plan
}

// 不写任何设置时沿用原始脚本的版式与字体链。
func TestCompileDefaults(t *testing.T) {
	plan := compileString(t, `doc T v1 { page A4 { text { "x" } } }`, nil)
	if plan.PageWidth != 210 || plan.PageHeight != 297 {
		t.Fatalf("A4 尺寸错误: %gx%g", plan.PageWidth, plan.PageHeight)
	}
	if diff := cmp.Diff(layout.DefaultConfig(), plan.Config); diff != "" {
		t.Fatalf("默认配置不一致 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fonts.DefaultChain, plan.Fonts); diff != "" {
		t.Fatalf("默认字体链不一致 (-want +got):\n%s", diff)
	}
	if plan.Meta.Creator != "statement" {
		t.Fatalf("默认 creator = %q", plan.Meta.Creator)
	}
}

func TestCompileFullDocument(t *testing.T) {
	src := `doc P v1 {
  meta {
    title: "Pareiškimas ${who}"
    keywords: "a, b ,,c"
  }
  resources {
    font Arial { regular: "arial.ttf" bold: "arialbd.ttf" }
    font Helvetica builtin
    style title { size: 18 weight: bold }
    style body { size: 4.2333mm }
  }
  page A5 landscape margin 25mm 15mm 10mm {
    wrap-width: 60
    line-height: 5mm
    spacing: 1mm
    closing-threshold: 2cm
    text title center { "P A R E I Š K I M A S" }
    gap
    text { "Šiuo " "dokumentu ${who} ${nope}" }
    verbatim { "a\nb" }
    closing { "Data: ${date}\n\n(Parašas)" }
  }
}`
	data := map[string]any{"who": "Jonas", "date": "2025-10-01"}
	plan := compileString(t, src, data)

	if plan.PageWidth != 210 || plan.PageHeight != 148 {
		t.Fatalf("A5 横向尺寸错误: %gx%g", plan.PageWidth, plan.PageHeight)
	}
	wantCfg := layout.Config{WrapWidth: 60, LineHeight: 5, TopMargin: 25, BottomMargin: 10, LeftMargin: 15, BlockSpacing: 1, ClosingThreshold: 20}
	if diff := cmp.Diff(wantCfg, plan.Config); diff != "" {
		t.Fatalf("配置不一致 (-want +got):\n%s", diff)
	}
	if plan.Meta.Title != "Pareiškimas Jonas" || strings.Join(plan.Meta.Keywords, "|") != "a|b|c" {
		t.Fatalf("meta 错误: %+v", plan.Meta)
	}
	wantFonts := []fonts.Family{
		{Name: "Arial", Regular: "arial.ttf", Bold: "arialbd.ttf"},
		{Name: "Helvetica", Builtin: true},
	}
	if diff := cmp.Diff(wantFonts, plan.Fonts); diff != "" {
		t.Fatalf("字体链不一致 (-want +got):\n%s", diff)
	}
	if s := plan.Theme[layout.RoleTitle]; !s.Bold || s.Size != 18 {
		t.Fatalf("title 样式错误: %+v", s)
	}
	if s := plan.Theme[layout.RoleBody]; s.Bold || s.Size < 11.99 || s.Size > 12.01 {
		t.Fatalf("body 样式错误: %+v", s)
	}

	want := []layout.TextBlock{
		{Text: "P A R E I Š K I M A S", Role: layout.RoleTitle, Align: layout.AlignCenter},
		{Role: layout.RoleBody},
		{Text: "Šiuo dokumentu Jonas ${nope}", Role: layout.RoleBody},
		{Text: "a\nb", Mode: layout.ModeVerbatim, Role: layout.RoleBody},
		{Text: "Data: 2025-10-01\n\n(Parašas)", Mode: layout.ModeVerbatim, Role: layout.RoleClosing, Closing: true},
	}
	if diff := cmp.Diff(want, plan.Blocks); diff != "" {
		t.Fatalf("文本块不一致 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"nope"}, plan.Unresolved); diff != "" {
		t.Fatalf("Unresolved 不一致 (-want +got):\n%s", diff)
	}
}

func TestCompileMarginVariants(t *testing.T) {
	cases := []struct {
		header            string
		top, bottom, left float64
	}{
		{"A4 margin 10mm", 10, 10, 10},
		{"A4 margin 10mm 5mm", 10, 10, 5},
		{"A4 margin 12mm 8mm 6mm", 12, 6, 8},
		{"A4 margin 1cm 5mm 2cm 3mm", 10, 20, 3},
		{"A4 margin 1mm 2mm 3mm 4mm 999mm", 1, 3, 4},
		{"A4 portrait", 30, 20, 20},
	}
	for _, c := range cases {
		plan := compileString(t, "doc T v1 { page "+c.header+" { gap } }", nil)
		got := plan.Config
		if got.TopMargin != c.top || got.BottomMargin != c.bottom || got.LeftMargin != c.left {
			t.Errorf("%s: got top=%g bottom=%g left=%g", c.header, got.TopMargin, got.BottomMargin, got.LeftMargin)
		}
	}
}

// style 声明的角色可用作文本块参数。
func TestCompileDeclaredRole(t *testing.T) {
	src := `doc T v1 {
  resources { style note { size: 8pt } }
  page A4 { text note { "x" } }
}`
	plan := compileString(t, src, nil)
	if len(plan.Blocks) != 1 || plan.Blocks[0].Role != "note" {
		t.Fatalf("角色错误: %+v", plan.Blocks)
	}
	if s := plan.Theme["note"]; s.Size != 8 {
		t.Fatalf("note 样式错误: %+v", s)
	}
}

func TestCompileErrors(t *testing.T) {
	cases := map[string]string{
		"no page":        `doc T v1 { meta { title: "x" } }`,
		"bad size":       `doc T v1 { page B7 { gap } }`,
		"bad wrap":       `doc T v1 { page A4 { wrap-width: 5mm } }`,
		"zero wrap":      `doc T v1 { page A4 { wrap-width: 0 } }`,
		"unknown cmd":    `doc T v1 { page A4 { image { "x" } } }`,
		"unknown key":    `doc T v1 { page A4 { colour: red } }`,
		"font no file":   `doc T v1 { resources { font X } page A4 { gap } }`,
		"margin no vals": `doc T v1 { page A4 margin { gap } }`,
		"unknown arg":    `doc T v1 { page A4 { text body centre { "x" } } }`,
	}
	for name, src := range cases {
		doc, err := dsl.ParseString(src)
		if err != nil {
			t.Fatalf("%s: 解析失败: %v", name, err)
		}
		if _, err := Compile(doc, nil); err == nil {
			t.Errorf("%s: 期望编译错误", name)
		}
	}
	if _, err := Compile(nil, nil); err == nil {
		t.Errorf("nil 文档应报错")
	}
}
