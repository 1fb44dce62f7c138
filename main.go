package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/statement/document"
	"github.com/ByLCY/statement/dsl"
	"github.com/ByLCY/statement/fonts"
	"github.com/ByLCY/statement/layout"
	"github.com/ByLCY/statement/renderer"
	canvasrenderer "github.com/ByLCY/statement/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/statement/renderer/fpdf"
)

// backends 按名称构造绘制面。
var backends = map[string]func(renderer.Options) (renderer.Surface, error){
	"canvas": func(o renderer.Options) (renderer.Surface, error) { return canvasrenderer.New(o) },
	"fpdf":   func(o renderer.Options) (renderer.Surface, error) { return fpdfrenderer.New(o) },
}

type runOptions struct {
	input   string
	output  string
	debug   string
	backend string
	fontDir string
	data    any
}

func main() {
	input := flag.String("in", "examples/statement.stmt", "文档文件路径")
	output := flag.String("out", "output/statement.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "绘制调用轨迹 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到文档的 JSON 数据")
	dataFile := flag.String("data-file", "", "绑定到文档的 JSON 数据文件")
	backend := flag.String("backend", "canvas", "渲染后端：canvas 或 fpdf")
	fontDir := flag.String("fonts", "", "字体文件目录（默认与文档同目录）")
	flag.Parse()

	data, err := loadData(*dataJSON, *dataFile)
	if err != nil {
		log.Fatalf("解析 data JSON 失败: %v", err)
	}
	dir := *fontDir
	if dir == "" {
		dir = filepath.Dir(*input)
	}

	opts := runOptions{input: *input, output: *output, debug: *debug, backend: *backend, fontDir: dir, data: data}
	if err := run(opts); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

func loadData(inline, path string) (any, error) {
	raw := []byte(inline)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// run 串联解析、编译、选字体、排版与保存。
func run(opts runOptions) error {
	newSurface, ok := backends[opts.backend]
	if !ok {
		return fmt.Errorf("未知的渲染后端 %q", opts.backend)
	}
	file, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("无法打开文档 %s: %w", opts.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析文档失败: %w", err)
	}
	plan, err := document.Compile(doc, opts.data)
	if err != nil {
		return fmt.Errorf("编译文档失败: %w", err)
	}
	for _, path := range plan.Unresolved {
		log.Printf("警告: 数据中缺少 ${%s}", path)
	}

	family, err := fonts.Select(fonts.Available(opts.fontDir, plan.Fonts), plan.Fonts)
	if err != nil {
		return err
	}
	log.Printf("使用字体 %s", family.Name)

	surface, err := newSurface(renderer.OptionsFromPlan(plan, family, opts.fontDir))
	if err != nil {
		return fmt.Errorf("创建绘制面失败: %w", err)
	}
	var target layout.Surface = surface
	var rec *layout.Recorder
	if opts.debug != "" {
		rec = layout.NewRecorder(surface)
		target = rec
	}
	if err := layout.RenderBlocks(target, plan.Blocks, plan.Config); err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}
	if rec != nil {
		if err := writeDebug(rec.Calls, opts.debug); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := surface.Save(opts.output); err != nil {
		return fmt.Errorf("保存 PDF 失败: %w", err)
	}
	return nil
}

func writeDebug(calls []layout.Call, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(calls, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
