package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/statement/layout"
)

func TestRunExampleDocument(t *testing.T) {
	data, err := loadData("", "examples/statement.json")
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	for _, backend := range []string{"canvas", "fpdf"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, "out", "statement.pdf")
			debug := filepath.Join(dir, "trace.json")
			err := run(runOptions{
				input:   "examples/statement.stmt",
				output:  out,
				debug:   debug,
				backend: backend,
				fontDir: dir, // 空目录：回退到内建字体
				data:    data,
			})
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			pdf, err := os.ReadFile(out)
			if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
				t.Fatalf("输出不是 PDF: %v", err)
			}

			raw, err := os.ReadFile(debug)
			if err != nil {
				t.Fatalf("读取调试 JSON 失败: %v", err)
			}
			var calls []layout.Call
			if err := json.Unmarshal(raw, &calls); err != nil {
				t.Fatalf("调试 JSON 无法解析: %v", err)
			}
			if len(calls) == 0 || calls[0].Role != layout.RoleTitle {
				t.Fatalf("首个调用应为标题: %+v", calls)
			}
			last := calls[len(calls)-1]
			if last.Text != "(Parašas)" {
				t.Fatalf("最后一行应为签名区: %+v", last)
			}
			for _, c := range calls {
				if strings.Contains(c.Text, "${") {
					t.Fatalf("存在未替换的占位符: %q", c.Text)
				}
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	base := runOptions{input: "examples/statement.stmt", output: filepath.Join(dir, "x.pdf"), backend: "canvas"}

	bad := base
	bad.backend = "svg"
	if err := run(bad); err == nil {
		t.Errorf("未知后端应报错")
	}
	bad = base
	bad.input = filepath.Join(dir, "missing.stmt")
	if err := run(bad); err == nil {
		t.Errorf("缺失文档应报错")
	}
	broken := filepath.Join(dir, "broken.stmt")
	if err := os.WriteFile(broken, []byte("doc X v1 { page A4 { wrap-width: 0 } }"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad = base
	bad.input = broken
	if err := run(bad); err == nil {
		t.Errorf("非法配置应报错")
	}
}

func TestLoadData(t *testing.T) {
	v, err := loadData(`{"a":1}`, "")
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := v.(map[string]any); !ok || m["a"] != float64(1) {
		t.Fatalf("unexpected data %#v", v)
	}
	if v, err := loadData("", ""); err != nil || v != nil {
		t.Fatalf("空输入应返回 nil: %v %v", v, err)
	}
	if _, err := loadData("{", ""); err == nil {
		t.Fatalf("非法 JSON 应报错")
	}
}
