package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/statement/dsl"
)

const sampleDSL = `
doc Pareiskimas v1 {
  meta {
    title: "Pareiškimas"
    author: "Tomas"
  }

  resources {
    font DejaVuSans {
      regular: "DejaVuSans.ttf"
      bold: "DejaVuSans-Bold.ttf"
    }
    // 兜底
    font Helvetica builtin
    style title { size: 16pt weight: bold }
  }

  page A4 portrait margin 30mm 20mm {
    wrap-width: 95
    line-height: 6mm
    text title center { "P A R E I Š K I M A S" }
    gap

    text body {
      "Pirma dalis. "
      "Antra dalis."
    }
    closing { "Tomas\n\n(Parašas)" }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Pareiskimas" || doc.Version != "v1" {
		t.Fatalf("unexpected header %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	kinds := []string{}
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if strings.Join(kinds, ",") != "meta,resources,page" {
		t.Fatalf("unexpected section kinds %v", kinds)
	}

	title := doc.Sections[0].Meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" || title.Value.Text() != "Pareiškimas" {
		t.Fatalf("expected title assignment, got %+v", doc.Sections[0].Meta.Block.Statements[0])
	}
}

func TestParseResources(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	stmts := doc.Sections[1].Resources.Block.Statements
	if len(stmts) != 3 {
		t.Fatalf("expected 3 resource statements, got %d", len(stmts))
	}
	dejavu := stmts[0].Command
	if dejavu == nil || dejavu.Name != "font" || dejavu.Args[0].Value != "DejaVuSans" || dejavu.Block == nil {
		t.Fatalf("unexpected font command %+v", stmts[0])
	}
	if got := dejavu.Block.Statements[1].Assignment.Value.Text(); got != "DejaVuSans-Bold.ttf" {
		t.Fatalf("bold src = %q", got)
	}
	builtin := stmts[1].Command
	if builtin == nil || len(builtin.Args) != 2 || builtin.Args[1].Value != "builtin" || builtin.Block != nil {
		t.Fatalf("unexpected builtin font %+v", builtin)
	}
	style := stmts[2].Command
	if style == nil || len(style.Block.Statements) != 2 {
		t.Fatalf("style should hold two assignments: %+v", style)
	}
	if num := style.Block.Statements[0].Assignment.Value.Number; num == nil || *num != "16pt" {
		t.Fatalf("size should be number 16pt, got %+v", style.Block.Statements[0].Assignment.Value)
	}
	if id := style.Block.Statements[1].Assignment.Value.Ident; id == nil || *id != "bold" {
		t.Fatalf("weight should be ident bold")
	}
}

func TestParsePage(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	page := doc.Sections[2].Page
	if page.Spec.Size != "A4" {
		t.Fatalf("page size = %s", page.Spec.Size)
	}
	params := []string{}
	for _, p := range page.Spec.Params {
		params = append(params, p.Value)
	}
	if strings.Join(params, " ") != "portrait margin 30mm 20mm" {
		t.Fatalf("unexpected params %v", params)
	}

	var names []string
	for _, st := range page.Block.Statements {
		switch {
		case st.Assignment != nil:
			names = append(names, st.Assignment.Key)
		case st.Command != nil:
			names = append(names, st.Command.Name)
		}
	}
	if got := strings.Join(names, ","); got != "wrap-width,line-height,text,gap,text,closing" {
		t.Fatalf("unexpected page statements %s", got)
	}

	body := page.Block.Statements[4].Command
	if len(body.Block.Statements) != 2 || string(body.Block.Statements[1].Text.Value) != "Antra dalis." {
		t.Fatalf("body literals not captured: %+v", body.Block.Statements)
	}
	closing := page.Block.Statements[5].Command
	if string(closing.Block.Statements[0].Text.Value) != "Tomas\n\n(Parašas)" {
		t.Fatalf("closing literal should be unquoted")
	}
}

func TestParseError(t *testing.T) {
	if _, err := dsl.ParseString(`doc X v1 { page A4 { text { "unterminated } } }`); err == nil {
		t.Fatalf("expected parse error")
	}
}
