package gotemplate_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
)

func templates() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": {Data: []byte("{{ name|shout }}")},
		"style.tmpl":      {Data: []byte(`<div style="{{ tokens|cssvars }}">{{ label|trim }}</div>`)},
		"escape.tmpl":     {Data: []byte("{{ body }}|{{ body|safe }}")},
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(templates()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplateWritesOutputs(t *testing.T) {
	engine := newEngine(t)

	var sink strings.Builder
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &sink)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada" || sink.String() != result {
		t.Fatalf("unexpected output %q / %q", result, sink.String())
	}
}

func TestEngineStructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)
	type view struct {
		DisplayName string `json:"name"`
	}
	result, err := engine.RenderTemplate("hello.tmpl", view{DisplayName: "Grace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Grace" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngineDefaultFilters(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("style", map[string]any{
		"tokens": map[string]string{"radius": "4px", "--brand": "#123456"},
		"label":  "  Create  ",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div style="--brand: #123456; --radius: 4px">Create</div>`
	if result != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, result)
	}
}

func TestEngineAutoescapes(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("escape", map[string]any{"body": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "&lt;b&gt;x&lt;/b&gt;|<b>x</b>" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngineExistsAndRenderString(t *testing.T) {
	engine := newEngine(t)
	if !engine.Exists("hello") || engine.Exists("missing") {
		t.Fatalf("exists mismatch")
	}
	result, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": "one", "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "one-two" {
		t.Fatalf("unexpected output %q", result)
	}

	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without loaders")
	}
}
