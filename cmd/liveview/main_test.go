package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/liveview/internal/errors"
	"github.com/vango-dev/liveview/pkg/vdom"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func codeOf(err error) string {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "routes")
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}
	want := []string{"submit-form", "submit", "read", "items", "not-found\t(catch-all)"}
	last := -1
	for _, name := range want {
		i := strings.Index(out, name)
		if i < 0 || i < last {
			t.Fatalf("routes output out of order or missing %q:\n%s", name, out)
		}
		last = i
	}
}

func TestRenderCommandJSON(t *testing.T) {
	out, err := execute(t, "render", "/read/10", "--item", "hello", "--item", "world")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	var tree vdom.Element
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("output is not an element tree: %v\n%s", err, out)
	}
	if tree.Name != "div" || tree.ID != 0 || len(tree.Children) != 3 {
		t.Fatalf("tree = %+v", tree)
	}
	if got := tree.Children[2].TextContent(); got != "Item: world" {
		t.Errorf("last item text = %q", got)
	}
}

func TestRenderCommandHTML(t *testing.T) {
	out, err := execute(t, "render", "/submit", "--html")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") || !strings.Contains(out, `<form `) {
		t.Errorf("html output = %q", out)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	if _, err := execute(t, "render", "/nowhere"); codeOf(err) != "E302" {
		t.Errorf("unmatched render error = %v, want E302", err)
	}
	if _, err := execute(t, "render", "/../up"); codeOf(err) != "E301" {
		t.Errorf("escaping render error = %v, want E301", err)
	}
	if _, err := execute(t, "render"); codeOf(err) != "E301" {
		t.Errorf("missing arg error = %v, want E301", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}
}

func TestLoadServeConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  address: \":7000\"\nlogging:\n  level: warn\n"
	if err := os.WriteFile(filepath.Join(dir, "liveview.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadServeConfig(serveOptions{dir: dir, addr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("loadServeConfig() error = %v", err)
	}
	if cfg.Server.Address != "127.0.0.1:0" {
		t.Errorf("address = %q, want the flag value", cfg.Server.Address)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want the file value", cfg.Logging.Level)
	}

	if _, err := loadServeConfig(serveOptions{dir: dir, logLevel: "loud"}); codeOf(err) != "E103" {
		t.Errorf("bad level error = %v, want E103", err)
	}
}
