package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/shelf/pkg/inventory"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	t.Setenv("SHELF_CONFIG_PATH", t.TempDir())
	t.Setenv("SHELF_PATH", dir)
	t.Setenv("SHELF_BACKEND", "file")
	return dir
}

func TestAddThenGet(t *testing.T) {
	setup(t)
	steps := [][]string{
		{"add", "tag", "tools"},
		{"add", "compartment", "Garage"},
		{"add", "container", "North", "Wall", "--compartment", "0", "--tag", "0"},
		{"add", "item", "Drill", "--container", "0"},
	}
	for _, args := range steps {
		if out, err := run(t, args...); err != nil {
			t.Fatalf("%v: %v\n%s", args, err, out)
		}
	}

	out, err := run(t, "get", "--json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	inv := &inventory.Inventory{}
	if err := json.Unmarshal([]byte(out), inv); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(inv.Containers) != 1 || inv.Containers[0].Name != "North Wall" {
		t.Fatalf("containers = %+v", inv.Containers)
	}
	if len(inv.Items) != 1 || inv.Items[0].ContainerID != 0 {
		t.Fatalf("items = %+v", inv.Items)
	}

	out, err = run(t, "get")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out, "North Wall [tools]") || !strings.Contains(out, "Drill") {
		t.Fatalf("unexpected tree:\n%s", out)
	}
}

func TestAddJSONErrors(t *testing.T) {
	setup(t)
	out, err := run(t, "add", "container", "Box", "--compartment", "9", "--json")
	if err != nil {
		t.Fatalf("json errors are printed, not returned: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if body["error"] != "compartment 9 not found" {
		t.Fatalf("error = %q", body["error"])
	}

	if _, err := run(t, "add", "item", "Drill", "--container", "nope"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := run(t, "add", "item", "Drill"); err == nil {
		t.Fatal("expected missing flag error")
	}
}

func TestAddJSONOutput(t *testing.T) {
	setup(t)
	out, err := run(t, "add", "compartment", "Garage", "--json")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := strings.TrimSpace(out); got != `{"id":0,"kind":"compartment","name":"Garage"}` {
		t.Fatalf("output = %s", got)
	}
}

func TestTagsJSON(t *testing.T) {
	setup(t)
	if _, err := run(t, "add", "tag", "red"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(t, "tags", "--json")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if got := strings.TrimSpace(out); got != `[{"id":0,"name":"red"}]` {
		t.Fatalf("tags = %s", got)
	}
}

func TestUnknownLogLevelFails(t *testing.T) {
	setup(t)
	t.Setenv("SHELF_LOG_LEVEL", "verbose")
	_, err := run(t, "get")
	if err == nil || !strings.Contains(err.Error(), `unknown level "verbose"`) {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestUnusableLogPathWarns(t *testing.T) {
	setup(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHELF_LOG", filepath.Join(blocker, "logs", "shelf.log"))

	out, err := run(t, "get")
	if err != nil {
		t.Fatalf("get should still run: %v", err)
	}
	if !strings.Contains(out, "shelf: logging disabled:") {
		t.Fatalf("missing warning:\n%s", out)
	}
}

func TestPath(t *testing.T) {
	dir := setup(t)
	out, err := run(t, "path")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(dir, "inventory.json"); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "dev\n" {
		t.Fatalf("version = %q", out)
	}
	if _, err := formatVersion("xml"); err == nil {
		t.Fatal("expected error for unknown output")
	}
	if s, err := formatVersion("yaml"); err != nil || !strings.Contains(s, "version: dev") {
		t.Fatalf("yaml = %q, %v", s, err)
	}
}
