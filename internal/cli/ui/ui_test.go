package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "Index", "Kind", "Name")
	table.AddRow("0", "field", "publicField")
	table.AddRow("12", "method", "act")
	table.AddRow("3")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}

	if lines[0] != "Index  Kind    Name" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "─────  ──────  ───────────" {
		t.Errorf("unexpected rule %q", lines[1])
	}
	if lines[3] != "12     method  act" {
		t.Errorf("unexpected row %q", lines[3])
	}
	if lines[4] != "3              " {
		t.Errorf("unexpected short row %q", lines[4])
	}
	if table.Len() != 3 {
		t.Errorf("expected 3 rows, got %d", table.Len())
	}
}

func TestTableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, true).Render()

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("FQCN", "App.Greeter")
	kv.AddRow("Filename", "/app/Greeter.js")
	kv.Render()

	want := "FQCN:     App.Greeter\nFilename: /app/Greeter.js\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Members", true)

	if buf.String() != "Members\n───────\n" {
		t.Errorf("unexpected header %q", buf.String())
	}
}

func TestMessage(t *testing.T) {
	out := ClassNotFound("App.Gretter", []string{"App.Greeter"}, true).String()

	for _, want := range []string{"✗ CLASS NOT FOUND", `No reflection data for "App.Gretter".`, "Did you mean: App.Greeter?", "→ List classes"} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q:\n%s", want, out)
		}
	}

	warn := Message{Level: LevelWarning, Title: "EMPTY", NoColor: true}.String()
	if warn != "! EMPTY\n" {
		t.Errorf("unexpected warning %q", warn)
	}
}

func TestSuccess(t *testing.T) {
	if got := Success("exported 2 classes", true); got != "✓ exported 2 classes" {
		t.Errorf("unexpected success line %q", got)
	}
}
