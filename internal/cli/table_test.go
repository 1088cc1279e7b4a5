package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/imagepalette/internal/colour"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Name", "Age"})

	table.AddRow([]string{"Alice", "30"})
	table.AddRow([]string{"Bob"})
	table.AddRow([]string{"Charlie", "25", "Extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row padded with an empty cell, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Name", "City"})
	table.AddRow([]string{"Alice", "New York"})
	table.AddRow([]string{"Bob", "LA"})

	want := strings.Join([]string{
		"Name   City    ",
		"---------------",
		"Alice  New York",
		"Bob    LA      ",
		"---------------",
		"",
	}, "\n")
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderBorders(t *testing.T) {
	table := NewTable([]string{"a", "b"})
	table.SetBorders(" │ ", "─")
	table.SetBorderStyle(func(s string) string { return "<" + s + ">" })
	table.AddRow([]string{"xx", "y"})

	lines := strings.Split(table.Render(), "\n")
	if lines[0] != "a < │ >b" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "<"+strings.Repeat("─", 6)+">" {
		t.Errorf("rule = %q", lines[1])
	}
	if lines[2] != "xx< │ >y" {
		t.Errorf("row = %q", lines[2])
	}
}

func TestTableRenderIgnoresEscapes(t *testing.T) {
	old := colour.DisableColourOutput
	colour.DisableColourOutput = false
	t.Cleanup(func() { colour.DisableColourOutput = old })

	red := colour.MustColour(255, 0, 0)
	table := NewTable([]string{"swatch", "hex"})
	table.AddRow([]string{colour.ColourPreview(red, 4), red.Hex()})

	lines := strings.Split(table.Render(), "\n")
	for i, line := range lines[:3] {
		if got := colour.VisibleWidth(line); got != 15 {
			t.Errorf("line %d visible width = %d, want 15: %q", i, got, line)
		}
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}
}
