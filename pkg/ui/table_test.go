package ui

import (
	"strings"
	"testing"
)

func TestPadString(t *testing.T) {
	tests := []struct {
		in, align, want string
		width           int
	}{
		{"ab", "left", "ab  ", 4},
		{"ab", "right", "  ab", 4},
		{"ab", "center", " ab ", 4},
		{"abcdef", "left", "abcdef", 4},
		{"µs", "right", "  µs", 4},
	}
	for _, tt := range tests {
		if got := padString(tt.in, tt.width, tt.align); got != tt.want {
			t.Errorf("padString(%q, %d, %q) = %q, want %q", tt.in, tt.width, tt.align, got, tt.want)
		}
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]TableColumn{{Header: "NAME"}, {Header: "KIND"}, {Header: "MIN", Align: "right"}})
	table.AddRow("Temperature", "numeric", "18")
	table.AddRow("Site", "text")

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and two rows, got %d lines:\n%s", len(lines), out)
	}
	for _, want := range []string{"NAME", "Temperature", "numeric", "Site"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q", want)
		}
	}

	if NewTable(nil).Render() != "" {
		t.Errorf("expected an empty table to render nothing")
	}
}
