package ui

import (
	"strings"
	"testing"
)

func withANSI(t *testing.T, enabled bool) {
	t.Helper()

	original := ansiEnabled
	ansiEnabled = func() bool {
		return enabled
	}
	t.Cleanup(func() {
		ansiEnabled = original
	})
}

func TestStylesArePlainWithoutANSI(t *testing.T) {
	withANSI(t, false)

	cases := []struct {
		got  string
		want string
	}{
		{got: Priority("high"), want: "high"},
		{got: Priority("weird"), want: "weird"},
		{got: Checkbox(true), want: "[x]"},
		{got: Checkbox(false), want: "[ ]"},
		{got: Muted("note"), want: "note"},
		{got: Heading("Todos"), want: "Todos"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, tc.got)
		}
	}
}

func TestStyledValuesKeepVisibleWidth(t *testing.T) {
	withANSI(t, true)

	got := Priority("medium")
	if !strings.Contains(got, "medium") {
		t.Fatalf("expected label in output, got %q", got)
	}
	if width := displayWidth(got); width != len("medium") {
		t.Fatalf("expected visible width 6, got %d", width)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("the quick brown fox jumps\nover", 10)

	want := "the quick\nbrown fox\njumps\nover"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
