package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestRenderRecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := Render(renderWidth, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestRenderBlankInput(t *testing.T) {
	if out := Render(80, 0, []byte(" \n\n")); out != nil {
		t.Fatalf("expected nil for blank input, got %q", out)
	}
}

func TestRenderIndentsEveryLine(t *testing.T) {
	out := Render(40, 2, []byte("# Title\n\nSome text.\n"))
	if len(out) == 0 {
		t.Fatal("expected output")
	}
	for _, line := range strings.Split(string(out), "\n") {
		if line != "" && !strings.HasPrefix(line, "  ") {
			t.Fatalf("expected indented line, got %q", line)
		}
	}
	if !strings.Contains(string(out), "Title") {
		t.Fatalf("expected heading text, got %q", out)
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML([]byte("# State\r\n\r\nThe **todo store** keeps tasks.\r\n"))
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "<h1>State</h1>") {
		t.Fatalf("expected heading, got %q", got)
	}
	if !strings.Contains(got, "<strong>todo store</strong>") {
		t.Fatalf("expected strong text, got %q", got)
	}
}
