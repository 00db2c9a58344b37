package guide

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/learnpb/internal/llm"
)

func TestGenerateSanitizesContent(t *testing.T) {
	mock := llm.NewMockProvider(`{"content": "<h2>Introduction</h2><script>alert(1)</script><p onclick=\"x()\">Python is a language.</p>"}`)
	svc := NewService(mock, DefaultConfig())

	g, err := svc.Generate(context.Background(), "Python")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if strings.Contains(g.Content, "script") {
		t.Errorf("script tag survived sanitization: %q", g.Content)
	}
	if strings.Contains(g.Content, "onclick") {
		t.Errorf("event handler attribute survived sanitization: %q", g.Content)
	}
	if !strings.Contains(g.Content, "<h2>Introduction</h2>") {
		t.Errorf("allowed heading stripped: %q", g.Content)
	}
	if !strings.Contains(g.Content, "<p>Python is a language.</p>") {
		t.Errorf("allowed paragraph mangled: %q", g.Content)
	}
}

func TestGenerateTagsPurpose(t *testing.T) {
	mock := llm.NewMockProvider(`{"content": "<h2>Introduction</h2>"}`)
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Generate(context.Background(), "C"); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got := llm.PurposeFrom(mock.Calls[0].Ctx); got != "module-guide" {
		t.Errorf("purpose = %q, want %q", got, "module-guide")
	}
	if mock.Calls[0].Request.Schema != GuideSchema {
		t.Error("request did not carry the guide schema")
	}
}

func TestGenerateEmptyContent(t *testing.T) {
	for _, body := range []string{`{}`, `{"content": ""}`} {
		mock := llm.NewMockProvider(body)
		svc := NewService(mock, DefaultConfig())

		_, err := svc.Generate(context.Background(), "Java")
		var invalid *llm.ErrInvalidResponse
		if !errors.As(err, &invalid) {
			t.Errorf("Generate(%s) error = %v, want ErrInvalidResponse", body, err)
		}
	}
}

func TestSanitizeAllowList(t *testing.T) {
	in := `<h2>A</h2><h3 class="x">B</h3><ul><li>one</li></ul><pre><code>x := 1</code></pre><a href="http://evil">link</a><img src="x">`
	out := Sanitize(in)

	for _, want := range []string{"<h2>A</h2>", "<h3>B</h3>", "<li>one</li>", "<pre><code>x := 1</code></pre>"} {
		if !strings.Contains(out, want) {
			t.Errorf("Sanitize dropped %q; got %q", want, out)
		}
	}
	for _, forbidden := range []string{"<a", "<img", "href", "class"} {
		if strings.Contains(out, forbidden) {
			t.Errorf("Sanitize kept %q; got %q", forbidden, out)
		}
	}
}

func TestRenderHeadingsAndLists(t *testing.T) {
	fragment := `<h2>Key Concepts</h2><p>Variables hold values.</p><ul><li>first</li><li>second</li></ul>`
	out := Render(fragment, 60)

	for _, want := range []string{"Key Concepts", "Variables hold values.", "first", "second", "•"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<") {
		t.Errorf("Render leaked markup:\n%s", out)
	}
}

func TestRenderCodeBlockPreservesLines(t *testing.T) {
	fragment := "<pre><code>x = 1\ny = 2</code></pre>"
	out := Render(fragment, 60)

	if !strings.Contains(out, "x = 1") || !strings.Contains(out, "y = 2") {
		t.Errorf("Render lost code lines:\n%s", out)
	}
}

func TestRenderMalformedFragment(t *testing.T) {
	out := Render("<h2>Unclosed<p>still text", 40)
	if !strings.Contains(out, "Unclosed") || !strings.Contains(out, "still text") {
		t.Errorf("Render dropped recoverable text:\n%s", out)
	}
}
