package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"heading", "# About me", []string{`<h1 id="about-me">About me</h1>`}},
		{"emphasis", "I make **videos**", []string{"<strong>videos</strong>"}},
		{"autolink", "see https://example.com", []string{`<a href="https://example.com">https://example.com</a>`}},
		{"hard wrap", "line one\nline two", []string{"line one<br>"}},
		{"raw html", `<span class="x">hi</span>`, []string{`<span class="x">hi</span>`}},
		{"code block", "```go\nfunc main() {}\n```", []string{"<pre", "func"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.source, got, w)
				}
			}
		})
	}
}

func TestToHTMLEmpty(t *testing.T) {
	got, err := ToHTML("")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if got != "" {
		t.Errorf("ToHTML(\"\") = %q, want empty", got)
	}
}
