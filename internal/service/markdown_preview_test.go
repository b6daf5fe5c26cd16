package service

import (
	"strings"
	"testing"
)

func TestMarkdownPreview(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{name: "bold", input: "**bold**", contains: []string{"<strong>bold</strong>"}},
		{name: "h1", input: "# Title", contains: []string{"<h1>Title</h1>"}, excludes: []string{"<p><h1>"}},
		{name: "h2 and h3", input: "## Sub\n### Minor", contains: []string{"<h2>Sub</h2>", "<h3>Minor</h3>", "</h2><br><h3>"}},
		{name: "italic", input: "an *idea*", contains: []string{"<p>an <em>idea</em></p>"}},
		{name: "link", input: "[site](https://example.com)", contains: []string{`<a href="https://example.com">site</a>`}},
		{name: "image", input: "![cover](/img/a.png)", contains: []string{`<img src="/img/a.png" alt="cover" />`}},
		{name: "bullet", input: "- one", contains: []string{"<ul><li>one</li></ul>"}},
		{name: "numbered becomes unordered", input: "1. first", contains: []string{"<ul><li>first</li></ul>"}},
		{name: "item starting with 1.", input: "- 1.5x speed", contains: []string{"<ol><li>1.5x speed</li></ol>"}},
		{name: "blockquote", input: "> quoted", contains: []string{"<blockquote>quoted</blockquote>"}, excludes: []string{"<p><blockquote>"}},
		{name: "fenced code", input: "```\nx := 1\n```", contains: []string{"<pre><code>", "x := 1", "</code></pre>"}},
		{name: "paragraphs and breaks", input: "first\nsecond", contains: []string{"<p>first</p><br><p>second</p>"}},
		{name: "blank lines stay bare", input: "a\n\nb", contains: []string{"<p>a</p><br><br><p>b</p>"}},
		{name: "unbalanced markup degrades", input: "**open and [broken](", contains: []string{"<p>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownPreview(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in %q", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("did not expect %q in %q", unwanted, got)
				}
			}
		})
	}
}

func TestMarkdownPreviewEmpty(t *testing.T) {
	if got := MarkdownPreview(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
