package service

import (
	"regexp"
	"strings"
)

// 编辑器实时预览使用的轻量转换器。替换顺序有意义，不追求符合 CommonMark。
var (
	previewH1         = regexp.MustCompile(`(?m)^# (.*)$`)
	previewH2         = regexp.MustCompile(`(?m)^## (.*)$`)
	previewH3         = regexp.MustCompile(`(?m)^### (.*)$`)
	previewBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	previewItalic     = regexp.MustCompile(`\*(.*?)\*`)
	previewImage      = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	previewLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	previewBullet     = regexp.MustCompile(`(?m)^- (.*)$`)
	previewNumbered   = regexp.MustCompile(`(?m)^(\d+)\. (.*)$`)
	previewListItem   = regexp.MustCompile(`<li>.*?</li>`)
	previewBlockquote = regexp.MustCompile(`(?m)^> (.*)$`)
	previewFence      = regexp.MustCompile("(?s)```(.*?)```")
)

// MarkdownPreview converts a small markdown subset to HTML for the editor preview pane.
// Malformed input degrades to partially converted output; it never fails.
//
// Each list item is wrapped on its own, and only items whose text begins with "1."
// become ordered lists.
func MarkdownPreview(markdown string) string {
	out := strings.ReplaceAll(markdown, "\r\n", "\n")

	out = previewH1.ReplaceAllString(out, "<h1>${1}</h1>")
	out = previewH2.ReplaceAllString(out, "<h2>${1}</h2>")
	out = previewH3.ReplaceAllString(out, "<h3>${1}</h3>")

	out = previewBold.ReplaceAllString(out, "<strong>${1}</strong>")
	out = previewItalic.ReplaceAllString(out, "<em>${1}</em>")

	// 图片需先于链接处理，否则 ![alt](src) 会被当作链接吞掉。
	out = previewImage.ReplaceAllString(out, `<img src="${2}" alt="${1}" />`)
	out = previewLink.ReplaceAllString(out, `<a href="${2}">${1}</a>`)

	out = previewBullet.ReplaceAllString(out, "<li>${1}</li>")
	out = previewNumbered.ReplaceAllString(out, "<li>${2}</li>")
	out = previewListItem.ReplaceAllStringFunc(out, func(item string) string {
		if strings.HasPrefix(item, "<li>1.") {
			return "<ol>" + item + "</ol>"
		}
		return "<ul>" + item + "</ul>"
	})

	out = previewBlockquote.ReplaceAllString(out, "<blockquote>${1}</blockquote>")
	out = previewFence.ReplaceAllString(out, "<pre><code>${1}</code></pre>")

	out = wrapPreviewParagraphs(out)

	return strings.ReplaceAll(out, "\n", "<br>")
}

func wrapPreviewParagraphs(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" || !needsParagraph(line) {
			continue
		}
		lines[i] = "<p>" + line + "</p>"
	}
	return strings.Join(lines, "\n")
}

func needsParagraph(line string) bool {
	for _, prefix := range []string{"<o", "<h", "<li", "<blockquote"} {
		if strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}
