package service

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const defaultExcerptLength = 150

// Excerpt 从博客正文提取纯文本摘要，超出 limit 个字符时截断并追加省略号。
// 正文既可能是 HTML 也可能是 Markdown，先渲染再取文本。
func Excerpt(content string, limit int) string {
	if limit <= 0 {
		limit = defaultExcerptLength
	}

	rendered, err := RenderMarkdown(content)
	source := string(rendered)
	if err != nil {
		source = content
	}

	text := plainText(source)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

// 块级元素前后补空格，行内文本直接拼接。
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "table": true, "tr": true, "td": true, "th": true, "hr": true,
}

func plainText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "pre") {
			return
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			b.WriteByte(' ')
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
