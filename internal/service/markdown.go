package service

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	contentSanitizer = buildContentSanitizer()
)

func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-video-embed", "data-video-platform").OnElements("div")
	policy.AllowAttrs("src").Matching(videoEmbedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// RenderMarkdown 将博客正文（Markdown 或已有的 HTML）渲染为经过清洗的 HTML。
// 单独成行的 YouTube / Vimeo 链接会被替换为内嵌播放器。
func RenderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(applyVideoEmbeds(content)), &buf); err != nil {
		return "", err
	}
	safe := contentSanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

// SanitizeHTML strips anything outside the user-content policy.
func SanitizeHTML(raw string) string {
	return contentSanitizer.Sanitize(raw)
}

// RenderPreview runs the editor preview converter and sanitizes the result.
func RenderPreview(markdown string) template.HTML {
	return template.HTML(SanitizeHTML(MarkdownPreview(markdown)))
}
