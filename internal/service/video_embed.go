package service

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	videoEmbedLinePattern = regexp.MustCompile(`^\s*<?((?:https?://)?[^\s]+)>?\s*$`)
	videoEmbedSrcPattern  = regexp.MustCompile(`^https://(?:www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`)
	videoEmbedTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
	listIndexPattern      = regexp.MustCompile(`^\d+\.\s+`)
)

type videoEmbed struct {
	Platform string
	EmbedURL string
}

// applyVideoEmbeds 把正文中独占一行的视频链接替换为 iframe，代码块、引用和列表内的链接保持原样。
func applyVideoEmbeds(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return markdown
	}

	lines := strings.Split(markdown, "\n")
	fence := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if marker := detectFenceMarker(trimmed); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case strings.HasPrefix(trimmed, fence):
				fence = ""
			}
			continue
		}
		if fence != "" || isIndentedCodeLine(line) || shouldSkipEmbedLine(trimmed) {
			continue
		}

		match := videoEmbedLinePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		embed, ok := parseVideoEmbed(match[1])
		if !ok {
			continue
		}
		lines[i] = buildVideoEmbedHTML(embed)
	}
	return strings.Join(lines, "\n")
}

func detectFenceMarker(line string) string {
	switch {
	case strings.HasPrefix(line, "```"):
		return "```"
	case strings.HasPrefix(line, "~~~"):
		return "~~~"
	}
	return ""
}

func isIndentedCodeLine(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func shouldSkipEmbedLine(line string) bool {
	if line == "" || strings.HasPrefix(line, ">") {
		return true
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	return listIndexPattern.MatchString(line)
}

func parseVideoEmbed(raw string) (videoEmbed, bool) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(raw), "<"), ">")
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Hostname() == "" {
		return videoEmbed{}, false
	}

	if embed, ok := parseYouTubeEmbed(u); ok {
		return embed, true
	}
	return parseVimeoEmbed(u)
}

func parseYouTubeEmbed(u *url.URL) (videoEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")
	var videoID string

	switch {
	case host == "youtu.be":
		videoID = path
	case isHostOrSubdomain(host, "youtube.com"):
		switch {
		case path == "watch":
			videoID = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			videoID = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			videoID = strings.TrimPrefix(path, "embed/")
		}
	default:
		return videoEmbed{}, false
	}

	videoID, _, _ = strings.Cut(videoID, "/")
	if videoID == "" {
		return videoEmbed{}, false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("modestbranding", "1")
	if start := parseYouTubeStart(u.Query()); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}

	return videoEmbed{
		Platform: "youtube",
		EmbedURL: fmt.Sprintf("https://www.youtube-nocookie.com/embed/%s?%s", url.PathEscape(videoID), values.Encode()),
	}, true
}

func parseVimeoEmbed(u *url.URL) (videoEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	if !isHostOrSubdomain(host, "vimeo.com") {
		return videoEmbed{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if host == "player.vimeo.com" && len(segments) >= 2 && segments[0] == "video" {
		segments = segments[1:]
	}
	if len(segments) == 0 || !onlyDigits(segments[0]) {
		return videoEmbed{}, false
	}

	return videoEmbed{
		Platform: "vimeo",
		EmbedURL: "https://player.vimeo.com/video/" + segments[0],
	}, true
}

func parseYouTubeStart(query url.Values) int {
	value := query.Get("start")
	if value == "" {
		value = query.Get("t")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if onlyDigits(value) {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return seconds
	}

	total := 0
	for _, match := range videoEmbedTimePattern.FindAllStringSubmatch(value, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func onlyDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func isHostOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func buildVideoEmbedHTML(embed videoEmbed) string {
	return fmt.Sprintf(
		`<div class="video-embed" data-video-embed="true" data-video-platform="%s">`+
			`<iframe src="%s" title="Embedded video" loading="lazy" allow="autoplay; encrypted-media; picture-in-picture" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
			`</div>`,
		htmlstd.EscapeString(embed.Platform),
		htmlstd.EscapeString(embed.EmbedURL),
	)
}
