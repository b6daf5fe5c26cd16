package handler

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"testing"

	"github.com/portfolio/internal/service"
)

func seedBlogs(t *testing.T, srv *testServer) {
	t.Helper()
	ctx := context.Background()
	blogs := service.NewBlogService(srv.db, nil)

	if _, err := blogs.Create(ctx, service.BlogInput{
		Title:     "Mixing Vocals at Home",
		Content:   "# Mixing\n\nStart with **gain staging**.<script>alert(1)</script>",
		Tags:      []string{"music"},
		Published: true,
	}); err != nil {
		t.Fatalf("create published blog: %v", err)
	}
	if _, err := blogs.Create(ctx, service.BlogInput{
		Title:   "Unfinished Draft",
		Content: "not ready",
	}); err != nil {
		t.Fatalf("create draft blog: %v", err)
	}
}

func TestShowBlogListOnlyPublished(t *testing.T) {
	srv := newTestServer(t, nil)
	seedBlogs(t, srv)

	if rec := srv.get("/blog"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	posts, _ := srv.html.lastData["posts"].([]blogCard)
	if len(posts) != 1 {
		t.Fatalf("expected one published post, got %d", len(posts))
	}
	if posts[0].Slug != "mixing-vocals-at-home" {
		t.Fatalf("unexpected slug %q", posts[0].Slug)
	}
	if strings.Contains(posts[0].Excerpt, "#") || strings.Contains(posts[0].Excerpt, "<script>") {
		t.Fatalf("expected plain text excerpt, got %q", posts[0].Excerpt)
	}
}

func TestShowBlogPost(t *testing.T) {
	srv := newTestServer(t, nil)
	seedBlogs(t, srv)

	rec := srv.get("/blog/mixing-vocals-at-home")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	content, _ := srv.html.lastData["content"].(template.HTML)
	if !strings.Contains(string(content), "<strong>gain staging</strong>") {
		t.Fatalf("expected rendered markdown, got %q", content)
	}
	if strings.Contains(string(content), "<script>") {
		t.Fatalf("expected sanitized output, got %q", content)
	}

	rec = srv.get("/blog/unfinished-draft")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected drafts to be hidden, got %d", rec.Code)
	}
	if srv.html.lastData["notFound"] != true {
		t.Fatalf("expected notFound flag for drafts")
	}
}
