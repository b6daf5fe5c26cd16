package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/logging"
	"gorm.io/gorm/logger"
)

var routerDBCounter atomic.Int64

func setupRouter(t *testing.T, uploadDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", routerDBCounter.Add(1))
	gdb, err := db.Open(db.Options{Path: dsn, Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	api := handler.NewAPI(handler.Options{DB: gdb, Logger: logging.Discard(), AdminEmail: "admin@example.com"})
	r, err := SetupRouter(Options{
		API:           api,
		Logger:        logging.Discard(),
		SessionSecret: "test-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/static/uploads",
	})
	if err != nil {
		t.Fatalf("SetupRouter returned error: %v", err)
	}
	return r
}

func TestSetupRouterRequiresDependencies(t *testing.T) {
	if _, err := SetupRouter(Options{SessionSecret: "x"}); err == nil {
		t.Fatal("expected error without API")
	}
	api := handler.NewAPI(handler.Options{})
	if _, err := SetupRouter(Options{API: api}); err == nil {
		t.Fatal("expected error without session secret")
	}
}

func TestSetupRouterServesUploads(t *testing.T) {
	uploadDir := t.TempDir()
	fileName := "example.txt"
	fileContent := []byte("hello uploads")
	if err := os.WriteFile(filepath.Join(uploadDir, fileName), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r := setupRouter(t, uploadDir)

	req := httptest.NewRequest(http.MethodGet, "/static/uploads/"+fileName, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != string(fileContent) {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}

func TestSetupRouterServesEmbeddedAssets(t *testing.T) {
	r := setupRouter(t, t.TempDir())

	for _, path := range []string{"/static/assets/css/site.css", "/static/assets/js/site.js"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected %s to be served, got %d", path, rr.Code)
		}
	}
}

func TestSetupRouterRendersPages(t *testing.T) {
	r := setupRouter(t, t.TempDir())

	cases := []struct {
		path   string
		status int
		want   string
	}{
		{path: "/", status: http.StatusOK, want: "How would you like to explore?"},
		{path: "/blog", status: http.StatusOK, want: "No posts yet"},
		{path: "/blog/missing", status: http.StatusNotFound, want: "Post not found"},
		{path: "/auth", status: http.StatusOK, want: "Admin Access"},
		{path: "/admin-setup", status: http.StatusOK, want: "admin@example.com"},
		{path: "/nowhere", status: http.StatusNotFound, want: "404"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tc.want) {
				t.Fatalf("expected body to contain %q", tc.want)
			}
		})
	}
}

func TestAdminRedirectsAnonymousVisitors(t *testing.T) {
	r := setupRouter(t, t.TempDir())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/auth" {
		t.Fatalf("expected redirect to /auth, got %q", loc)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/api/projects", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for admin api, got %d", rr.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupRouter(t, t.TempDir())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected healthy status, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "portfolio_http_requests_total") {
		t.Fatalf("expected prometheus output, got %d", rr.Code)
	}
}

func TestPublicAPIListsSampleProjects(t *testing.T) {
	r := setupRouter(t, t.TempDir())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects?category=Music%20Production", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Melodic Rock Production") {
		t.Fatalf("expected music project in response, got %s", body)
	}
	if strings.Contains(body, "Phenomenon 2024") {
		t.Fatalf("expected web projects to be filtered out")
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/blogs/unknown", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown blog, got %d", rr.Code)
	}
}
