package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/router"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
	"gorm.io/gorm/logger"
)

const (
	adminEmail = "owner@example.com"
	// cookiejar only matches absolute URLs, so every request carries a host.
	baseURL = "http://portfolio.test"
)

// localClient 直接调用 handler，并用 cookie jar 维持会话，不跟随重定向。
type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(t *testing.T, handler http.Handler) *localClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) *http.Response {
	for _, cookie := range c.jar.Cookies(req.URL) {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	c.jar.SetCookies(req.URL, resp.Cookies())
	return resp
}

func (c *localClient) get(path string) *http.Response {
	return c.Do(httptest.NewRequest(http.MethodGet, baseURL+path, nil))
}

func (c *localClient) postForm(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, baseURL+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

func (c *localClient) postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.Do(req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(raw)
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
}

func expectStatus(t *testing.T, step string, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s: expected status %d, got %d: %s", step, want, resp.StatusCode, readBody(t, resp))
	}
}

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(db.Options{
		Path:   "file:e2e?mode=memory&cache=shared",
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	uploadDir := t.TempDir()
	api := handler.NewAPI(handler.Options{
		DB:         gdb,
		Logger:     logging.Discard(),
		Cache:      service.NewContentCache(0),
		AdminEmail: adminEmail,
		Store:      storage.NewLocalStore(uploadDir, "/static/uploads"),
	})
	engine, err := router.SetupRouter(router.Options{
		API:           api,
		Logger:        logging.Discard(),
		SessionSecret: "e2e-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/static/uploads",
	})
	if err != nil {
		t.Fatalf("setup router: %v", err)
	}
	return engine
}

func TestVisitorAndAdminJourney(t *testing.T) {
	client := newLocalClient(t, setupServer(t))

	home := readBody(t, client.get("/"))
	if !strings.Contains(home, "How would you like to explore?") {
		t.Fatalf("expected role selector on first visit")
	}

	expectStatus(t, "choose role", client.postForm("/experience", url.Values{"role": {"recruiter"}}), http.StatusSeeOther)
	home = readBody(t, client.get("/"))
	if strings.Contains(home, "How would you like to explore?") {
		t.Fatalf("expected role selector hidden after choosing")
	}

	resp := client.get("/admin")
	expectStatus(t, "anonymous admin", resp, http.StatusFound)
	if loc := resp.Header.Get("Location"); loc != "/auth" {
		t.Fatalf("expected redirect to /auth, got %q", loc)
	}

	expectStatus(t, "admin setup", client.postForm("/admin-setup", url.Values{
		"password":         {"correct-horse"},
		"confirm_password": {"correct-horse"},
	}), http.StatusFound)

	dashboard := readBody(t, client.get("/admin"))
	if !strings.Contains(dashboard, "Admin Dashboard") {
		t.Fatalf("expected dashboard after setup")
	}

	expectStatus(t, "create project", client.postJSON(t, "/admin/api/projects", map[string]interface{}{
		"title":        "Tape Delay Plugin",
		"category":     "Audio Tools",
		"technologies": []string{"Go", "DSP"},
	}), http.StatusCreated)

	var projects struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
	}
	decode(t, client.get("/api/projects?category=Audio+Tools"), &projects)
	if len(projects.Projects) != 1 || projects.Projects[0].Title != "Tape Delay Plugin" {
		t.Fatalf("expected the new project in the public api, got %+v", projects.Projects)
	}
	decode(t, client.get("/api/projects"), &projects)
	if len(projects.Projects) != 1 {
		t.Fatalf("expected sample projects replaced by stored ones, got %d", len(projects.Projects))
	}

	expectStatus(t, "create blog", client.postJSON(t, "/admin/api/blogs", map[string]interface{}{
		"title":     "Building a Tape Delay",
		"content":   "Feedback and **wow** and flutter.",
		"published": true,
	}), http.StatusCreated)

	post := readBody(t, client.get("/blog/building-a-tape-delay"))
	if !strings.Contains(post, "<strong>wow</strong>") {
		t.Fatalf("expected rendered blog post")
	}

	expectStatus(t, "contact", client.postJSON(t, "/contact", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hiring question",
		"message": "Are you available for a summer internship?",
	}), http.StatusCreated)

	var contacts struct {
		Submissions []struct {
			Subject string `json:"subject"`
		} `json:"submissions"`
	}
	decode(t, client.get("/admin/api/contacts"), &contacts)
	if len(contacts.Submissions) != 1 || contacts.Submissions[0].Subject != "Hiring question" {
		t.Fatalf("unexpected submissions %+v", contacts.Submissions)
	}

	var summary service.AnalyticsSummary
	decode(t, client.get("/admin/api/analytics"), &summary)
	if summary.TotalViews < 2 {
		t.Fatalf("expected tracked public views, got %+v", summary)
	}
	for _, p := range summary.Pages {
		if strings.HasPrefix(p.Page, "/admin") {
			t.Fatalf("admin pages must not be tracked: %+v", p)
		}
	}

	expectStatus(t, "logout", client.get("/auth/logout"), http.StatusFound)
	expectStatus(t, "admin api after logout", client.get("/admin/api/projects"), http.StatusUnauthorized)
}
