package todos

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/louisbranch/todos/internal/sessions"
	"github.com/louisbranch/todos/internal/sessions/memory"
	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/storage/session"
	"github.com/louisbranch/todos/internal/storage/sqlite"
	"golang.org/x/net/html"
)

type backend struct {
	name     string
	provider func(t *testing.T) storage.Provider
}

func backends() []backend {
	return []backend{
		{name: "session", provider: func(*testing.T) storage.Provider { return session.NewProvider() }},
		{name: "sqlite", provider: func(t *testing.T) storage.Provider {
			t.Helper()
			db, err := sqlite.Open(t.Context(), filepath.Join(t.TempDir(), "todos.db"))
			if err != nil {
				t.Fatalf("sqlite.Open() error = %v", err)
			}
			t.Cleanup(func() { _ = db.Close() })
			return db
		}},
	}
}

func newTestConfig(t *testing.T, provider storage.Provider) Config {
	t.Helper()
	signer, err := sessions.NewSigner(strings.Repeat("k", sessions.MinSecretLength), time.Now)
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}
	return Config{
		HTTPAddr:   "127.0.0.1:0",
		Provider:   provider,
		Registry:   memory.New(time.Now),
		Signer:     signer,
		SessionTTL: time.Hour,
		Logger:     charmlog.New(io.Discard),
	}
}

type testApp struct {
	t      *testing.T
	server *httptest.Server
}

func newTestApp(t *testing.T, provider storage.Provider) *testApp {
	t.Helper()
	handler, err := NewHandler(newTestConfig(t, provider))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &testApp{t: t, server: server}
}

// visitor is one browser: its own cookie jar, no automatic redirects.
type visitor struct {
	app    *testApp
	client *http.Client
}

func (a *testApp) visitor() *visitor {
	a.t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		a.t.Fatalf("cookiejar.New() error = %v", err)
	}
	return &visitor{app: a, client: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

type response struct {
	status   int
	location string
	body     string
	header   http.Header
}

func (v *visitor) do(req *http.Request) response {
	v.app.t.Helper()
	res, err := v.client.Do(req)
	if err != nil {
		v.app.t.Fatalf("%s %s error = %v", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		v.app.t.Fatalf("read body: %v", err)
	}
	return response{status: res.StatusCode, location: res.Header.Get("Location"), body: string(body), header: res.Header}
}

func (v *visitor) get(path string) response {
	v.app.t.Helper()
	req, err := http.NewRequest(http.MethodGet, v.app.server.URL+path, nil)
	if err != nil {
		v.app.t.Fatalf("NewRequest() error = %v", err)
	}
	return v.do(req)
}

func (v *visitor) post(path string, form url.Values, headers ...string) response {
	v.app.t.Helper()
	req, err := http.NewRequest(http.MethodPost, v.app.server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		v.app.t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return v.do(req)
}

func (v *visitor) createList(name string) {
	v.app.t.Helper()
	res := v.post("/lists", url.Values{"list_name": {name}})
	if res.status != http.StatusFound || res.location != "/lists" {
		v.app.t.Fatalf("create list %q = %d %q, want 302 /lists", name, res.status, res.location)
	}
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if match(node) {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for _, node := range findAll(n, func(node *html.Node) bool { return node.Type == html.TextNode }) {
		b.WriteString(node.Data)
	}
	return strings.TrimSpace(b.String())
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	}
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// flashText returns the rendered notice, or "" when none.
func flashText(t *testing.T, body string) string {
	t.Helper()
	nodes := findAll(parseHTML(t, body), byID("flash"))
	if len(nodes) == 0 {
		return ""
	}
	return textOf(nodes[0])
}

// headings returns the h3 texts in document order: list names on the index,
// todo names on a list page.
func headings(t *testing.T, body string) []string {
	t.Helper()
	var out []string
	for _, n := range findAll(parseHTML(t, body), byTag("h3")) {
		out = append(out, textOf(n))
	}
	return out
}

func completedItems(t *testing.T, body string) []string {
	t.Helper()
	var out []string
	for _, n := range findAll(parseHTML(t, body), byTag("li")) {
		if attr(n, "class") == "complete" {
			for _, h := range findAll(n, byTag("h3")) {
				out = append(out, textOf(h))
			}
		}
	}
	return out
}

func inputValue(t *testing.T, body, name string) string {
	t.Helper()
	for _, n := range findAll(parseHTML(t, body), byTag("input")) {
		if attr(n, "name") == name {
			return attr(n, "value")
		}
	}
	t.Fatalf("input %q not found", name)
	return ""
}
