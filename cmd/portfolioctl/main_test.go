package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PaulBabatuyi/portfolio-cms/internal/client"
	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// fakeAPI records calls and answers the routes the console uses.
type fakeAPI struct {
	mu      sync.Mutex
	calls   []string
	expired atomic.Bool
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if f.expired.Load() {
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "Session expired. Please login again.", "code": "session_expired"})
				return
			}
			if r.Header.Get("Authorization") != "Bearer tok" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required"})
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var body struct{ Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid passkey"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok", "expiresAt": time.Now().Add(time.Hour)})
	})
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, []data.Project{{ID: "p1", Title: "Poster", Category: data.CategoryBranding}})
	})
	mux.HandleFunc("GET /messages", authed(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, []data.Message{{ID: "m1", Name: "Ann", Email: "ann@x.com", Message: "Hello", Date: 1}})
	}))
	mux.HandleFunc("DELETE /messages/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
	}))
	mux.HandleFunc("DELETE /messages", authed(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, data.BatchDeleteResult{Deleted: 3, Missing: []string{}})
	}))
	mux.HandleFunc("PUT /settings", authed(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, data.SiteSettings{DesignerName: "Ada"})
	}))
	return mux
}

type harness struct {
	t       *testing.T
	api     *fakeAPI
	server  *httptest.Server
	session string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("PORTFOLIO_API_URL", "")
	t.Setenv("API_URL", "")
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return &harness{t: t, api: api, server: srv, session: filepath.Join(t.TempDir(), "session.json")}
}

// run executes the console with stdin and returns stdout and the error.
func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out, &errOut)
	root := newRootCmd(a)
	root.SetArgs(append([]string{"--api", h.server.URL, "--session", h.session}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) loadSession() *client.Session {
	h.t.Helper()
	s, err := client.LoadSession(h.session)
	if err != nil {
		h.t.Fatal(err)
	}
	return s
}

func TestLoginAndLogout(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run("wrong\n", "login"); err == nil || !strings.Contains(err.Error(), "invalid passkey") {
		t.Fatalf("expected invalid passkey, got %v", err)
	}
	if h.loadSession().IsLoggedIn() {
		t.Fatal("failed login must not store a token")
	}

	out, err := h.run("secret\n", "login")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in") || h.loadSession().Token != "tok" {
		t.Fatalf("token not stored: %q", out)
	}

	if _, err := h.run("", "logout"); err != nil {
		t.Fatal(err)
	}
	if h.loadSession().IsLoggedIn() {
		t.Fatal("logout should clear the token")
	}
}

func TestCommandsNeedLogin(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("", "messages", "list"); err != errNotLoggedIn {
		t.Fatalf("expected errNotLoggedIn, got %v", err)
	}
	out, err := h.run("", "projects", "list")
	if err != nil || !strings.Contains(out, "Poster") {
		t.Fatalf("projects list is public: %v %q", err, out)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("secret\n", "login"); err != nil {
		t.Fatal(err)
	}

	out, err := h.run("n\n", "messages", "delete", "m1")
	if err != nil || !strings.Contains(out, "Cancelled") {
		t.Fatalf("decline: %v %q", err, out)
	}
	if h.api.called("DELETE /messages/m1") {
		t.Fatal("declined delete reached the API")
	}

	out, err = h.run("y\n", "messages", "delete", "m1")
	if err != nil || !h.api.called("DELETE /messages/m1") {
		t.Fatalf("confirmed delete: %v %q", err, out)
	}

	out, err = h.run("", "--yes", "messages", "clear")
	if err != nil || !strings.Contains(out, "3 deleted") {
		t.Fatalf("clear: %v %q", err, out)
	}
}

func TestExpiredSessionLogsOut(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("secret\n", "login"); err != nil {
		t.Fatal(err)
	}
	h.api.expired.Store(true)
	_, err := h.run("", "settings", "set", "designerName", "Ada")
	if err == nil || !strings.Contains(err.Error(), "Session expired") {
		t.Fatalf("expected session expired, got %v", err)
	}
	if h.loadSession().IsLoggedIn() {
		t.Fatal("expired session should be cleared")
	}
}

func TestReply(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("secret\n", "login"); err != nil {
		t.Fatal(err)
	}
	var opened *url.URL
	prev := openBrowser
	openBrowser = func(u *url.URL) error {
		opened = u
		return nil
	}
	t.Cleanup(func() { openBrowser = prev })

	out, err := h.run("", "messages", "reply", "m1", "--open")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "mailto:ann@x.com?subject=Re%3A%20Portfolio%20Inquiry%20from%20Ann") {
		t.Fatalf("unexpected link %q", out)
	}
	if opened == nil || opened.Opaque != "ann@x.com" {
		t.Fatalf("browser not opened with the link: %v", opened)
	}

	if _, err := h.run("", "messages", "reply", "nope"); err == nil {
		t.Fatal("unknown message should fail")
	}
}

func TestConfigAPIURL(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("", "config", "api-url", "https://cms.example/api/"); err != nil {
		t.Fatal(err)
	}
	if got := h.loadSession().APIOverride; got != "https://cms.example/api" {
		t.Fatalf("override %q", got)
	}
	if _, err := h.run("", "config", "api-url", "ftp://x"); err == nil {
		t.Fatal("non-http URL should be rejected")
	}
	if _, err := h.run("", "config", "api-url", "--unset"); err != nil {
		t.Fatal(err)
	}
	if got := h.loadSession().APIOverride; got != "" {
		t.Fatalf("override not cleared: %q", got)
	}
}
