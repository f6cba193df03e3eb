package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		httpClient: ts.server.Client(),
	}
}

func stubClient(t *testing.T, ts *testServer) {
	t.Helper()
	old := newAPIClient
	newAPIClient = func() (*apiClient, error) { return ts.client(), nil }
	t.Cleanup(func() { newAPIClient = old })
}

func TestProfileSetTypeCommand(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /profile/type": `{"profile":{"type":"client"}}`,
	})
	stubClient(t, ts)

	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs([]string{"profile", "set-type", "client"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	r := ts.requests[0]
	if r.Method != "POST" || r.Path != "/profile/type" {
		t.Errorf("request: %s %s", r.Method, r.Path)
	}

	var body map[string]string
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body["type"] != "client" {
		t.Errorf("body.type = %q, want client", body["type"])
	}
}

func TestProfileClearRequiresConfirm(t *testing.T) {
	ts := newTestServer(t, nil)
	stubClient(t, ts)

	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs([]string{"profile", "clear"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 0 {
		t.Errorf("clear without --confirm sent %d requests", len(ts.requests))
	}
}

func TestConsentCommand(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"PUT /consent": `{"granted":true}`,
	})
	stubClient(t, ts)

	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs([]string{"consent", "grant"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	if !strings.Contains(ts.requests[0].Body, `"granted":true`) {
		t.Errorf("body: %s", ts.requests[0].Body)
	}
}

func TestConsentCommand_InvalidArg(t *testing.T) {
	ts := newTestServer(t, nil)
	stubClient(t, ts)

	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs([]string{"consent", "maybe"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for invalid consent argument")
	}
}

func TestContentCommand_LangQuery(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /content": `{"language":"de","content":{}}`,
	})
	stubClient(t, ts)

	defer rootCmd.SetArgs(nil)
	rootCmd.SetArgs([]string{"content", "--lang", "de"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	if ts.requests[0].Path != "/content?lang=de" {
		t.Errorf("path: %s", ts.requests[0].Path)
	}
}

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if got := colorize(colorGreen, "ok"); got != "ok" {
		t.Errorf("colorize with noColor=true: %q", got)
	}

	noColor = false
	if got := colorize(colorGreen, "ok"); !strings.Contains(got, "\033[32m") {
		t.Errorf("colorize with noColor=false: %q", got)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := pidFilePath(dir)

	if err := writePIDFile(path); err != nil {
		t.Fatalf("writePIDFile: %v", err)
	}
	pid, err := readPIDFile(path)
	if err != nil {
		t.Fatalf("readPIDFile: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("pid: got %d, want %d", pid, os.Getpid())
	}

	removePIDFile(path)
	if _, err := os.Stat(filepath.Join(dir, "persona.pid")); !os.IsNotExist(err) {
		t.Error("PID file not removed")
	}
}
