package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kalambet/persona/internal/content"
	"github.com/kalambet/persona/internal/device"
	"github.com/kalambet/persona/internal/profile"
	"github.com/kalambet/persona/internal/storage"
	"github.com/kalambet/persona/internal/tracker"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingSink struct {
	events []string
}

func (s *recordingSink) Track(name string, data map[string]any) {
	s.events = append(s.events, name)
}

type fakeChatter struct {
	priming string
	reply   string
	err     error
}

func (f *fakeChatter) Ask(ctx context.Context, question, priming string) (string, error) {
	f.priming = priming
	return f.reply, f.err
}

func setupHandler(t *testing.T, chatter Chatter) (http.Handler, *profile.Store, *recordingSink) {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := profile.NewStore(db, device.Facts{AcceptLanguage: "en-US"}, "")
	sink := &recordingSink{}

	handler := NewHandler(Deps{
		Store:   store,
		Tracker: tracker.New(store, time.Minute),
		Adapter: &content.Adapter{
			OwnerName: "Khalil Charfi",
			StartYear: 2019,
			Clock:     fixedClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
		Sink:            sink,
		Chat:            chatter,
		Events:          db,
		DefaultLanguage: "en",
	})
	return handler, store, sink
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type sessionResponse struct {
	SessionID string              `json:"sessionId"`
	Profile   profile.UserProfile `json:"profile"`
	Bundle    contentBundle       `json:"bundle"`
}

func TestHealth(t *testing.T) {
	h, _, _ := setupHandler(t, nil)
	w := doJSON(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestSessionLinkedInHiringCampaign(t *testing.T) {
	h, _, sink := setupHandler(t, nil)

	w := doJSON(t, h, http.MethodPost, "/session", `{
		"referrer": "https://www.linkedin.com/feed/",
		"url": "https://example.com/?utm_source=linkedin&utm_campaign=hiring2024",
		"device": {"userAgent": "Mozilla/5.0", "acceptLanguage": "en-US"}
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", w.Code, w.Body.String())
	}

	var resp sessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("missing session ID")
	}
	if resp.Profile.Source != profile.SourceLinkedIn {
		t.Errorf("source: %q", resp.Profile.Source)
	}
	if resp.Profile.Type != profile.TypeHeadHunter {
		t.Errorf("type: %q", resp.Profile.Type)
	}
	if resp.Profile.Intent != profile.IntentHiring {
		t.Errorf("intent: %q", resp.Profile.Intent)
	}
	if resp.Bundle.Content.Home.Greeting != "Professional Full-Stack Developer" {
		t.Errorf("greeting: %q", resp.Bundle.Content.Home.Greeting)
	}

	found := false
	for _, e := range sink.events {
		if e == "session_start" {
			found = true
		}
	}
	if !found {
		t.Error("session_start event not tracked")
	}
}

func TestSessionDirectVisit(t *testing.T) {
	h, _, _ := setupHandler(t, nil)

	w := doJSON(t, h, http.MethodPost, "/session", `{"referrer": "", "url": "https://example.com/"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Profile.Source != profile.SourceDirect {
		t.Errorf("source: %q", resp.Profile.Source)
	}
	if resp.Profile.Type != profile.TypeUnknown {
		t.Errorf("type: %q", resp.Profile.Type)
	}
	if resp.Bundle.Content.Home.Greeting == "" {
		t.Error("empty greeting for unknown visitor")
	}
}

func TestSessionInvalidBody(t *testing.T) {
	h, _, _ := setupHandler(t, nil)
	w := doJSON(t, h, http.MethodPost, "/session", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: %d", w.Code)
	}
}

func TestSetTypeOverride(t *testing.T) {
	h, store, sink := setupHandler(t, nil)

	w := doJSON(t, h, http.MethodPost, "/profile/type", `{"type": "client"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if got := store.Profile().Type; got != profile.TypeClient {
		t.Errorf("type after override: %q", got)
	}

	// Unknown values are a no-op, not an error.
	w = doJSON(t, h, http.MethodPost, "/profile/type", `{"type": "alien"}`)
	if w.Code != http.StatusNoContent {
		t.Errorf("status for invalid type: %d", w.Code)
	}
	if got := store.Profile().Type; got != profile.TypeClient {
		t.Errorf("type changed by invalid override: %q", got)
	}

	found := false
	for _, e := range sink.events {
		if e == "visitor_type_override" {
			found = true
		}
	}
	if !found {
		t.Error("override event not tracked")
	}
}

func TestPatchPreferencesIsPartial(t *testing.T) {
	h, store, _ := setupHandler(t, nil)

	w := doJSON(t, h, http.MethodPatch, "/profile/preferences", `{"theme": "dark"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}

	prefs := store.Profile().Preferences
	if prefs.Theme != "dark" {
		t.Errorf("theme: %q", prefs.Theme)
	}
	if prefs.PreferredLanguage != "en" {
		t.Errorf("untouched field lost: language %q", prefs.PreferredLanguage)
	}
}

func TestDeleteProfile(t *testing.T) {
	h, store, _ := setupHandler(t, nil)

	doJSON(t, h, http.MethodPost, "/profile/type", `{"type": "head_hunter"}`)
	w := doJSON(t, h, http.MethodDelete, "/profile", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status: %d", w.Code)
	}
	if got := store.Profile().Type; got != profile.TypeUnknown {
		t.Errorf("type after clear: %q", got)
	}
}

func TestConsentFlow(t *testing.T) {
	h, store, _ := setupHandler(t, nil)

	doJSON(t, h, http.MethodPost, "/profile/type", `{"type": "client"}`)
	if store.Consent() {
		t.Fatal("consent granted by default")
	}

	w := doJSON(t, h, http.MethodPut, "/consent", `{"granted": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if !store.Consent() {
		t.Error("consent not granted")
	}

	// Revocation stops writes but keeps the profile.
	doJSON(t, h, http.MethodPut, "/consent", `{"granted": false}`)
	if store.Consent() {
		t.Error("consent not revoked")
	}
	if got := store.Profile().Type; got != profile.TypeClient {
		t.Errorf("profile lost on revocation: %q", got)
	}
}

func TestContentLanguage(t *testing.T) {
	h, _, _ := setupHandler(t, nil)

	w := doJSON(t, h, http.MethodGet, "/content?lang=de", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}

	var b contentBundle
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decoding bundle: %v", err)
	}
	if b.Language != "de" {
		t.Errorf("language: %q", b.Language)
	}
	if b.Content.Contact.Title != "Kontakt" {
		t.Errorf("contact title: %q", b.Content.Contact.Title)
	}
	if len(b.SectionPriority) == 0 {
		t.Error("missing section priority")
	}
	if b.CTA.Text == "" {
		t.Error("missing CTA")
	}
}

func TestScrollEvent(t *testing.T) {
	h, store, _ := setupHandler(t, nil)

	w := doJSON(t, h, http.MethodPost, "/events/scroll", `{"scrollY": 360, "documentHeight": 2000, "viewportHeight": 800}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status: %d", w.Code)
	}
	if got := store.Profile().SessionData.ScrollDepth; got != 30 {
		t.Errorf("scroll depth: %d", got)
	}
}

func TestSectionEventInvalidAction(t *testing.T) {
	h, _, _ := setupHandler(t, nil)
	w := doJSON(t, h, http.MethodPost, "/events/section", `{"section": "about", "action": "hover"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: %d", w.Code)
	}
}

func TestChatUnconfigured(t *testing.T) {
	h, _, _ := setupHandler(t, nil)
	w := doJSON(t, h, http.MethodPost, "/chat", `{"message": "hi"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status: %d", w.Code)
	}
}

func TestChatPrimedWithProfile(t *testing.T) {
	chatter := &fakeChatter{reply: "He has seven years of experience."}
	h, _, sink := setupHandler(t, chatter)

	doJSON(t, h, http.MethodPost, "/profile/type", `{"type": "peer_developer"}`)
	w := doJSON(t, h, http.MethodPost, "/chat", `{"message": "How experienced is he?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", w.Code, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), "seven years") {
		t.Errorf("reply: %s", w.Body.String())
	}
	if !strings.Contains(chatter.priming, "peer_developer") {
		t.Errorf("priming missing visitor type:\n%s", chatter.priming)
	}

	found := false
	for _, e := range sink.events {
		if e == "chat_message" {
			found = true
		}
	}
	if !found {
		t.Error("chat_message event not tracked")
	}
}

func TestChatMissingMessage(t *testing.T) {
	h, _, _ := setupHandler(t, &fakeChatter{reply: "x"})
	w := doJSON(t, h, http.MethodPost, "/chat", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: %d", w.Code)
	}
}

func TestEventsEndpoint(t *testing.T) {
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.SaveEvent(storage.Event{
		ID:        "e1",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Name:      "session_start",
	}); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}

	store := profile.NewStore(db, device.Facts{}, "")
	h := NewHandler(Deps{
		Store:   store,
		Tracker: tracker.New(store, time.Minute),
		Adapter: &content.Adapter{
			OwnerName: "Khalil Charfi",
			StartYear: 2019,
			Clock:     fixedClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
		Sink:            &recordingSink{},
		Events:          db,
		DefaultLanguage: "en",
	})

	w := doJSON(t, h, http.MethodGet, "/events", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp struct {
		Total  int             `json:"total"`
		Events []storage.Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 1 || len(resp.Events) != 1 || resp.Events[0].Name != "session_start" {
		t.Errorf("events response: %+v", resp)
	}

	w = doJSON(t, h, http.MethodGet, "/events?limit=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status for bad limit: %d", w.Code)
	}
}
