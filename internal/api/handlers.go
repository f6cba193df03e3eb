// Package api exposes the personalization engine over HTTP. The front-end
// reports the landing context and behavior events here and pulls the
// adapted content back.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/persona/internal/analytics"
	"github.com/kalambet/persona/internal/chat"
	"github.com/kalambet/persona/internal/classify"
	"github.com/kalambet/persona/internal/content"
	"github.com/kalambet/persona/internal/device"
	"github.com/kalambet/persona/internal/profile"
	"github.com/kalambet/persona/internal/storage"
	"github.com/kalambet/persona/internal/tracker"
)

const maxBodySize = 1 << 20 // 1MB

const defaultEventsLimit = 50

// Chatter abstracts the chat backend so the handler can run without one.
type Chatter interface {
	Ask(ctx context.Context, question, priming string) (string, error)
}

// EventLog is the subset of storage.Store behind GET /events.
type EventLog interface {
	RecentEvents(limit int) ([]storage.Event, error)
	CountEvents() (int, error)
}

type Deps struct {
	Store           *profile.Store
	Tracker         *tracker.Tracker
	Adapter         *content.Adapter
	Sink            analytics.Sink
	Chat            Chatter  // optional; nil disables POST /chat
	Events          EventLog // optional; nil disables GET /events
	DefaultLanguage string
}

func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)
	r.Post("/session", handleSession(deps))
	r.Get("/content", handleContent(deps))
	r.Get("/profile", handleGetProfile(deps))
	r.Delete("/profile", handleDeleteProfile(deps))
	r.Post("/profile/type", handleSetType(deps))
	r.Patch("/profile/preferences", handlePatchPreferences(deps))
	r.Post("/events/scroll", handleScroll(deps))
	r.Post("/events/click", handleClick(deps))
	r.Post("/events/section", handleSection(deps))
	r.Put("/consent", handleConsent(deps))
	r.Post("/chat", handleChat(deps))
	r.Get("/events", handleEvents(deps))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type sessionRequest struct {
	Referrer string       `json:"referrer"`
	URL      string       `json:"url"`
	Device   device.Facts `json:"device"`
}

// contentBundle is everything the front-end needs to render one view.
type contentBundle struct {
	Language        string                      `json:"language"`
	Content         content.PersonalizedContent `json:"content"`
	SectionPriority []string                    `json:"sectionPriority"`
	CTA             content.CTA                 `json:"cta"`
	Hints           content.Hints               `json:"hints"`
}

func bundle(deps Deps, p profile.UserProfile, lang string) contentBundle {
	return contentBundle{
		Language:        lang,
		Content:         deps.Adapter.Personalize(p, lang),
		SectionPriority: content.SectionPriority(p),
		CTA:             deps.Adapter.DynamicCTA(p),
		Hints:           deps.Adapter.Hints(p),
	}
}

// resolveLanguage picks the content language: explicit query parameter,
// then the stored preference, then the configured default.
func resolveLanguage(r *http.Request, deps Deps, p profile.UserProfile) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	if p.Preferences.PreferredLanguage != "" {
		return p.Preferences.PreferredLanguage
	}
	return deps.DefaultLanguage
}

func handleSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		var params url.Values
		var fragment string
		if req.URL != "" {
			u, err := url.Parse(req.URL)
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid url: %v", err)
				return
			}
			params = u.Query()
			fragment = u.Fragment
		}

		sessionID := deps.Store.BeginSession(req.Device, req.Referrer)

		result := classify.Classify(req.Referrer, params, fragment, deps.Store.Profile().VisitHistory)
		deps.Store.Update(func(p *profile.UserProfile) { result.Apply(p) })

		deps.Sink.Track("session_start", map[string]any{
			"source": string(result.Source),
			"type":   string(result.Type),
			"intent": string(result.Intent),
		})

		p := deps.Store.Profile()
		lang := resolveLanguage(r, deps, p)
		writeJSON(w, http.StatusOK, map[string]any{
			"sessionId": sessionID,
			"profile":   p,
			"bundle":    bundle(deps, p, lang),
		})
	}
}

func handleContent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := deps.Store.Profile()
		lang := resolveLanguage(r, deps, p)
		writeJSON(w, http.StatusOK, bundle(deps, p, lang))
	}
}

func handleGetProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"sessionId": deps.Store.SessionID(),
			"consent":   deps.Store.Consent(),
			"profile":   deps.Store.Profile(),
		})
	}
}

func handleDeleteProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Store.Clear()
		deps.Sink.Track("profile_cleared", nil)
		w.WriteHeader(http.StatusNoContent)
	}
}

type setTypeRequest struct {
	Type string `json:"type"`
}

func handleSetType(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var req setTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if !deps.Store.SetType(profile.VisitorType(req.Type)) {
			// Unknown values are ignored, not rejected.
			w.WriteHeader(http.StatusNoContent)
			return
		}

		deps.Sink.Track("visitor_type_override", map[string]any{"type": req.Type})
		writeJSON(w, http.StatusOK, map[string]any{"profile": deps.Store.Profile()})
	}
}

func handlePatchPreferences(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		// Decoding over the current preferences makes the patch partial:
		// omitted fields keep their values.
		prefs := deps.Store.Profile().Preferences
		if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		deps.Store.SetPreferences(prefs)
		writeJSON(w, http.StatusOK, map[string]any{"profile": deps.Store.Profile()})
	}
}

type scrollEvent struct {
	ScrollY        float64 `json:"scrollY"`
	DocumentHeight float64 `json:"documentHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
}

func handleScroll(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var ev scrollEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		deps.Tracker.Scroll(ev.ScrollY, ev.DocumentHeight, ev.ViewportHeight)
		w.WriteHeader(http.StatusAccepted)
	}
}

type clickEvent struct {
	Element string `json:"element"`
}

func handleClick(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var ev clickEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		deps.Tracker.Click(ev.Element)
		w.WriteHeader(http.StatusAccepted)
	}
}

type sectionEvent struct {
	Section string `json:"section"`
	Action  string `json:"action"` // "enter" or "leave"
}

func handleSection(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var ev sectionEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		switch ev.Action {
		case "enter":
			deps.Tracker.SectionEnter(ev.Section)
		case "leave":
			deps.Tracker.SectionLeave(ev.Section)
		default:
			httpError(w, http.StatusBadRequest, "invalid_request_error", "action must be \"enter\" or \"leave\"")
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

type consentRequest struct {
	Granted bool `json:"granted"`
}

func handleConsent(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var req consentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		deps.Store.SetConsent(req.Granted)
		if req.Granted {
			// Persist what the session gathered before consent arrived.
			deps.Store.Save()
		}
		writeJSON(w, http.StatusOK, map[string]any{"granted": req.Granted})
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Chat == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "chat is not configured")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Message == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}

		p := deps.Store.Profile()
		lang := resolveLanguage(r, deps, p)
		priming := chat.BuildContext(p, deps.Adapter.Personalize(p, lang), deps.Adapter.Hints(p), lang)

		reply, err := deps.Chat.Ask(r.Context(), req.Message, priming)
		if err != nil {
			httpError(w, http.StatusBadGateway, "api_error", "chat backend failed: %v", err)
			return
		}

		deps.Sink.Track("chat_message", map[string]any{"language": lang})
		writeJSON(w, http.StatusOK, map[string]any{"reply": reply})
	}
}

func handleEvents(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Events == nil {
			httpError(w, http.StatusNotFound, "not_found", "event log is not available")
			return
		}

		limit := defaultEventsLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "limit must be a positive integer")
				return
			}
			limit = n
		}

		events, err := deps.Events.RecentEvents(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing events: %v", err)
			return
		}
		count, err := deps.Events.CountEvents()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "counting events: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"total":  count,
			"events": events,
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
