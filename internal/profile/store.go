package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/persona/internal/device"
	"github.com/kalambet/persona/internal/storage"
)

// KV defines the storage operations the Store needs.
// Implemented by storage.Store.
type KV interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// persistVersion tags the serialized profile so a future schema change can
// migrate instead of guessing. An unexpected version is treated as malformed.
const persistVersion = 1

// persistedProfile is the on-disk shape: the durable top-level fields only.
// Session data is folded into visit history at save time, never stored raw.
type persistedProfile struct {
	Version        int           `json:"version"`
	Type           VisitorType   `json:"type"`
	Source         Source        `json:"source"`
	Intent         Intent        `json:"intent"`
	Interests      []string      `json:"interests"`
	SearchKeywords []string      `json:"searchKeywords"`
	VisitHistory   []VisitRecord `json:"visitHistory"`
	Preferences    Preferences   `json:"preferences"`
}

// Store owns the single in-memory UserProfile for the current session,
// persists it through a KV store, and notifies subscribers after saves.
// All mutation goes through the Store's mutex; callers never hold a
// reference to the live profile, only deep copies.
type Store struct {
	kv    KV
	clock Clock

	mu          sync.Mutex
	profile     UserProfile
	facts       device.Facts
	sessionID   string
	referrer    string
	consent     bool
	prefsPinned bool

	observers    map[int]func(UserProfile)
	nextObserver int
}

// NewStore loads the persisted profile (if any and parseable), merges it
// with a fresh session derived from the reported device facts, and reads
// the consent flag. It never fails: malformed or missing state falls back
// to a freshly initialized profile.
func NewStore(kv KV, facts device.Facts, referrer string) *Store {
	return NewStoreWithClock(kv, facts, referrer, realClock{})
}

// NewStoreWithClock is NewStore with an injected clock (for testing).
func NewStoreWithClock(kv KV, facts device.Facts, referrer string, clock Clock) *Store {
	s := &Store{
		kv:        kv,
		clock:     clock,
		facts:     facts,
		sessionID: uuid.New().String(),
		referrer:  referrer,
		observers: make(map[int]func(UserProfile)),
	}
	s.consent = s.loadConsent()
	s.profile = s.load(facts)
	return s
}

// Profile returns a deep copy of the current profile.
func (s *Store) Profile() UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.profile)
}

// SessionID returns the UUID assigned to the current session.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// BeginSession starts a new session: fresh session ID and session data
// derived from the reported device facts, and the new referrer for the
// visit record. Durable profile fields survive. Device-derived preference
// defaults are recomputed unless preferences were loaded from disk or set
// explicitly.
func (s *Store) BeginSession(facts device.Facts, referrer string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.facts = facts
	s.referrer = referrer
	s.sessionID = uuid.New().String()

	fresh := s.freshProfile(facts)
	s.profile.SessionData = fresh.SessionData
	if !s.prefsPinned {
		s.profile.Preferences = fresh.Preferences
	}
	return s.sessionID
}

// SetPreferences applies an explicit preference update. Explicit
// preferences are pinned: later sessions no longer recompute the
// device-derived defaults.
func (s *Store) SetPreferences(prefs Preferences) {
	s.mu.Lock()
	s.prefsPinned = true
	s.mu.Unlock()
	s.Update(func(p *UserProfile) { p.Preferences = prefs })
}

// Update applies fn to the profile under the lock, then saves.
func (s *Store) Update(fn func(*UserProfile)) {
	s.mu.Lock()
	fn(&s.profile)
	snapshot, observers := s.saveLocked()
	s.mu.Unlock()
	notify(snapshot, observers)
}

// SetType applies a manual visitor-type override, bypassing classification.
// Values outside the enum are silently ignored and false is returned.
func (s *Store) SetType(t VisitorType) bool {
	if !t.Valid() {
		slog.Debug("ignoring invalid visitor type override", "type", string(t))
		return false
	}
	s.Update(func(p *UserProfile) { p.Type = t })
	return true
}

// Save folds the current session into the visit history, persists the
// profile when consent allows, and notifies subscribers. It never returns
// an error: persistence failures degrade to session-only personalization.
func (s *Store) Save() {
	s.mu.Lock()
	snapshot, observers := s.saveLocked()
	s.mu.Unlock()
	notify(snapshot, observers)
}

// saveLocked does the actual save work. Callers must hold s.mu.
func (s *Store) saveLocked() (UserProfile, []func(UserProfile)) {
	s.foldSessionLocked()

	if s.consent {
		if data, err := json.Marshal(s.persistable()); err != nil {
			slog.Warn("serializing profile failed", "error", err)
		} else if err := s.kv.SetValue(storage.KeyUserProfile, string(data)); err != nil {
			slog.Warn("persisting profile failed, continuing session-only", "error", err)
		}
	}

	observers := make([]func(UserProfile), 0, len(s.observers))
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids) // subscription order
	for _, id := range ids {
		observers = append(observers, s.observers[id])
	}
	return clone(s.profile), observers
}

// foldSessionLocked upserts the current session's VisitRecord into the
// history, keyed by session ID so repeated saves update in place.
func (s *Store) foldSessionLocked() {
	sd := s.profile.SessionData

	sections := make([]string, 0, len(sd.TimeOnSections))
	for section := range sd.TimeOnSections {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	interactions := sd.ClickedElements
	if len(interactions) > maxInteractions {
		interactions = interactions[len(interactions)-maxInteractions:]
	}

	record := VisitRecord{
		SessionID:      s.sessionID,
		Timestamp:      sd.StartTime,
		Referrer:       s.referrer,
		SearchQuery:    strings.Join(s.profile.SearchKeywords, " "),
		TimeSpentMs:    s.clock.Now().Sub(sd.StartTime).Milliseconds(),
		SectionsViewed: sections,
		Interactions:   cloneStrings(interactions),
	}

	updated := false
	for i := range s.profile.VisitHistory {
		if s.profile.VisitHistory[i].SessionID == record.SessionID {
			s.profile.VisitHistory[i] = record
			updated = true
			break
		}
	}
	if !updated {
		s.profile.VisitHistory = append(s.profile.VisitHistory, record)
	}

	if n := len(s.profile.VisitHistory); n > maxVisitHistory {
		s.profile.VisitHistory = s.profile.VisitHistory[n-maxVisitHistory:]
	}
}

func (s *Store) persistable() persistedProfile {
	return persistedProfile{
		Version:        persistVersion,
		Type:           s.profile.Type,
		Source:         s.profile.Source,
		Intent:         s.profile.Intent,
		Interests:      s.profile.Interests,
		SearchKeywords: s.profile.SearchKeywords,
		VisitHistory:   s.profile.VisitHistory,
		Preferences:    s.profile.Preferences,
	}
}

// Subscribe registers an observer invoked with a profile copy after every
// save, in subscription order. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(UserProfile)) func() {
	s.mu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// notify invokes observers outside the lock, isolating each: a panicking
// observer must not prevent the others from running.
func notify(snapshot UserProfile, observers []func(UserProfile)) {
	for _, fn := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("profile observer panicked", "panic", r)
				}
			}()
			fn(clone(snapshot))
		}()
	}
}

// --- Consent ---

// Consent reports whether persistence and tracking writes are allowed.
func (s *Store) Consent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consent
}

// SetConsent persists the consent flag. Revoking consent stops future
// writes; it does not delete already-persisted data (Clear does that).
func (s *Store) SetConsent(granted bool) {
	s.mu.Lock()
	s.consent = granted
	s.mu.Unlock()

	if err := s.kv.SetValue(storage.KeyConsent, strconv.FormatBool(granted)); err != nil {
		slog.Warn("persisting consent flag failed", "error", err)
	}
}

func (s *Store) loadConsent() bool {
	v, err := s.kv.GetValue(storage.KeyConsent)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("reading consent flag failed", "error", err)
		}
		return false
	}
	granted, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return granted
}

// Clear deletes the persisted profile and resets the in-memory one to a
// fresh state for the current session. Explicit user action only.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.DeleteValue(storage.KeyUserProfile); err != nil {
		slog.Warn("deleting persisted profile failed", "error", err)
	}

	s.prefsPinned = false
	s.profile = s.freshProfile(s.facts)
}

// --- Session mutators (used by the behavior tracker) ---

// RecordScroll stores a new scroll depth if it exceeds the session maximum.
// Values are clamped to [0, 100].
func (s *Store) RecordScroll(percent float64) {
	depth := int(math.Round(percent))
	if depth < 0 {
		depth = 0
	}
	if depth > 100 {
		depth = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if depth > s.profile.SessionData.ScrollDepth {
		s.profile.SessionData.ScrollDepth = depth
	}
}

// AddSectionTime accumulates dwell time for a section. Intervals are
// additive: a section re-entering visibility adds a new interval.
func (s *Store) AddSectionTime(section string, d time.Duration) {
	if section == "" || d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.SessionData.TimeOnSections == nil {
		s.profile.SessionData.TimeOnSections = make(map[string]time.Duration)
	}
	s.profile.SessionData.TimeOnSections[section] += d
}

// RecordClick appends a click identifier to the bounded ring buffer,
// dropping the oldest entry past capacity.
func (s *Store) RecordClick(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clicks := append(s.profile.SessionData.ClickedElements, entry)
	if len(clicks) > maxClickedElements {
		clicks = clicks[len(clicks)-maxClickedElements:]
	}
	s.profile.SessionData.ClickedElements = clicks
}

// IncrementPageViews bumps the session page-view counter.
func (s *Store) IncrementPageViews() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.SessionData.PageViews++
}

// --- Loading ---

// load reads the persisted profile and merges its durable fields into a
// freshly initialized one. Any malformed state is discarded silently.
func (s *Store) load(facts device.Facts) UserProfile {
	base := s.freshProfile(facts)

	raw, err := s.kv.GetValue(storage.KeyUserProfile)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("reading persisted profile failed, starting fresh", "error", err)
		}
		return base
	}

	var pp persistedProfile
	if err := json.Unmarshal([]byte(raw), &pp); err != nil {
		slog.Warn("persisted profile is malformed, starting fresh", "error", err)
		return base
	}
	if pp.Version != persistVersion {
		slog.Warn("persisted profile has unexpected version, starting fresh", "version", pp.Version)
		return base
	}

	if pp.Type.Valid() {
		base.Type = pp.Type
	}
	if pp.Source.Valid() {
		base.Source = pp.Source
	}
	if pp.Intent.Valid() {
		base.Intent = pp.Intent
	}
	base.Interests = dedup(pp.Interests)
	if len(pp.SearchKeywords) > 0 {
		base.SearchKeywords = pp.SearchKeywords
	}
	if n := len(pp.VisitHistory); n > 0 {
		if n > maxVisitHistory {
			pp.VisitHistory = pp.VisitHistory[n-maxVisitHistory:]
		}
		base.VisitHistory = pp.VisitHistory
	}
	if pp.Preferences.PreferredLanguage != "" {
		base.Preferences = pp.Preferences
		s.prefsPinned = true
	}

	return base
}

func (s *Store) freshProfile(facts device.Facts) UserProfile {
	return UserProfile{
		Type:   TypeUnknown,
		Source: SourceUnknown,
		Intent: IntentUnknown,
		SessionData: SessionData{
			StartTime:      s.clock.Now(),
			PageViews:      1,
			TimeOnSections: make(map[string]time.Duration),
			DeviceInfo:     device.Probe(facts),
		},
		Preferences: Preferences{
			PreferredLanguage: device.BaseLanguage(facts.AcceptLanguage),
			Theme:             "auto",
			AnimationsEnabled: !device.IsLowEnd(facts),
			ContactPreference: "email",
		},
	}
}

func dedup(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
