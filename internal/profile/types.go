package profile

import (
	"time"

	"github.com/kalambet/persona/internal/device"
)

// VisitorType is the coarse classification of who is looking at the site.
type VisitorType string

const (
	TypeJobSeeker     VisitorType = "job_seeker"
	TypeHeadHunter    VisitorType = "head_hunter"
	TypePeerDeveloper VisitorType = "peer_developer"
	TypeClient        VisitorType = "client"
	TypeUnknown       VisitorType = "unknown"
)

// Valid reports whether t is a member of the visitor-type enum.
func (t VisitorType) Valid() bool {
	switch t {
	case TypeJobSeeker, TypeHeadHunter, TypePeerDeveloper, TypeClient, TypeUnknown:
		return true
	}
	return false
}

// Source is where the visit came from, inferred once per session.
type Source string

const (
	SourceLinkedIn Source = "linkedin"
	SourceGoogle   Source = "google"
	SourceGitHub   Source = "github"
	SourceDirect   Source = "direct"
	SourceSocial   Source = "social"
	SourceUnknown  Source = "unknown"
)

func (s Source) Valid() bool {
	switch s {
	case SourceLinkedIn, SourceGoogle, SourceGitHub, SourceDirect, SourceSocial, SourceUnknown:
		return true
	}
	return false
}

// Intent is the inferred reason for the visit.
type Intent string

const (
	IntentHiring        Intent = "hiring"
	IntentNetworking    Intent = "networking"
	IntentCollaboration Intent = "collaboration"
	IntentLearning      Intent = "learning"
	IntentUnknown       Intent = "unknown"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentHiring, IntentNetworking, IntentCollaboration, IntentLearning, IntentUnknown:
		return true
	}
	return false
}

// Preferences are user-adjustable settings, persisted across visits.
type Preferences struct {
	PreferredLanguage string `json:"preferredLanguage"`
	Theme             string `json:"theme"` // "light", "dark", "auto"
	AnimationsEnabled bool   `json:"animationsEnabled"`
	ContactPreference string `json:"contactPreference"` // "email", "linkedin", "phone"
}

// VisitRecord is one entry of the bounded visit history. Records carry both
// a session UUID (the upsert key) and the session start timestamp; keying by
// UUID means rapid repeated loads cannot silently merge distinct sessions.
type VisitRecord struct {
	SessionID      string    `json:"sessionId"`
	Timestamp      time.Time `json:"timestamp"`
	Referrer       string    `json:"referrer"`
	SearchQuery    string    `json:"searchQuery,omitempty"`
	TimeSpentMs    int64     `json:"timeSpentMs"`
	SectionsViewed []string  `json:"sectionsViewed"`
	Interactions   []string  `json:"interactions"`
}

// SessionData holds session-scoped behavior counters. It is reset on every
// load and never persisted verbatim; Save folds it into a VisitRecord.
type SessionData struct {
	StartTime       time.Time
	PageViews       int
	ScrollDepth     int // 0–100, monotonically non-decreasing
	ClickedElements []string
	TimeOnSections  map[string]time.Duration
	DeviceInfo      device.Info
}

// UserProfile is the heuristic, client-local record of the current visitor.
// One per browser/device, never a real identity.
type UserProfile struct {
	Type           VisitorType   `json:"type"`
	Source         Source        `json:"source"`
	Intent         Intent        `json:"intent"`
	Interests      []string      `json:"interests"`
	SearchKeywords []string      `json:"searchKeywords"`
	VisitHistory   []VisitRecord `json:"visitHistory"`
	Preferences    Preferences   `json:"preferences"`
	SessionData    SessionData   `json:"-"`
}

// History and interaction bounds.
const (
	maxVisitHistory    = 10
	maxClickedElements = 50
	maxInteractions    = 10 // interactions folded into a VisitRecord
)

func clone(p UserProfile) UserProfile {
	cp := p
	cp.Interests = cloneStrings(p.Interests)
	cp.SearchKeywords = cloneStrings(p.SearchKeywords)
	cp.SessionData.ClickedElements = cloneStrings(p.SessionData.ClickedElements)

	if p.VisitHistory != nil {
		cp.VisitHistory = make([]VisitRecord, len(p.VisitHistory))
		for i, v := range p.VisitHistory {
			v.SectionsViewed = cloneStrings(v.SectionsViewed)
			v.Interactions = cloneStrings(v.Interactions)
			cp.VisitHistory[i] = v
		}
	}
	if p.SessionData.TimeOnSections != nil {
		cp.SessionData.TimeOnSections = make(map[string]time.Duration, len(p.SessionData.TimeOnSections))
		for k, v := range p.SessionData.TimeOnSections {
			cp.SessionData.TimeOnSections[k] = v
		}
	}
	return cp
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
