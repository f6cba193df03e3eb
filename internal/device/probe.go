// Package device derives immutable environment facts for a session from
// what the front-end reports once at page load. The engine never inspects
// a live browser; everything here is a pure projection of reported values.
package device

import (
	"regexp"
	"strings"
)

// Facts is the raw, client-reported snapshot taken once per session.
type Facts struct {
	UserAgent           string  `json:"userAgent"`
	AcceptLanguage      string  `json:"acceptLanguage"`
	ScreenSize          string  `json:"screenSize"` // "1920x1080"
	Timezone            string  `json:"timezone"`
	HardwareConcurrency int     `json:"hardwareConcurrency"`
	DeviceMemoryGB      float64 `json:"deviceMemoryGB"`
}

// Info is the derived device description stored in session data.
type Info struct {
	IsMobile   bool   `json:"isMobile"`
	ScreenSize string `json:"screenSize"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	Timezone   string `json:"timezone"`
	Language   string `json:"language"`
}

var mobileRe = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Probe derives Info from reported Facts. Missing facts degrade to
// "Unknown"/empty values, never errors.
func Probe(f Facts) Info {
	return Info{
		IsMobile:   mobileRe.MatchString(f.UserAgent),
		ScreenSize: f.ScreenSize,
		Browser:    Browser(f.UserAgent),
		OS:         OS(f.UserAgent),
		Timezone:   f.Timezone,
		Language:   f.AcceptLanguage,
	}
}

// Browser identifies the browser family from a user-agent string.
// Edge is checked before Chrome and Chrome before Safari because their
// user agents embed each other's tokens.
func Browser(ua string) string {
	switch {
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	default:
		return "Unknown"
	}
}

// OS identifies the operating system from a user-agent string.
func OS(ua string) string {
	switch {
	case strings.Contains(ua, "Windows"):
		return "Windows"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"), strings.Contains(ua, "iOS"):
		return "iOS"
	case strings.Contains(ua, "Mac"):
		return "MacOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	default:
		return "Unknown"
	}
}

// IsLowEnd reports whether the device looks too weak for heavy animations.
// Zero-valued facts (not reported) do not count as low-end.
func IsLowEnd(f Facts) bool {
	if f.HardwareConcurrency > 0 && f.HardwareConcurrency <= 2 {
		return true
	}
	if f.DeviceMemoryGB > 0 && f.DeviceMemoryGB <= 2 {
		return true
	}
	return false
}

// BaseLanguage extracts the base tag from an Accept-Language style value,
// e.g. "de-DE,de;q=0.9" → "de". Falls back to "en".
func BaseLanguage(acceptLanguage string) string {
	lang := acceptLanguage
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	if i := strings.Index(lang, "-"); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return "en"
	}
	return lang
}
