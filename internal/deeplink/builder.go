// Package deeplink builds URIs that drive the external note application and
// launches them with a store fallback.
package deeplink

import (
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultScheme is the URI scheme registered by the note application.
	DefaultScheme = "obsidian"
	// DefaultAppPackage identifies the application in the store.
	DefaultAppPackage = "md.obsidian"
)

// Builder composes action URIs for one application scheme
type Builder struct {
	Scheme string
}

// NewBuilder returns a Builder for scheme, or DefaultScheme when empty.
func NewBuilder(scheme string) Builder {
	if scheme == "" {
		scheme = DefaultScheme
	}
	return Builder{Scheme: scheme}
}

type param struct {
	key, value string
}

func (b Builder) action(name string, params ...param) string {
	var sb strings.Builder
	sb.WriteString(b.scheme())
	sb.WriteString("://")
	sb.WriteString(name)
	for i, p := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(Encode(p.value))
	}
	return sb.String()
}

func (b Builder) scheme() string {
	if b.Scheme == "" {
		return DefaultScheme
	}
	return b.Scheme
}

// OpenNote opens a note by vault name and vault-relative identifier.
func (b Builder) OpenNote(vaultName, relativeID string) string {
	return b.action("open", param{"vault", vaultName}, param{"file", relativeID})
}

// OpenVault opens a vault without selecting a note.
func (b Builder) OpenVault(vaultName string) string {
	return b.action("open", param{"vault", vaultName})
}

// OpenPath opens a note by absolute path.
func (b Builder) OpenPath(absolutePath string) string {
	return b.action("open", param{"path", absolutePath})
}

// NewNote creates a note. With an empty name the application picks its own.
func (b Builder) NewNote(vaultName, name string) string {
	if name == "" {
		return b.action("new", param{"vault", vaultName})
	}
	return b.action("new", param{"vault", vaultName}, param{"name", name})
}

// DailyNote opens or creates today's daily note.
func (b Builder) DailyNote(vaultName string) string {
	return b.action("daily", param{"vault", vaultName})
}

// Search opens the search pane, prefilled when query is not empty.
func (b Builder) Search(vaultName, query string) string {
	if query == "" {
		return b.action("search", param{"vault", vaultName})
	}
	return b.action("search", param{"vault", vaultName}, param{"query", query})
}

// AppHome opens the application with no action.
func (b Builder) AppHome() string {
	return b.scheme() + "://"
}

// FallbackStoreURI points the store app at the application listing.
func FallbackStoreURI(appPackage string) string {
	return "market://details?id=" + Encode(appPackage)
}

// FallbackWebURI is the browser version of FallbackStoreURI.
func FallbackWebURI(appPackage string) string {
	return "https://play.google.com/store/apps/details?id=" + Encode(appPackage)
}

// DailyNoteName is the dated name used when a caller asks for one explicitly.
func DailyNoteName(t time.Time) string {
	return "Daily Note " + t.Format("2006-01-02")
}

// Encode percent-encodes a parameter value, keeping only RFC 3986 unreserved
// characters literal. Spaces become %20.
func Encode(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
