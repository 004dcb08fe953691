// Package vault models vault roots and resolves note paths against them.
package vault

import (
	"net/url"
	"strings"

	"vaultwidget/internal/apperr"
)

const (
	// DefaultName labels a vault whose root yields no usable segment.
	DefaultName = "MyVault"
	// ExternalStoragePrefix is the canonical filesystem location of the
	// primary shared-storage volume.
	ExternalStoragePrefix = "/storage/emulated/0/"
	// TreePrefix is the path prefix of a primary-volume tree URI.
	TreePrefix = "/tree/primary:"

	KindPath = "path"
	KindTree = "tree"
)

// Root is either a FilesystemRoot or a TreeRoot.
type Root interface {
	// Kind is KindPath or KindTree.
	Kind() string
	// Value is the raw path or URI as stored.
	Value() string
	// IsZero reports an unconfigured root.
	IsZero() bool

	isRoot()
}

// FilesystemRoot is a vault addressed by an absolute directory path.
type FilesystemRoot struct {
	Path string
}

func (FilesystemRoot) Kind() string    { return KindPath }
func (r FilesystemRoot) Value() string { return r.Path }
func (r FilesystemRoot) IsZero() bool  { return strings.TrimSpace(r.Path) == "" }
func (FilesystemRoot) isRoot()         {}

// TreeRoot is a vault addressed by an opaque document-tree URI, either a full
// content:// URI or the bare "/tree/<volume>:<path>" form.
type TreeRoot struct {
	URI string
}

func (TreeRoot) Kind() string    { return KindTree }
func (r TreeRoot) Value() string { return r.URI }
func (r TreeRoot) IsZero() bool  { return strings.TrimSpace(r.URI) == "" }
func (TreeRoot) isRoot()         {}

// NewRoot rebuilds a root from its persisted kind and value.
func NewRoot(kind, value string) (Root, error) {
	switch kind {
	case KindPath, "":
		return FilesystemRoot{Path: value}, nil
	case KindTree:
		return TreeRoot{URI: value}, nil
	default:
		return nil, apperr.Invalid("vault root", "unknown root kind %q", kind)
	}
}

// Volume returns the storage volume ("primary", or an SD-card id) and the
// volume-relative path named by the URI. ok is false when the URI carries no
// tree segment.
func (r TreeRoot) Volume() (volume, path string, ok bool) {
	p := treePath(strings.TrimSpace(r.URI))

	idx := strings.Index(p, "/tree/")
	if idx < 0 {
		return "", p, false
	}
	p = p[idx+len("/tree/"):]

	// Document URIs nest the selected document after the tree id.
	if doc := strings.Index(p, "/document/"); doc >= 0 {
		p = p[:doc]
	}

	volume, path, found := strings.Cut(p, ":")
	if !found {
		return "", p, false
	}
	return volume, strings.Trim(normalizeSeparators(path), "/"), true
}

// FilesystemPath maps the tree URI onto the filesystem, or "" when the URI
// does not name a storage volume.
func (r TreeRoot) FilesystemPath() string {
	volume, path, ok := r.Volume()
	if !ok {
		return ""
	}
	return volumePath(volume, path)
}

// DocumentID extracts the "<volume>:<path>" document id from a document URI.
func DocumentID(uri string) (string, bool) {
	head, enc, ok := strings.Cut(uri, "/document/")
	if !ok || enc == "" || !strings.Contains(head, "/tree/") {
		return "", false
	}
	id, err := url.PathUnescape(enc)
	if err != nil {
		return "", false
	}
	return id, true
}

// DocumentPath maps a document URI onto the filesystem the same way
// FilesystemPath maps its tree. ok is false for anything that is not a
// document URI.
func DocumentPath(uri string) (string, bool) {
	id, ok := DocumentID(uri)
	if !ok {
		return "", false
	}
	volume, path, found := strings.Cut(id, ":")
	if !found {
		return "", false
	}
	return volumePath(volume, strings.Trim(normalizeSeparators(path), "/")), true
}

func volumePath(volume, path string) string {
	prefix := ExternalStoragePrefix
	if volume != "primary" {
		prefix = "/storage/" + volume + "/"
	}
	return strings.TrimRight(prefix+path, "/")
}

func treePath(uri string) string {
	if strings.Contains(uri, "://") {
		if u, err := url.Parse(uri); err == nil {
			return u.Path
		}
	}
	if decoded, err := url.PathUnescape(uri); err == nil {
		return decoded
	}
	return uri
}
