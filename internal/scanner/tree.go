package scanner

import (
	"context"
	"errors"
	"io"
	"iter"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/vault"
)

const (
	// ExternalStorageAuthority is the provider authority of shared-storage
	// document URIs.
	ExternalStorageAuthority = "com.android.externalstorage.documents"
	// MimeTypeDir marks directory documents.
	MimeTypeDir = "vnd.android.document/directory"
)

// Document is one entry of a document tree listing
type Document struct {
	ID           string // "<volume>:<path>"
	Name         string
	MimeType     string
	LastModified time.Time
	URI          string
	IsDir        bool
}

// DocumentTree lists and opens documents below a tree URI, one level at a time.
type DocumentTree interface {
	// Children yields the immediate children of treeURI. Consumers may stop
	// early; no further entries are examined after that.
	Children(ctx context.Context, treeURI string) iter.Seq2[Document, error]
	// Open returns the content of a document previously yielded by Children.
	Open(ctx context.Context, doc Document) (io.ReadCloser, error)
}

// DirTree serves tree URIs from local directories. A volume listed in
// Volumes maps to that directory; other volumes map to their shared-storage
// mount point.
type DirTree struct {
	Volumes map[string]string
}

// readBatch is how many directory entries Children reads at a time.
const readBatch = 64

// Children lists the directory named by treeURI in directory order, reading
// entries in batches so an abandoned iteration stops reading.
func (t DirTree) Children(ctx context.Context, treeURI string) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		root := vault.TreeRoot{URI: treeURI}
		volume, rel, ok := root.Volume()
		if !ok {
			yield(Document{}, apperr.Invalid("list tree", "not a document tree URI: %q", treeURI))
			return
		}

		dir, err := t.resolve(volume, rel)
		if err != nil {
			yield(Document{}, err)
			return
		}

		f, err := os.Open(dir)
		if err != nil {
			yield(Document{}, apperr.New(apperr.ErrNotFound, "list tree", treeURI, err))
			return
		}
		defer f.Close()

		treeID := volume + ":" + rel
		for {
			entries, err := f.ReadDir(readBatch)
			for _, e := range entries {
				if err := ctx.Err(); err != nil {
					yield(Document{}, err)
					return
				}

				info, err := e.Info()
				if err != nil {
					continue
				}

				docID := volume + ":" + strings.TrimPrefix(rel+"/"+e.Name(), "/")
				doc := Document{
					ID:           docID,
					Name:         e.Name(),
					MimeType:     mimeType(e.Name(), e.IsDir()),
					LastModified: info.ModTime(),
					URI:          DocumentURI(treeID, docID),
					IsDir:        e.IsDir(),
				}
				if !yield(doc, nil) {
					return
				}
			}

			switch {
			case errors.Is(err, io.EOF):
				return
			case err != nil:
				yield(Document{}, apperr.New(apperr.ErrNotFound, "list tree", treeURI, err))
				return
			}
		}
	}
}

// Open opens the file behind a document id.
func (t DirTree) Open(_ context.Context, doc Document) (io.ReadCloser, error) {
	volume, rel, ok := strings.Cut(doc.ID, ":")
	if !ok {
		return nil, apperr.Invalid("open document", "malformed document id %q", doc.ID)
	}
	path, err := t.resolve(volume, rel)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// resolve maps a volume-relative path onto the filesystem and rejects paths
// that climb out of the volume.
func (t DirTree) resolve(volume, rel string) (string, error) {
	base, ok := t.Volumes[volume]
	if !ok {
		// volume ids read back from config may have been lowercased
		for id, dir := range t.Volumes {
			if strings.EqualFold(id, volume) {
				base, ok = dir, true
				break
			}
		}
	}
	if !ok {
		base = vault.ExternalStoragePrefix
		if volume != "primary" {
			base = "/storage/" + volume
		}
	}
	base = filepath.Clean(base)

	path := filepath.Join(base, filepath.FromSlash(rel))
	if path != base && !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", apperr.Invalid("resolve document", "path escapes volume %q: %q", volume, rel)
	}
	return path, nil
}

// DocumentURI builds a content URI for docID within the tree treeID.
func DocumentURI(treeID, docID string) string {
	return "content://" + ExternalStorageAuthority +
		"/tree/" + encodeComponent(treeID) +
		"/document/" + encodeComponent(docID)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func mimeType(name string, isDir bool) string {
	if isDir {
		return MimeTypeDir
	}
	if strings.HasSuffix(strings.ToLower(name), ".md") {
		return "text/markdown"
	}
	return "application/octet-stream"
}
