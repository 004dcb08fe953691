// Package scanner lists the notes of a vault, either by walking a directory
// or by listing a document tree.
package scanner

import (
	"cmp"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/logs"
	"vaultwidget/internal/notes"
	"vaultwidget/internal/vault"
)

const (
	// DefaultMaxNotes caps a single scan.
	DefaultMaxNotes = 100
	// DefaultWorkers bounds concurrent note parsing within one scan.
	DefaultWorkers = 4
)

// DefaultAllowedRoots are the shared-storage locations a filesystem vault
// must resolve under.
var DefaultAllowedRoots = []string{"/storage/emulated/0", "/sdcard"}

// Options configures a Scanner
type Options struct {
	Extension     string       // note-file suffix, ".md" by default
	PreviewLength int          // preview bound in characters
	AllowedRoots  []string     // sanctioned storage roots for filesystem vaults
	Workers       int          // parse concurrency per scan
	Tree          DocumentTree // lister for tree vaults
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		Extension:     notes.DefaultExtension,
		PreviewLength: notes.DefaultPreviewLength,
		AllowedRoots:  DefaultAllowedRoots,
		Workers:       DefaultWorkers,
		Tree:          DirTree{},
	}
}

// Scanner produces note summaries. It holds no mutable state, so one Scanner
// may serve any number of concurrent scans.
type Scanner struct {
	opts    Options
	allowed []string
}

// New builds a Scanner, filling unset options from DefaultOptions.
func New(opts Options) *Scanner {
	def := DefaultOptions()
	if opts.Extension == "" {
		opts.Extension = def.Extension
	}
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = def.PreviewLength
	}
	if opts.AllowedRoots == nil {
		opts.AllowedRoots = def.AllowedRoots
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.Tree == nil {
		opts.Tree = def.Tree
	}

	return &Scanner{opts: opts, allowed: canonicalRoots(opts.AllowedRoots)}
}

// candidate is a note file selected for parsing
type candidate struct {
	name    string
	source  string
	modTime time.Time
	open    func(ctx context.Context) (io.ReadCloser, error)
}

// Scan lists up to maxNotes notes under root, newest first. A blank root or a
// non-positive maxNotes is an input error; a missing, unreadable or
// out-of-bounds vault yields an empty list. Files that fail to parse are
// skipped.
func (s *Scanner) Scan(ctx context.Context, root vault.Root, maxNotes int) ([]notes.Note, error) {
	if root == nil || root.IsZero() {
		return nil, apperr.Invalid("scan", "vault root cannot be blank")
	}
	if maxNotes < 1 {
		return nil, apperr.Invalid("scan", "max notes must be positive, got %d", maxNotes)
	}

	var (
		candidates []candidate
		err        error
	)
	switch r := root.(type) {
	case vault.FilesystemRoot:
		candidates, err = s.collectFiles(ctx, r.Path, maxNotes)
	case vault.TreeRoot:
		candidates, err = s.collectDocuments(ctx, r.URI, maxNotes)
	default:
		return nil, apperr.Invalid("scan", "unsupported vault root %T", root)
	}
	if err != nil {
		return nil, err
	}

	return s.parseAll(ctx, candidates, vault.Name(root))
}

// collectFiles walks a filesystem vault in lexical order and stops as soon as
// maxNotes note files have been seen.
func (s *Scanner) collectFiles(ctx context.Context, vaultPath string, maxNotes int) ([]candidate, error) {
	info, err := os.Stat(vaultPath)
	if err != nil {
		logs.Logger.Warn("vault directory not found", "path", vaultPath, "err", err)
		return nil, nil
	}
	if !info.IsDir() {
		logs.Logger.Warn("vault path is not a directory", "path", vaultPath)
		return nil, nil
	}

	canonical, err := canonicalPath(vaultPath)
	if err != nil {
		logs.Logger.Warn("cannot resolve vault path", "path", vaultPath, "err", err)
		return nil, nil
	}
	if !s.confined(canonical) {
		logs.Logger.Warn("vault path outside allowed storage", "path", canonical)
		return nil, nil
	}

	// Notes are reported under the vault path as given so they resolve
	// against the stored root even when it runs through a symlink.
	reported, err := filepath.Abs(vaultPath)
	if err != nil {
		reported = canonical
	}

	dir, err := os.Open(canonical)
	if err != nil {
		logs.Logger.Warn("cannot read vault directory", "path", canonical, "err", err)
		return nil, nil
	}
	dir.Close()

	var candidates []candidate
	err = filepath.WalkDir(canonical, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logs.Logger.Warn("skipping unreadable path", "path", path, "err", err)
			return nil
		}

		if d.IsDir() {
			if path != canonical && shouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !notes.HasExtension(d.Name(), s.opts.Extension) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			logs.Logger.Warn("skipping vanished file", "path", path, "err", err)
			return nil
		}

		candidates = append(candidates, fileCandidate(rebase(path, canonical, reported), fi))
		if len(candidates) >= maxNotes {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return candidates, nil
}

// rebase moves path from under canonical to the same place under reported.
func rebase(path, canonical, reported string) string {
	rel, err := filepath.Rel(canonical, path)
	if err != nil {
		return path
	}
	return filepath.Join(reported, rel)
}

func fileCandidate(path string, fi fs.FileInfo) candidate {
	return candidate{
		name:    fi.Name(),
		source:  path,
		modTime: fi.ModTime(),
		open: func(context.Context) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// collectDocuments lists the immediate children of a tree vault, pulling no
// further entries once maxNotes note documents have been seen.
func (s *Scanner) collectDocuments(ctx context.Context, treeURI string, maxNotes int) ([]candidate, error) {
	tree := s.opts.Tree

	var candidates []candidate
	for doc, err := range tree.Children(ctx, treeURI) {
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logs.Logger.Warn("failed to list vault tree", "uri", treeURI, "err", err)
			break
		}
		if doc.IsDir || !notes.HasExtension(doc.Name, s.opts.Extension) {
			continue
		}

		candidates = append(candidates, candidate{
			name:    doc.Name,
			source:  doc.URI,
			modTime: doc.LastModified,
			open: func(ctx context.Context) (io.ReadCloser, error) {
				return tree.Open(ctx, doc)
			},
		})
		if len(candidates) >= maxNotes {
			break
		}
	}

	return candidates, nil
}

// parseAll parses candidates on a bounded pool; a failing file is logged and
// left out of the result.
func (s *Scanner) parseAll(ctx context.Context, candidates []candidate, label string) ([]notes.Note, error) {
	parsed := make([]*notes.Note, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			note, err := s.parseCandidate(gctx, c, label)
			if err != nil {
				logs.Logger.Warn("failed to parse note", "file", c.name, "err", err)
				return nil
			}
			parsed[i] = &note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]notes.Note, 0, len(parsed))
	for _, n := range parsed {
		if n != nil {
			result = append(result, *n)
		}
	}
	if skipped := len(candidates) - len(result); skipped > 0 {
		logs.Logger.Info("skipped unparsable notes", "vault", label, "skipped", skipped)
	}

	SortNotes(result)
	logs.Logger.Debug("scan complete", "vault", label, "notes", len(result))
	return result, nil
}

func (s *Scanner) parseCandidate(ctx context.Context, c candidate, label string) (notes.Note, error) {
	rc, err := c.open(ctx)
	if err != nil {
		return notes.Note{}, apperr.New(apperr.ErrParse, "read note", c.source, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return notes.Note{}, apperr.New(apperr.ErrParse, "read note", c.source, err)
	}
	if !utf8.Valid(data) {
		return notes.Note{}, apperr.New(apperr.ErrParse, "decode note", c.source, errors.New("content is not valid UTF-8"))
	}

	p := notes.Parse(string(data), c.name, notes.ParseOptions{
		Extension:     s.opts.Extension,
		PreviewLength: s.opts.PreviewLength,
	})

	return notes.NewNote(notes.Note{
		Title:        p.Title,
		FileName:     c.name,
		Preview:      p.Preview,
		VaultLabel:   label,
		LastModified: c.modTime,
		SourceID:     c.source,
		Tags:         p.Tags,
	})
}

// GetOne parses a single note file. Unlike Scan, a missing or unreadable
// target is an error.
func (s *Scanner) GetOne(ctx context.Context, path string) (notes.Note, error) {
	if strings.TrimSpace(path) == "" {
		return notes.Note{}, apperr.Invalid("get note", "file path cannot be blank")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return notes.Note{}, apperr.New(apperr.ErrInvalidInput, "get note", path, err)
	}

	fi, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return notes.Note{}, apperr.New(apperr.ErrPermission, "get note", abs, err)
	case err != nil:
		return notes.Note{}, apperr.New(apperr.ErrNotFound, "get note", abs, err)
	case !fi.Mode().IsRegular():
		return notes.Note{}, apperr.Invalid("get note", "not a regular file: %s", abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return notes.Note{}, apperr.New(apperr.ErrPermission, "get note", abs, err)
	}
	f.Close()

	return s.parseCandidate(ctx, fileCandidate(abs, fi), filepath.Base(filepath.Dir(abs)))
}

// ReadSource returns the raw text behind a note's SourceID, which is either a
// file path or a document URI yielded by a tree scan.
func (s *Scanner) ReadSource(ctx context.Context, sourceID string) ([]byte, error) {
	if strings.TrimSpace(sourceID) == "" {
		return nil, apperr.Invalid("read note", "source cannot be blank")
	}

	if strings.HasPrefix(sourceID, "content://") {
		docID, ok := vault.DocumentID(sourceID)
		if !ok {
			return nil, apperr.Invalid("read note", "not a document URI: %q", sourceID)
		}
		rc, err := s.opts.Tree.Open(ctx, Document{ID: docID, URI: sourceID})
		if err != nil {
			return nil, apperr.New(apperr.ErrNotFound, "read note", sourceID, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	data, err := os.ReadFile(sourceID)
	switch {
	case errors.Is(err, fs.ErrPermission):
		return nil, apperr.New(apperr.ErrPermission, "read note", sourceID, err)
	case err != nil:
		return nil, apperr.New(apperr.ErrNotFound, "read note", sourceID, err)
	}
	return data, nil
}

// SortNotes orders notes newest first, then by file name and source so equal
// timestamps sort the same way every time.
func SortNotes(list []notes.Note) {
	slices.SortFunc(list, func(a, b notes.Note) int {
		if c := b.LastModified.Compare(a.LastModified); c != 0 {
			return c
		}
		if c := cmp.Compare(a.FileName, b.FileName); c != 0 {
			return c
		}
		return cmp.Compare(a.SourceID, b.SourceID)
	})
}

func (s *Scanner) confined(canonical string) bool {
	for _, root := range s.allowed {
		if canonical == root || strings.HasPrefix(canonical, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// canonicalRoots returns each allowed root as written and, when it exists,
// with symlinks resolved.
func canonicalRoots(roots []string) []string {
	var result []string
	for _, r := range roots {
		if strings.TrimSpace(r) == "" {
			continue
		}
		clean := strings.TrimRight(filepath.Clean(r), string(filepath.Separator))
		result = append(result, clean)
		if resolved, err := canonicalPath(r); err == nil {
			resolved = strings.TrimRight(resolved, string(filepath.Separator))
			if resolved != clean {
				result = append(result, resolved)
			}
		}
	}
	return result
}

// shouldSkipDir skips hidden directories such as .obsidian and .trash
func shouldSkipDir(name string) bool {
	return strings.HasPrefix(name, ".")
}
