// Package prefs persists the widget's settings: the vault root, the daily
// note folder and the shortcut slots.
package prefs

import (
	"context"
	"strings"
	"sync"

	"vaultwidget/internal/apperr"
	"vaultwidget/internal/vault"
)

// DefaultDailyFolder is the daily-note folder before the user picks one.
const DefaultDailyFolder = "Daily Notes"

const (
	keyVaultKind   = "vault_kind"
	keyVaultPath   = "vault_path"
	keyDailyFolder = "daily_note_path"
	keyShortcuts   = "custom_shortcuts"

	typeString = "string"
	typeJSON   = "json"
)

// Store reads and writes widget preferences.
type Store interface {
	VaultRoot(ctx context.Context) (vault.Root, error)
	SetVaultRoot(ctx context.Context, root vault.Root) error
	DailyFolder(ctx context.Context) (string, error)
	SetDailyFolder(ctx context.Context, folder string) error
	Shortcuts(ctx context.Context) ([]Shortcut, error)
	Shortcut(ctx context.Context, slot int) (Shortcut, error)
	SetShortcut(ctx context.Context, slot int, s Shortcut) error
	Close() error
}

// kv is the raw key/value storage behind a Store.
type kv interface {
	get(ctx context.Context, key string) (value string, ok bool, err error)
	// set writes all entries or none of them.
	set(ctx context.Context, entries ...entry) error
}

type entry struct {
	key, value, valueType string
}

// settings implements the Store semantics over any kv.
type settings struct {
	kv    kv
	slots int

	// serializes shortcut read-modify-write
	mu sync.Mutex
}

func newSettings(backend kv, slots int) *settings {
	if slots < 1 {
		slots = DefaultSlots
	}
	return &settings{kv: backend, slots: slots}
}

// Slots is the number of shortcut slots.
func (s *settings) Slots() int { return s.slots }

// VaultRoot returns the configured root, or a zero FilesystemRoot when none is
// set.
func (s *settings) VaultRoot(ctx context.Context) (vault.Root, error) {
	value, ok, err := s.kv.get(ctx, keyVaultPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return vault.FilesystemRoot{}, nil
	}
	kind, _, err := s.kv.get(ctx, keyVaultKind)
	if err != nil {
		return nil, err
	}
	return vault.NewRoot(kind, value)
}

func (s *settings) SetVaultRoot(ctx context.Context, root vault.Root) error {
	if root == nil {
		root = vault.FilesystemRoot{}
	}
	return s.kv.set(ctx,
		entry{keyVaultKind, root.Kind(), typeString},
		entry{keyVaultPath, strings.TrimSpace(root.Value()), typeString},
	)
}

// DailyFolder returns the vault-relative daily-note folder.
func (s *settings) DailyFolder(ctx context.Context) (string, error) {
	value, ok, err := s.kv.get(ctx, keyDailyFolder)
	if err != nil {
		return "", err
	}
	if !ok {
		return DefaultDailyFolder, nil
	}
	return value, nil
}

func (s *settings) SetDailyFolder(ctx context.Context, folder string) error {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return apperr.Invalid("set daily folder", "folder is blank")
	}
	return s.kv.set(ctx, entry{keyDailyFolder, folder, typeString})
}

// Shortcuts returns every slot in order, configured or not.
func (s *settings) Shortcuts(ctx context.Context) ([]Shortcut, error) {
	raw, _, err := s.kv.get(ctx, keyShortcuts)
	if err != nil {
		return nil, err
	}
	return decodeShortcuts(raw, s.slots), nil
}

func (s *settings) Shortcut(ctx context.Context, slot int) (Shortcut, error) {
	if err := s.checkSlot("get shortcut", slot); err != nil {
		return Shortcut{}, err
	}
	all, err := s.Shortcuts(ctx)
	if err != nil {
		return Shortcut{}, err
	}
	return all[slot], nil
}

// SetShortcut replaces one slot. An empty Shortcut clears it.
func (s *settings) SetShortcut(ctx context.Context, slot int, sc Shortcut) error {
	if err := s.checkSlot("set shortcut", slot); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Shortcuts(ctx)
	if err != nil {
		return err
	}
	all[slot] = Shortcut{TargetPath: strings.TrimSpace(sc.TargetPath)}

	raw, err := encodeShortcuts(all)
	if err != nil {
		return err
	}
	return s.kv.set(ctx, entry{keyShortcuts, raw, typeJSON})
}

func (s *settings) checkSlot(op string, slot int) error {
	if slot < 0 || slot >= s.slots {
		return apperr.Invalid(op, "slot %d out of range [0,%d)", slot, s.slots)
	}
	return nil
}
