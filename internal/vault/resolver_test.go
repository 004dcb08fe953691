package vault

import (
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		root Root
		want string
	}{
		{"filesystem", FilesystemRoot{Path: "/storage/emulated/0/Vault"}, "Vault"},
		{"trailing slash", FilesystemRoot{Path: "/storage/emulated/0/Vault/"}, "Vault"},
		{"padded", FilesystemRoot{Path: "  /notes/Work  "}, "Work"},
		{"backslashes", FilesystemRoot{Path: `C:\Users\me\Brain`}, "Brain"},
		{"empty", FilesystemRoot{Path: ""}, DefaultName},
		{"filesystem root", FilesystemRoot{Path: "/"}, DefaultName},
		{"bare tree", TreeRoot{URI: "/tree/primary:Documents/Hywl"}, "Hywl"},
		{"content tree", TreeRoot{URI: "content://com.android.externalstorage.documents/tree/primary%3ADocuments%2FVault"}, "Vault"},
		{"tree volume root", TreeRoot{URI: "/tree/primary:"}, DefaultName},
		{"empty tree", TreeRoot{URI: ""}, DefaultName},
		{"nil root", nil, DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.root); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeIdentifier(t *testing.T) {
	vaultRoot := FilesystemRoot{Path: "/storage/emulated/0/Vault"}

	tests := []struct {
		name string
		note string
		root Root
		want string
	}{
		{"nested", "/storage/emulated/0/Vault/Projects/todo.md", vaultRoot, "Projects/todo"},
		{"top level", "/storage/emulated/0/Vault/inbox.md", vaultRoot, "inbox"},
		{"root with trailing slash", "/storage/emulated/0/Vault/a/b.md", FilesystemRoot{Path: "/storage/emulated/0/Vault/"}, "a/b"},
		{"outside vault", "/sdcard/Other/x.md", vaultRoot, "x"},
		{"sibling with shared prefix", "/storage/emulated/0/Vault2/y.md", vaultRoot, "y"},
		{"unconfigured root", "/a/b/c.md", FilesystemRoot{Path: ""}, "c"},
		{"nil root", "/a/b/c.md", nil, "c"},
		{"tree root", "/storage/emulated/0/Documents/Vault/Daily/2024-01-01.md", TreeRoot{URI: "/tree/primary:Documents/Vault"}, "Daily/2024-01-01"},
		{"content tree root", "/storage/emulated/0/Documents/Vault/x.md", TreeRoot{URI: "content://com.android.externalstorage.documents/tree/primary%3ADocuments%2FVault"}, "x"},
		{"sd card tree", "/storage/1234-ABCD/Notes/sub/z.md", TreeRoot{URI: "/tree/1234-ABCD:Notes"}, "sub/z"},
		{"tree document", "content://com.android.externalstorage.documents/tree/primary%3AVault/document/primary%3AVault%2Ftodo.md", TreeRoot{URI: "/tree/primary:Vault"}, "todo"},
		{"nested tree document", "content://com.android.externalstorage.documents/tree/primary%3AVault/document/primary%3AVault%2FSub%2Ftodo.md", TreeRoot{URI: "content://com.android.externalstorage.documents/tree/primary%3AVault"}, "Sub/todo"},
		{"sd card tree document", "content://com.android.externalstorage.documents/tree/1234-ABCD%3ANotes/document/1234-ABCD%3ANotes%2Fz.md", TreeRoot{URI: "/tree/1234-ABCD:Notes"}, "z"},
		{"no extension", "/storage/emulated/0/Vault/README", vaultRoot, "README"},
		{"the root itself", "/storage/emulated/0/Vault", vaultRoot, "Vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeIdentifier(tt.note, tt.root, ".md"); got != tt.want {
				t.Errorf("RelativeIdentifier(%q) = %q, want %q", tt.note, got, tt.want)
			}
		})
	}
}

func TestRelativeIdentifier_SeparatorInvariant(t *testing.T) {
	paths := []struct{ root, note string }{
		{"/storage/emulated/0/Vault", "/storage/emulated/0/Vault/Projects/todo.md"},
		{"C:/Users/me/Vault", "C:/Users/me/Vault/a/b/c.md"},
		{"/x/Vault", "/elsewhere/deep/file.md"},
		{"", "/a/b/c.md"},
	}

	for _, p := range paths {
		forward := RelativeIdentifier(p.note, FilesystemRoot{Path: p.root}, ".md")
		backward := RelativeIdentifier(
			strings.ReplaceAll(p.note, "/", `\`),
			FilesystemRoot{Path: strings.ReplaceAll(p.root, "/", `\`)},
			".md",
		)
		if forward != backward {
			t.Errorf("separator style changed result for %q: %q vs %q", p.note, forward, backward)
		}
	}
}

func TestTreeRoot_FilesystemPath(t *testing.T) {
	tests := []struct{ uri, want string }{
		{"/tree/primary:Documents/Vault", "/storage/emulated/0/Documents/Vault"},
		{"content://com.android.externalstorage.documents/tree/primary%3ANotes/document/primary%3ANotes%2Fa.md", "/storage/emulated/0/Notes"},
		{"/tree/primary:", "/storage/emulated/0"},
		{"/tree/0A1B-2C3D:Vault", "/storage/0A1B-2C3D/Vault"},
		{"content://media/external/images", ""},
	}
	for _, tt := range tests {
		if got := (TreeRoot{URI: tt.uri}).FilesystemPath(); got != tt.want {
			t.Errorf("FilesystemPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestNewRoot(t *testing.T) {
	r, err := NewRoot(KindTree, "/tree/primary:V")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.(TreeRoot); !ok {
		t.Errorf("expected TreeRoot, got %T", r)
	}

	r, err = NewRoot("", "/v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fr, ok := r.(FilesystemRoot); !ok || fr.Path != "/v" {
		t.Errorf("expected FilesystemRoot /v, got %#v", r)
	}

	if _, err := NewRoot("ftp", "x"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestDocumentPath(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		wantID string
		want   string
		ok     bool
	}{
		{"primary", "content://com.android.externalstorage.documents/tree/primary%3AVault/document/primary%3AVault%2Fa%20b.md", "primary:Vault/a b.md", "/storage/emulated/0/Vault/a b.md", true},
		{"sd card", "content://com.android.externalstorage.documents/tree/1234-ABCD%3ANotes/document/1234-ABCD%3ANotes%2Fz.md", "1234-ABCD:Notes/z.md", "/storage/1234-ABCD/Notes/z.md", true},
		{"tree without document", "content://com.android.externalstorage.documents/tree/primary%3AVault", "", "", false},
		{"plain path", "/home/me/document/notes:today.md", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := DocumentID(tt.uri)
			if ok != tt.ok || id != tt.wantID {
				t.Errorf("DocumentID() = %q, %v, want %q, %v", id, ok, tt.wantID, tt.ok)
			}
			got, ok := DocumentPath(tt.uri)
			if ok != tt.ok || got != tt.want {
				t.Errorf("DocumentPath() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
