package picker

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"vaultwidget/internal/apperr"
)

func TestBroker_ResolveDeliversOnce(t *testing.T) {
	b := NewBroker()
	tok, ch := b.Request(Folder)

	if err := b.Resolve(tok, "/storage/emulated/0/Vault"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	res, ok := <-ch
	if !ok {
		t.Fatal("expected a result before close")
	}
	if res.Token != tok || res.Kind != Folder || res.Value != "/storage/emulated/0/Vault" || res.Canceled {
		t.Errorf("unexpected result %+v", res)
	}
	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after the result")
	}
	if b.Pending() != 0 {
		t.Errorf("expected no pending requests, got %d", b.Pending())
	}
}

func TestBroker_Cancel(t *testing.T) {
	var b Broker
	tok, ch := b.Request(File)

	if err := b.Cancel(tok); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	res := <-ch
	if !res.Canceled || res.Value != "" || res.Kind != File {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestBroker_UnknownToken(t *testing.T) {
	b := NewBroker()
	tok, _ := b.Request(File)
	if err := b.Resolve(tok, "a"); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	if err := b.Resolve(tok, "b"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second resolve, got %v", err)
	}
	if err := b.Cancel("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown token, got %v", err)
	}
}

func TestBroker_InterleavedRequests(t *testing.T) {
	b := NewBroker()
	folderTok, folderCh := b.Request(Folder)
	fileTok, fileCh := b.Request(File)

	if folderTok == fileTok {
		t.Fatal("tokens must be distinct")
	}
	if kind, ok := b.Kind(fileTok); !ok || kind != File {
		t.Errorf("expected pending file request, got %v %v", kind, ok)
	}

	// Resolve out of order.
	if err := b.Resolve(fileTok, "/v/note.md"); err != nil {
		t.Fatal(err)
	}
	if err := b.Resolve(folderTok, "/v"); err != nil {
		t.Fatal(err)
	}

	if got := (<-fileCh).Value; got != "/v/note.md" {
		t.Errorf("file request got %q", got)
	}
	if got := (<-folderCh).Value; got != "/v" {
		t.Errorf("folder request got %q", got)
	}
}

func TestBroker_Concurrent(t *testing.T) {
	b := NewBroker()
	const n = 50

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, ch := b.Request(File)
			want := fmt.Sprintf("/v/%d.md", i)
			if err := b.Resolve(tok, want); err != nil {
				t.Errorf("Resolve failed: %v", err)
				return
			}
			if got := (<-ch).Value; got != want {
				t.Errorf("request %d got %q", i, got)
			}
		}(i)
	}
	wg.Wait()

	if b.Pending() != 0 {
		t.Errorf("expected no pending requests, got %d", b.Pending())
	}
}
