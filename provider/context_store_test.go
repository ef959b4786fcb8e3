package provider

import (
	"context"
	"testing"
	"time"
)

type transcriptEntry struct {
	Text     string
	Segments int
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore[transcriptEntry]()
	ctx := context.Background()

	entry := transcriptEntry{Text: "hello\n\nworld", Segments: 2}
	if err := store.Save(ctx, "remote:abc", &entry, 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx, "remote:abc")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil || got.Text != "hello\n\nworld" || got.Segments != 2 {
		t.Fatalf("unexpected entry %+v", got)
	}
}

func TestMemoryStore_LoadMissing(t *testing.T) {
	store := NewMemoryStore[transcriptEntry]()
	got, err := store.Load(context.Background(), "local:missing")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing key, got %+v", *got)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore[transcriptEntry]()
	ctx := context.Background()

	store.Save(ctx, "k1", &transcriptEntry{Text: "x"}, 0)
	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, _ := store.Load(ctx, "k1"); got != nil {
		t.Fatalf("expected nil after delete, got %+v", *got)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestMemoryStore_TTLExpiration(t *testing.T) {
	store := NewMemoryStore[transcriptEntry]()
	ctx := context.Background()

	if err := store.Save(ctx, "k1", &transcriptEntry{Text: "ephemeral"}, 50*time.Millisecond); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got, _ := store.Load(ctx, "k1"); got == nil {
		t.Fatal("expected value immediately after save")
	}

	time.Sleep(60 * time.Millisecond)

	got, err := store.Load(ctx, "k1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after TTL expiration, got %+v", *got)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore[transcriptEntry]()
	ctx := context.Background()

	store.Save(ctx, "k1", &transcriptEntry{Text: "first"}, 0)
	store.Save(ctx, "k1", &transcriptEntry{Text: "second"}, 0)

	got, _ := store.Load(ctx, "k1")
	if got == nil || got.Text != "second" {
		t.Fatalf("expected 'second', got %+v", got)
	}
	if store.Len() != 1 {
		t.Fatalf("expected len 1, got %d", store.Len())
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore[transcriptEntry]()
	ctx := context.Background()

	entry := transcriptEntry{Text: "original"}
	store.Save(ctx, "k1", &entry, 0)
	entry.Text = "mutated after save"

	got, _ := store.Load(ctx, "k1")
	if got.Text != "original" {
		t.Fatalf("stored value changed through caller pointer: %q", got.Text)
	}
	got.Text = "mutated after load"
	again, _ := store.Load(ctx, "k1")
	if again.Text != "original" {
		t.Fatalf("stored value changed through loaded pointer: %q", again.Text)
	}
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	store := NewMemoryStore[transcriptEntry](WithMaxEntries(2))
	ctx := context.Background()

	store.Save(ctx, "a", &transcriptEntry{Text: "a"}, 0)
	store.Save(ctx, "b", &transcriptEntry{Text: "b"}, 0)
	store.Save(ctx, "a", &transcriptEntry{Text: "a2"}, 0)
	store.Save(ctx, "c", &transcriptEntry{Text: "c"}, 0)

	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
	if got, _ := store.Load(ctx, "b"); got != nil {
		t.Fatalf("expected b to be evicted, got %+v", *got)
	}
	if got, _ := store.Load(ctx, "a"); got == nil || got.Text != "a2" {
		t.Fatalf("expected rewritten a to survive, got %+v", got)
	}
}

func TestMemoryStore_PurgesExpiredBeforeEvicting(t *testing.T) {
	store := NewMemoryStore[transcriptEntry](WithMaxEntries(2))
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Save(ctx, "keep", &transcriptEntry{Text: "keep"}, 0)
	store.Save(ctx, "stale", &transcriptEntry{Text: "stale"}, time.Minute)
	now = now.Add(2 * time.Minute)
	store.Save(ctx, "new", &transcriptEntry{Text: "new"}, 0)

	if got, _ := store.Load(ctx, "keep"); got == nil {
		t.Fatal("expected oldest live entry to survive when an expired one can go")
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
}
