package bbolt

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/corey/faq/internal/domain/kb"
)

// newTestStore creates a temporary bbolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func makeTestKB(t *testing.T) *kb.KB {
	t.Helper()
	k, err := kb.New([]kb.KnowledgeEntry{
		{ID: "b-first", Question: "Second letter first?", Keywords: []string{"order"}, Answer: "Yes."},
		{ID: "a-second", Question: "First letter second?", Answer: "Also yes."},
	}, kb.WithSuggestions("Is order kept?"))
	require.NoError(t, err)
	return k
}

func TestStore_SaveLoad_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)
	orig := kb.Default()

	require.NoError(t, store.SaveKB("default", "default", orig))

	got, err := store.LoadKB("default")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, orig.Entries(), got.Entries())
	assert.Equal(t, orig.Suggestions(), got.Suggestions())
}

func TestStore_PreservesDeclarationOrder(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveKB("ordered", "", makeTestKB(t)))

	got, err := store.LoadKB("ordered")
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "b-first", got.At(0).ID)
	assert.Equal(t, "a-second", got.At(1).ID)
}

func TestStore_ManyEntriesKeepOrder(t *testing.T) {
	// More than 10 entries: lexical key order must still match ordinal order.
	store, _ := newTestStore(t)
	var entries []kb.KnowledgeEntry
	for i := 0; i < 120; i++ {
		entries = append(entries, kb.KnowledgeEntry{
			ID: fmt.Sprintf("entry-%d", i), Question: "q", Answer: "a",
		})
	}
	k, err := kb.New(entries)
	require.NoError(t, err)
	require.NoError(t, store.SaveKB("big", "", k))

	got, err := store.LoadKB("big")
	require.NoError(t, err)
	assert.Equal(t, k.Entries(), got.Entries())
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)
	got, err := store.LoadKB("nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveReplaces(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveKB("kb", "", kb.Default()))
	require.NoError(t, store.SaveKB("kb", "", makeTestKB(t)))

	got, err := store.LoadKB("kb")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len(), "old entries must not survive a replace")
}

func TestStore_SaveRejectsBadInput(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.SaveKB("", "", kb.Default()))
	assert.Error(t, store.SaveKB("x", "", nil))
}

func TestStore_ListKBs(t *testing.T) {
	store, _ := newTestStore(t)
	saved := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	store.now = func() time.Time { return saved }

	require.NoError(t, store.SaveKB("zeta", "/tmp/zeta.yaml", makeTestKB(t)))
	require.NoError(t, store.SaveKB("alpha", "default", kb.Default()))

	infos, err := store.ListKBs()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, 10, infos[0].Entries)
	assert.Equal(t, "default", infos[0].Source)
	assert.Equal(t, "zeta", infos[1].Name)
	assert.Equal(t, 2, infos[1].Entries)
	assert.Equal(t, "/tmp/zeta.yaml", infos[1].Source)
	assert.True(t, saved.Equal(infos[1].SavedAt))
}

func TestStore_ListKBs_Empty(t *testing.T) {
	store, _ := newTestStore(t)
	infos, err := store.ListKBs()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestStore_DeleteKB(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveKB("a", "", makeTestKB(t)))
	require.NoError(t, store.SaveKB("b", "", makeTestKB(t)))

	require.NoError(t, store.DeleteKB("a"))
	got, err := store.LoadKB("a")
	require.NoError(t, err)
	assert.Nil(t, got)

	other, err := store.LoadKB("b")
	require.NoError(t, err)
	assert.NotNil(t, other, "deleting one snapshot must not touch another")

	// Idempotent
	assert.NoError(t, store.DeleteKB("a"))
	assert.NoError(t, store.DeleteKB("never-existed"))
}

func TestStore_LoadRejectsInvalidSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveKB("kb", "", makeTestKB(t)))

	// Blank out an answer behind the store's back.
	require.NoError(t, store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("kb")).Bucket(bucketEntries).Put(ordinalKey(1), []byte(`{"id":"a-second","question":"q","answer":""}`))
	}))

	_, err := store.LoadKB("kb")
	require.Error(t, err)
	assert.ErrorIs(t, err, kb.ErrEmptyAnswer)
}

func TestStore_LoadRejectsCountMismatch(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveKB("kb", "", makeTestKB(t)))
	require.NoError(t, store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("kb")).Bucket(bucketEntries).Delete(ordinalKey(1))
	}))

	_, err := store.LoadKB("kb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta records 2 entries, found 1")
}

func TestStore_CrashRecovery(t *testing.T) {
	// Data from the last committed transaction survives a close/reopen.
	dir := t.TempDir()
	path := filepath.Join(dir, "crash.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveKB("kb", "", kb.Default()))
	require.NoError(t, store.Close())

	store2, err := NewStore(path)
	require.NoError(t, err)
	defer store2.Close()

	loaded, err := store2.LoadKB("kb")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 10, loaded.Len())
}

func TestStore_ConcurrentReads(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.SaveKB("kb", "", kb.Default()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k, err := store.LoadKB("kb")
			assert.NoError(t, err)
			assert.Equal(t, 10, k.Len())
		}()
	}
	wg.Wait()
}

// =============================================================================
// Lock contention tests: the 1s timeout prevents hangs
// =============================================================================

func TestStore_OpenTimeout_DoesNotHang(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.db")

	// First store holds the exclusive lock.
	store1, err := NewStore(path)
	require.NoError(t, err)
	defer store1.Close()

	start := time.Now()
	store2, err := NewStore(path)
	elapsed := time.Since(start)

	require.Error(t, err, "second open should fail with lock timeout")
	assert.Nil(t, store2)
	assert.ErrorIs(t, err, ErrLocked)
	assert.Contains(t, err.Error(), path)
	assert.Less(t, elapsed, 3*time.Second, "should complete within 3s, not hang")
	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond, "should wait ~1s for the configured timeout")
}

func TestStore_OpenAfterClose_Succeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "released.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.SaveKB("kb", "", makeTestKB(t)))
	store1.Close()

	start := time.Now()
	store2, err := NewStore(path)
	elapsed := time.Since(start)
	require.NoError(t, err, "open after close should succeed")
	defer store2.Close()
	assert.Less(t, elapsed, 500*time.Millisecond, "should open instantly after lock released")
	assert.Equal(t, path, store2.Path())

	k, err := store2.LoadKB("kb")
	require.NoError(t, err)
	assert.Equal(t, 2, k.Len())
}
