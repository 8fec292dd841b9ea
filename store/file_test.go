package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestFileStore(t *testing.T) (DocumentStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	return s, dir
}

func TestFileStorePutGet(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tournament:abc", testDoc{Name: "spring cup", Count: 5}))

	var got testDoc
	require.NoError(t, s.Get(ctx, "tournament:abc", &got))
	assert.Equal(t, "spring cup", got.Name)
	assert.Equal(t, 5, got.Count)

	// Overwrite replaces the whole document.
	require.NoError(t, s.Put(ctx, "tournament:abc", testDoc{Name: "spring cup", Count: 6}))
	require.NoError(t, s.Get(ctx, "tournament:abc", &got))
	assert.Equal(t, 6, got.Count)
}

func TestFileStoreMissingKey(t *testing.T) {
	s, _ := newTestFileStore(t)

	var got testDoc
	err := s.Get(context.Background(), "tournament:missing", &got)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStoreCorruptDocumentIsNotAbsence(t *testing.T) {
	s, dir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tournament:bad.json"), []byte("{nope"), 0o644))

	var got testDoc
	err := s.Get(ctx, "tournament:bad", &got)
	assert.ErrorIs(t, err, ErrCorruptDocument)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStoreHostileKeysStayInsideDataDir(t *testing.T) {
	s, dir := newTestFileStore(t)
	ctx := context.Background()

	// Wallet-derived keys are caller-controlled; path separators and dot
	// segments must not let a document escape the data directory or shadow
	// another key.
	hostile := []string{
		"player:../../../escape",
		"player:..",
		"player:a/b",
		"player:./tournament:a",
	}
	for _, key := range hostile {
		require.NoError(t, s.Put(ctx, key, testDoc{Name: key}))

		var got testDoc
		require.NoError(t, s.Get(ctx, key, &got))
		assert.Equal(t, key, got.Name)
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(hostile))

	keys, err := s.Keys(ctx, "player:")
	require.NoError(t, err)
	assert.ElementsMatch(t, hostile, keys)

	// None of them leaked into another prefix.
	keys, err = s.Keys(ctx, "tournament:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStoreDelete(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "player:0xabc", testDoc{Name: "p"}))
	require.NoError(t, s.Delete(ctx, "player:0xabc"))

	var got testDoc
	assert.ErrorIs(t, s.Get(ctx, "player:0xabc", &got), ErrKeyNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "player:0xabc"), ErrKeyNotFound)
}

func TestFileStoreKeysByPrefix(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tournament:a", testDoc{}))
	require.NoError(t, s.Put(ctx, "tournament:b", testDoc{}))
	require.NoError(t, s.Put(ctx, "player:0xabc", testDoc{}))

	keys, err := s.Keys(ctx, "tournament:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tournament:a", "tournament:b"}, keys)

	keys, err = s.Keys(ctx, "game:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
