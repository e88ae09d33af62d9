package storage

import (
	"context"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) *LocalBlobStore {
		store, err := NewLocalBlobStore(t.TempDir())
		require.NoError(t, err)
		return store
	}

	t.Run("put then get round trips the payload", func(t *testing.T) {
		store := newStore(t)
		key := store.GenerateKey("photo.PNG")

		require.NoError(t, store.Put(ctx, key, []byte("payload")))

		rc, err := store.Get(ctx, key)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		assert.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("generated keys keep the lowercased extension", func(t *testing.T) {
		store := newStore(t)
		key := store.GenerateKey("Scan.PDF")
		assert.True(t, strings.HasSuffix(key, ".pdf"), "key %q", key)
	})

	t.Run("generated keys are unique per call", func(t *testing.T) {
		store := newStore(t)
		assert.NotEqual(t, store.GenerateKey("a.png"), store.GenerateKey("a.png"))
	})

	t.Run("missing blob satisfies fs.ErrNotExist", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "2026/01/no-such-blob.png")
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("delete removes the blob", func(t *testing.T) {
		store := newStore(t)
		key := store.GenerateKey("gone.png")
		require.NoError(t, store.Put(ctx, key, []byte("x")))

		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("delete of a missing blob is not an error", func(t *testing.T) {
		store := newStore(t)
		assert.NoError(t, store.Delete(ctx, "2026/01/never-existed.png"))
	})

	t.Run("keys escaping the base directory are rejected", func(t *testing.T) {
		store := newStore(t)
		err := store.Put(ctx, "../outside.txt", []byte("x"))
		assert.Error(t, err)
	})
}
