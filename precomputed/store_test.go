package precomputed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscan/blobstore"
	"github.com/hupe1980/vecscan/core"
)

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		name     string
		expected Compression
	}{
		{"pairs.txt", CompressionNone},
		{"pairs", CompressionNone},
		{"pairs.txt.gz", CompressionGzip},
		{"dir/pairs.ZST", CompressionZstd},
		{"pairs.zstd", CompressionZstd},
		{"pairs.lz4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompressionFor(tt.name))
		})
	}

	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "Compression(9)", Compression(9).String())
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	src, err := Parse(strings.NewReader(lineFile))
	require.NoError(t, err)

	stores := map[string]blobstore.BlobStore{
		"Memory": blobstore.NewMemoryStore(),
		"Local":  blobstore.NewLocalStore(t.TempDir()),
	}

	for storeName, store := range stores {
		for _, name := range []string{"pairs.txt", "pairs.txt.gz", "pairs.txt.zst", "pairs.txt.lz4"} {
			t.Run(storeName+"/"+name, func(t *testing.T) {
				require.NoError(t, Save(ctx, store, name, src))

				got, err := Load(ctx, store, name)
				require.NoError(t, err)
				assert.Equal(t, src.Pairs(), got.Pairs())
			})
		}
	}
}

func TestSave_Compressed(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	src := NewCache()
	for i := core.ID(0); i < 40; i++ {
		for j := i + 1; j < 40; j++ {
			require.NoError(t, src.Put(i, j, float64(j-i)))
		}
	}

	require.NoError(t, Save(ctx, store, "plain.txt", src))
	require.NoError(t, Save(ctx, store, "packed.txt.zst", src))

	plain, err := blobstore.ReadAll(ctx, store, "plain.txt")
	require.NoError(t, err)
	packed, err := blobstore.ReadAll(ctx, store, "packed.txt.zst")
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))
}

func TestSave_WriterFailureLeavesNoBlob(t *testing.T) {
	ctx := context.Background()
	src, err := Parse(strings.NewReader(lineFile))
	require.NoError(t, err)

	stores := map[string]blobstore.BlobStore{
		"Memory": blobstore.NewMemoryStore(),
		"Local":  blobstore.NewLocalStore(t.TempDir()),
	}

	for storeName, store := range stores {
		t.Run(storeName, func(t *testing.T) {
			err := save(ctx, store, "pairs.txt", src, Compression(9))
			require.Error(t, err)

			_, err = Load(ctx, store, "pairs.txt")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)

			names, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := Load(ctx, store, "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "bad.txt", []byte("0 1 1\n0 x 1\n")))
	_, err = Load(ctx, store, "bad.txt")
	var dfe *core.DataFormatError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, 2, dfe.Line)

	require.NoError(t, store.Put(ctx, "bad.txt.gz", []byte("not gzip")))
	_, err = Load(ctx, store, "bad.txt.gz")
	assert.Error(t, err)

	require.NoError(t, store.Put(ctx, "empty.txt", nil))
	c, err := Load(ctx, store, "empty.txt")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}
