package precomputed

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/vecscan/blobstore"
)

// Load reads and parses the named distance file from store. The codec is
// chosen by the file extension of name.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Cache, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("precomputed: open %s: %w", name, err)
	}
	defer blob.Close()

	r, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("precomputed: read %s: %w", name, err)
	}
	defer r.Close()

	dr, err := CompressionFor(name).NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	c, err := Parse(dr)
	if err != nil {
		return nil, fmt.Errorf("precomputed: load %s: %w", name, err)
	}
	return c, nil
}

// Save writes c to the named blob of store, compressed according to the file
// extension of name. A failed write removes the blob.
func Save(ctx context.Context, store blobstore.BlobStore, name string, c *Cache) error {
	return save(ctx, store, name, c, CompressionFor(name))
}

func save(ctx context.Context, store blobstore.BlobStore, name string, c *Cache, comp Compression) error {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("precomputed: create %s: %w", name, err)
	}

	cw, err := comp.NewWriter(blob)
	if err != nil {
		_ = blob.Close()
		_ = store.Delete(ctx, name)
		return err
	}

	if err := Write(cw, c); err != nil {
		_ = cw.Close()
		_ = blob.Close()
		_ = store.Delete(ctx, name)
		return err
	}
	if err := cw.Close(); err != nil {
		_ = blob.Close()
		_ = store.Delete(ctx, name)
		return fmt.Errorf("precomputed: flush %s: %w", name, err)
	}
	if err := errors.Join(blob.Sync(), blob.Close()); err != nil {
		return fmt.Errorf("precomputed: close %s: %w", name, err)
	}
	return nil
}
