// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("distances/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	cache, err := precomputed.Load(ctx, store, "pairs.txt.zst")
//
// Reads are served with HTTP range requests. Writes go through the multipart
// uploader and become visible when the writer is closed.
package s3
