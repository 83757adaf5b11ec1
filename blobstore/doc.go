// Package blobstore provides storage abstraction for distance files and other
// immutable blobs.
//
// BlobStore is the interface for reading and writing data blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-memory store for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// Blobs are read either through ReadAt or as a stream:
//
//	b, err := store.Open(ctx, "distances.txt.zst")
//	r, err := blobstore.NewReader(ctx, b)
package blobstore
