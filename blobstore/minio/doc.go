// Package minio provides a blobstore.BlobStore backed by MinIO or any other
// S3-compatible object store (Ceph, Garage, SeaweedFS) through the MinIO client.
//
//	store, err := minio.New("localhost:9000", "distances",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	    minio.WithPrefix("runs/2024/"),
//	)
//	if err != nil {
//	    return err
//	}
//	cache, err := precomputed.Load(ctx, store, "pairs.txt.gz")
package minio
