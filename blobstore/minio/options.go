package minio

// Options configures a Store.
type Options struct {
	// Prefix is prepended to every blob name.
	Prefix string

	// AccessKey and SecretKey are static credentials. Only used by New.
	AccessKey string
	SecretKey string

	// Secure enables TLS. Only used by New.
	Secure bool

	// Region of the bucket. Only used by New.
	Region string

	// ContentType is stored with every uploaded blob.
	ContentType string

	// PartSize of multipart uploads. Zero lets the client choose.
	PartSize uint64
}

// DefaultOptions contains the default Store options.
var DefaultOptions = Options{
	ContentType: "application/octet-stream",
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(o *Options) {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// WithCredentials sets static access credentials.
func WithCredentials(accessKey, secretKey string) func(o *Options) {
	return func(o *Options) {
		o.AccessKey = accessKey
		o.SecretKey = secretKey
	}
}

// WithSecure enables or disables TLS.
func WithSecure(secure bool) func(o *Options) {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithRegion sets the bucket region.
func WithRegion(region string) func(o *Options) {
	return func(o *Options) {
		o.Region = region
	}
}

// WithContentType sets the content type of uploaded blobs.
func WithContentType(contentType string) func(o *Options) {
	return func(o *Options) {
		o.ContentType = contentType
	}
}

// WithPartSize sets the multipart upload part size.
func WithPartSize(size uint64) func(o *Options) {
	return func(o *Options) {
		o.PartSize = size
	}
}
