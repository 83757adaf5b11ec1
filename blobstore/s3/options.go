package s3

// UploadConfig configures the multipart uploader.
type UploadConfig struct {
	// PartSize is the size of each multipart chunk. Put uses a single
	// PutObject call for payloads below this size.
	PartSize int64

	// Concurrency is the number of parts uploaded in parallel.
	Concurrency int

	// EnableChecksum requests CRC32C integrity validation.
	EnableChecksum bool

	// LeavePartsOnError keeps uploaded parts when a multipart upload fails.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns the default upload settings.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 * 1024 * 1024,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

// Options configures a Store.
type Options struct {
	// Prefix is prepended to every blob name.
	Prefix string

	// Region overrides the region of the default AWS configuration. Only used by New.
	Region string

	// Upload configures the multipart uploader.
	Upload UploadConfig
}

// DefaultOptions contains the default Store options.
var DefaultOptions = Options{
	Upload: DefaultUploadConfig(),
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(o *Options) {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// WithRegion sets the AWS region.
func WithRegion(region string) func(o *Options) {
	return func(o *Options) {
		o.Region = region
	}
}

// WithUploadConfig replaces the upload settings.
func WithUploadConfig(cfg UploadConfig) func(o *Options) {
	return func(o *Options) {
		o.Upload = cfg
	}
}
