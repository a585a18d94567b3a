package storage

import "exim/config"

// UploadOptions address a stored object. Folder and PublicID are derived
// from (user, scope, slot), so retrying an upload for the same slot
// overwrites the same object instead of accumulating copies.
type UploadOptions struct {
	Folder       string
	PublicID     string
	ResourceType string
}

// Uploader stores a document and returns its public URL. Failures are
// per-document; callers must treat them as non-fatal for other documents in
// the same batch.
type Uploader interface {
	Upload(data []byte, opts UploadOptions) (string, error)
}

// New returns the configured uploader: the remote storage API when an
// endpoint is set, local disk otherwise.
func New() Uploader {
	if config.AppConfig.StorageApiURL != "" {
		return NewCloudStore(config.AppConfig.StorageApiURL, config.AppConfig.StorageApiKey)
	}
	return NewLocalStore(config.AppConfig.UploadDir, config.AppConfig.BaseURL)
}
