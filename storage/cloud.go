package storage

import (
	"bytes"
	"fmt"

	"github.com/go-resty/resty/v2"
)

type cloudUploadResponse struct {
	SecureUrl string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CloudStore uploads documents to the remote storage API over multipart
// POST. The publicId addressing makes re-uploads overwrite in place.
type CloudStore struct {
	client *resty.Client
	apiURL string
	apiKey string
}

func NewCloudStore(apiURL, apiKey string) *CloudStore {
	return &CloudStore{
		client: resty.New(),
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

func (s *CloudStore) Upload(data []byte, opts UploadOptions) (string, error) {
	var result cloudUploadResponse

	resp, err := s.client.R().
		SetHeader("x-api-key", s.apiKey).
		SetFileReader("file", opts.PublicID, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"folder":        opts.Folder,
			"public_id":     opts.PublicID,
			"resource_type": opts.ResourceType,
		}).
		SetResult(&result).
		Post(s.apiURL + "/upload")
	if err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("storage upload failed with status %d: %s", resp.StatusCode(), result.Error.Message)
	}
	if result.SecureUrl == "" {
		return "", fmt.Errorf("storage upload returned no url")
	}

	return result.SecureUrl, nil
}
