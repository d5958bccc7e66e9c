package store

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"news-sentiment-go/internal/httpx"
)

// HTTPObjectStore speaks a plain PUT/GET object protocol against a bucket
// base URL (e.g. the gateway in front of the team bucket).
type HTTPObjectStore struct {
	base string
}

func NewHTTPObjectStore(base string) *HTTPObjectStore {
	return &HTTPObjectStore{base: strings.TrimRight(base, "/")}
}

// URI returns the addressable location of an object, used as media URI for
// transcription submissions.
func (o *HTTPObjectStore) URI(key string) string {
	return o.base + "/" + strings.TrimLeft(key, "/")
}

func (o *HTTPObjectStore) Upload(ctx context.Context, key string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, o.URI(key), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	body, status, err := httpx.Do(req, 15*time.Second)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("upload rejected: status=%d body=%s", status, string(body))
	}
	return nil
}

func (o *HTTPObjectStore) Download(ctx context.Context, key string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.URI(key), nil)
	if err != nil {
		return nil, false, err
	}
	body, status, err := httpx.Do(req, 15*time.Second)
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if status >= 400 {
		return nil, false, fmt.Errorf("download rejected: status=%d body=%s", status, string(body))
	}
	return body, true, nil
}
