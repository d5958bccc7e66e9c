package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Client is the shared HTTP client for all boundary calls.
var Client = &http.Client{Timeout: 12 * time.Second}

// Do sends the request, retrying transport errors and 5xx responses with
// exponential backoff, and returns the response body. Requests must carry a
// rewindable body via GetBody (http.NewRequest sets it for byte readers).
func Do(req *http.Request, maxElapsed time.Duration) ([]byte, int, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed

	var lastErr error
	var body []byte
	var status int
	op := func() error {
		if req.GetBody != nil {
			rc, err := req.GetBody()
			if err != nil {
				lastErr = err
				return backoff.Permanent(err)
			}
			req.Body = rc
		}
		resp, err := Client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ = io.ReadAll(resp.Body)
		status = resp.StatusCode
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, bo); err != nil {
		return nil, 0, lastErr
	}
	return body, status, nil
}

// DoJSON runs Do and decodes the response body into target.
func DoJSON(req *http.Request, maxElapsed time.Duration, target interface{}) error {
	body, status, err := Do(req, maxElapsed)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("request failed: status=%d body=%s", status, string(body))
	}
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("json decode error: %v body=%s", err, string(body))
	}
	return nil
}

// PostJSON builds a JSON POST request with a rewindable body.
func PostJSON(url string, payload interface{}) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
