package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"news-sentiment-go/internal/httpx"
)

type submitRequest struct {
	JobName      string `json:"job_name"`
	MediaFileURI string `json:"media_file_uri"`
	MediaFormat  string `json:"media_format"`
	LanguageCode string `json:"language_code"`
}

type jobResponse struct {
	JobName           string  `json:"job_name"`
	JobStatus         string  `json:"job_status"`
	TranscriptFileURI string  `json:"transcript_file_uri,omitempty"`
	MediaDurationSec  float64 `json:"media_duration_seconds,omitempty"`
	FailureReason     string  `json:"failure_reason,omitempty"`
}

// transcriptPayload mirrors the transcript document the service stores at the
// transcript URI: a list of alternatives, first entry is the full text.
type transcriptPayload struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// HTTPClient calls the transcription service over its JSON job API.
type HTTPClient struct {
	endpoint string
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{endpoint: endpoint}
}

func (c *HTTPClient) Submit(ctx context.Context, jobName, mediaURI, format, language string) (Job, error) {
	req, err := httpx.PostJSON(c.endpoint+"/jobs", submitRequest{
		JobName:      jobName,
		MediaFileURI: mediaURI,
		MediaFormat:  format,
		LanguageCode: language,
	})
	if err != nil {
		return Job{}, err
	}
	req = req.WithContext(ctx)

	var resp jobResponse
	if err := httpx.DoJSON(req, 12*time.Second, &resp); err != nil {
		return Job{}, err
	}
	return Job{Name: resp.JobName, MediaURI: mediaURI, Status: StatusInProgress}, nil
}

func (c *HTTPClient) Poll(ctx context.Context, job Job) (PollResult, error) {
	u := fmt.Sprintf("%s/jobs?name=%s", c.endpoint, url.QueryEscape(job.Name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return PollResult{}, err
	}

	var resp jobResponse
	if err := httpx.DoJSON(req, 12*time.Second, &resp); err != nil {
		return PollResult{}, err
	}
	res := PollResult{
		TranscriptURI:   resp.TranscriptFileURI,
		DurationSeconds: resp.MediaDurationSec,
		Reason:          resp.FailureReason,
	}
	switch resp.JobStatus {
	case "COMPLETED":
		res.Status = StatusCompleted
	case "FAILED":
		res.Status = StatusFailed
	default:
		res.Status = StatusInProgress
	}
	return res, nil
}

// FetchTranscript downloads the transcript document and returns the first
// transcript's text.
func (c *HTTPClient) FetchTranscript(ctx context.Context, transcriptURI string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transcriptURI, nil)
	if err != nil {
		return "", err
	}
	body, status, err := httpx.Do(req, 12*time.Second)
	if err != nil {
		return "", err
	}
	if status >= 300 {
		return "", fmt.Errorf("download failed: status=%d body=%s", status, string(body))
	}
	var payload transcriptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode transcript document: %w", err)
	}
	if len(payload.Results.Transcripts) == 0 {
		return "", fmt.Errorf("transcript document has no transcripts")
	}
	return payload.Results.Transcripts[0].Transcript, nil
}
