package translate

import (
	"context"
	"time"

	"news-sentiment-go/internal/httpx"
)

type translateRequest struct {
	Text               string `json:"text"`
	SourceLanguageCode string `json:"source_language_code"`
	TargetLanguageCode string `json:"target_language_code"`
}

type translateResponse struct {
	TranslatedText     string `json:"translated_text"`
	SourceLanguageCode string `json:"source_language_code"`
	Error              string `json:"error,omitempty"`
}

// HTTPClient calls the translation service over its JSON API.
type HTTPClient struct {
	endpoint string
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{endpoint: endpoint}
}

func (c *HTTPClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (Result, error) {
	req, err := httpx.PostJSON(c.endpoint+"/translate", translateRequest{
		Text:               text,
		SourceLanguageCode: sourceLang,
		TargetLanguageCode: targetLang,
	})
	if err != nil {
		return Result{}, err
	}
	req = req.WithContext(ctx)

	var resp translateResponse
	if err := httpx.DoJSON(req, 12*time.Second, &resp); err != nil {
		return Result{}, err
	}
	return Result{Text: resp.TranslatedText, DetectedLang: resp.SourceLanguageCode}, nil
}
