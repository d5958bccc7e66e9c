package sentiment

import (
	"context"
	"time"

	"news-sentiment-go/internal/httpx"
)

type detectRequest struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
}

type detectResponse struct {
	Sentiment      string `json:"sentiment"`
	SentimentScore struct {
		Positive float64 `json:"positive"`
		Negative float64 `json:"negative"`
		Neutral  float64 `json:"neutral"`
		Mixed    float64 `json:"mixed"`
	} `json:"sentiment_score"`
}

// HTTPClient calls the sentiment service over its JSON API.
type HTTPClient struct {
	endpoint string
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{endpoint: endpoint}
}

func (c *HTTPClient) DetectSentiment(ctx context.Context, text, language string) (Result, error) {
	req, err := httpx.PostJSON(c.endpoint+"/detect-sentiment", detectRequest{
		Text:         text,
		LanguageCode: language,
	})
	if err != nil {
		return Result{}, err
	}
	req = req.WithContext(ctx)

	var resp detectResponse
	if err := httpx.DoJSON(req, 12*time.Second, &resp); err != nil {
		return Result{}, err
	}
	return Result{
		Sentiment: resp.Sentiment,
		Scores: Scores{
			Positive: resp.SentimentScore.Positive,
			Negative: resp.SentimentScore.Negative,
			Neutral:  resp.SentimentScore.Neutral,
			Mixed:    resp.SentimentScore.Mixed,
		},
	}, nil
}
