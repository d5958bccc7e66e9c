package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"news-sentiment-go/internal/ledger"
	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/normalize"
	"news-sentiment-go/internal/store"
	"news-sentiment-go/internal/types"
)

// sumEpsilon bounds how far the four reported scores may drift from a proper
// distribution before the result is rejected. Providers round each score, so
// exact unity is not expected.
const sumEpsilon = 0.05

// Scores is the provider's 4-way probability distribution.
type Scores struct {
	Positive float64
	Negative float64
	Neutral  float64
	Mixed    float64
}

// Result is the boundary response of the sentiment provider.
type Result struct {
	Sentiment string
	Scores    Scores
}

// Client is the sentiment-detection boundary call.
type Client interface {
	DetectSentiment(ctx context.Context, text, language string) (Result, error)
}

// Error marks a sentiment failure for one source. Such items are absent from
// the aggregate, never silently zeroed.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sentiment analysis failed for %q: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// RecordKey is the store key of an item's persisted sentiment record.
func RecordKey(source, contentType string) string {
	return "sentiment/" + source + "_" + contentType + ".json"
}

// Stage scores normalized English text. The store guard makes it idempotent:
// a cached record is returned without a billable call. A record is persisted
// only once all four scores are in hand.
type Stage struct {
	client Client
	store  *store.Store
	ledger *ledger.Ledger
	limit  int
	log    *logger.Logger
}

func NewStage(client Client, st *store.Store, led *ledger.Ledger, limit int, log *logger.Logger) *Stage {
	if limit <= 0 {
		limit = normalize.ProviderLimit
	}
	return &Stage{client: client, store: st, ledger: led, limit: limit, log: log}
}

// Process scores one processed text and returns its record.
func (s *Stage) Process(ctx context.Context, pt types.ProcessedText) (types.SentimentRecord, error) {
	log := s.log.WithStage("sentiment", pt.Source)
	key := RecordKey(pt.Source, pt.Type)

	if cached, ok, err := s.store.Get(ctx, key); err != nil {
		return types.SentimentRecord{}, &Error{Source: pt.Source, Err: err}
	} else if ok {
		var rec types.SentimentRecord
		if jerr := json.Unmarshal(cached, &rec); jerr == nil && validScores(rec) == nil {
			log.Info("sentiment record cached, skipping call")
			return rec, nil
		}
		// unreadable cached artifact counts as a miss and is recomputed
		log.Warn("cached sentiment record unreadable, recomputing")
	}

	input := normalize.Truncate(pt.EnglishText, s.limit)
	res, err := s.client.DetectSentiment(ctx, input, "en")
	if err != nil {
		return types.SentimentRecord{}, &Error{Source: pt.Source, Err: err}
	}
	s.ledger.Add(ledger.ComprehendCalls, 1)

	rec := types.SentimentRecord{
		Source:    pt.Source,
		Type:      pt.Type,
		Sentiment: res.Sentiment,
		Positive:  res.Scores.Positive,
		Negative:  res.Scores.Negative,
		Neutral:   res.Scores.Neutral,
		Mixed:     res.Scores.Mixed,
	}
	if err := validScores(rec); err != nil {
		return types.SentimentRecord{}, &Error{Source: pt.Source, Err: err}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return types.SentimentRecord{}, &Error{Source: pt.Source, Err: err}
	}
	if err := s.store.Put(ctx, key, data); err != nil {
		return types.SentimentRecord{}, &Error{Source: pt.Source, Err: err}
	}
	log.WithField("sentiment", rec.Sentiment).Info("sentiment scored")
	return rec, nil
}

func validScores(rec types.SentimentRecord) error {
	sum := 0.0
	for _, v := range []float64{rec.Positive, rec.Negative, rec.Neutral, rec.Mixed} {
		if v < 0 || v > 1 {
			return fmt.Errorf("score %v out of [0,1]", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > sumEpsilon {
		return fmt.Errorf("scores sum to %v, expected ~1", sum)
	}
	return nil
}
