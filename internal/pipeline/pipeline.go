package pipeline

import (
	"context"
	"fmt"

	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/sentiment"
	"news-sentiment-go/internal/transcribe"
	"news-sentiment-go/internal/translate"
	"news-sentiment-go/internal/types"
)

// Scraper fetches raw article text for one URL.
type Scraper interface {
	ArticleText(ctx context.Context, pageURL string) (string, error)
}

// Deps wires the stages and collaborators into the driver.
type Deps struct {
	Scraper    Scraper
	Translate  *translate.Stage
	Transcribe *transcribe.Stage
	Sentiment  *sentiment.Stage
	Log        *logger.Logger
}

// Failure records one item excluded from the aggregate.
type Failure struct {
	Source string
	Type   string
	Err    error
}

// Result is the outcome of one batch run.
type Result struct {
	Records  []types.SentimentRecord
	Texts    []types.ProcessedText
	Failures []Failure
}

// Processed returns the number of successfully scored items.
func (r Result) Processed() int { return len(r.Records) }

// Pipeline drives the batch: each item is normalized to English text, scored,
// and persisted. Item failures are isolated; the batch always runs to the end.
type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps}
}

// Run processes every item sequentially. Within one item, translation or
// transcription always completes before sentiment scoring. The only returned
// error is context cancellation; everything else lands in Result.Failures.
func (p *Pipeline) Run(ctx context.Context, items []types.ContentItem) (Result, error) {
	var res Result
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		pt, err := p.resolveText(ctx, item)
		if err != nil {
			p.fail(&res, item, err)
			continue
		}
		res.Texts = append(res.Texts, pt)

		rec, err := p.deps.Sentiment.Process(ctx, pt)
		if err != nil {
			p.fail(&res, item, err)
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func (p *Pipeline) resolveText(ctx context.Context, item types.ContentItem) (types.ProcessedText, error) {
	switch item.Type {
	case types.TypeArticle:
		return p.deps.Translate.Process(ctx, item, func(ctx context.Context) (string, error) {
			return p.deps.Scraper.ArticleText(ctx, item.URL)
		})
	case types.TypeVideo:
		return p.deps.Transcribe.Process(ctx, item)
	default:
		return types.ProcessedText{}, fmt.Errorf("unknown content type %q", item.Type)
	}
}

func (p *Pipeline) fail(res *Result, item types.ContentItem, err error) {
	p.deps.Log.WithStage("pipeline", item.Source).WithError(err).Error("item excluded from aggregate")
	res.Failures = append(res.Failures, Failure{Source: item.Source, Type: item.Type, Err: err})
}
