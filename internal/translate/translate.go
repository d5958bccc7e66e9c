package translate

import (
	"context"
	"fmt"
	"unicode/utf8"

	"news-sentiment-go/internal/ledger"
	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/normalize"
	"news-sentiment-go/internal/store"
	"news-sentiment-go/internal/types"
)

// Result is the boundary response of the translation provider.
type Result struct {
	Text         string
	DetectedLang string
}

// Client is the translation boundary call. sourceLang "auto" asks the
// provider to detect the language itself.
type Client interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (Result, error)
}

// Error marks a translation failure for one source. The stage does not retry;
// retry policy belongs to the boundary client.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translation failed for %q: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ArticleKey is the store key of an item's final English article text.
func ArticleKey(source string) string {
	return "txt/" + source + "_article.txt"
}

// Stage turns raw article text into English text. English input passes
// through untouched. The store guard makes the stage idempotent: a cached
// article skips the fetch and the billable translate call entirely.
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

// Process resolves the English text for one article item. fetch supplies the
// raw text lazily so a warm cache skips scraping as well.
func (s *Stage) Process(ctx context.Context, item types.ContentItem, fetch func(context.Context) (string, error)) (types.ProcessedText, error) {
	log := s.log.WithStage("translate", item.Source)
	key := ArticleKey(item.Source)

	origin := item.LanguageHint
	if origin == "" {
		origin = "en"
	}

	if cached, ok, err := s.store.Get(ctx, key); err != nil {
		return types.ProcessedText{}, &Error{Source: item.Source, Err: err}
	} else if ok && len(cached) > 0 {
		log.Info("article cached, skipping fetch and translation")
		return processed(item, string(cached), origin), nil
	}

	raw, err := fetch(ctx)
	if err != nil {
		return types.ProcessedText{}, &Error{Source: item.Source, Err: err}
	}

	final := raw
	if origin != "en" {
		input := normalize.Truncate(raw, s.limit)
		log.WithField("chars", utf8.RuneCountInString(input)).Info("translating to English")
		res, terr := s.client.Translate(ctx, input, "auto", "en")
		if terr != nil {
			return types.ProcessedText{}, &Error{Source: item.Source, Err: terr}
		}
		s.ledger.Add(ledger.TranslateChars, float64(utf8.RuneCountInString(input)))
		final = res.Text
		if res.DetectedLang != "" {
			origin = res.DetectedLang
		}
	}

	if err := s.store.Put(ctx, key, []byte(final)); err != nil {
		return types.ProcessedText{}, &Error{Source: item.Source, Err: err}
	}
	return processed(item, final, origin), nil
}

func processed(item types.ContentItem, text, origin string) types.ProcessedText {
	return types.ProcessedText{
		Source:         item.Source,
		Type:           item.Type,
		EnglishText:    text,
		OriginLanguage: origin,
	}
}
