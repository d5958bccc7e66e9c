package translate_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"news-sentiment-go/internal/ledger"
	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/normalize"
	"news-sentiment-go/internal/store"
	"news-sentiment-go/internal/translate"
	"news-sentiment-go/internal/types"
)

type stubTranslator struct {
	calls    int
	lastText string
	detected string
	err      error
}

func (s *stubTranslator) Translate(_ context.Context, text, _, _ string) (translate.Result, error) {
	s.calls++
	s.lastText = text
	if s.err != nil {
		return translate.Result{}, s.err
	}
	return translate.Result{Text: "TRANSLATED: " + text[:10], DetectedLang: s.detected}, nil
}

func newStage(t *testing.T, client translate.Client, led *ledger.Ledger) (*translate.Stage, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir(), nil, logger.New())
	require.NoError(t, err)
	return translate.NewStage(client, st, led, normalize.ProviderLimit, logger.New()), st
}

func staticFetch(text string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return text, nil }
}

func TestEnglishPassthrough(t *testing.T) {
	client := &stubTranslator{}
	led := ledger.New()
	stage, _ := newStage(t, client, led)

	item := types.ContentItem{Source: "cnn", Type: types.TypeArticle, LanguageHint: "en"}
	pt, err := stage.Process(context.Background(), item, staticFetch("rates were cut"))
	require.NoError(t, err)
	require.Equal(t, "rates were cut", pt.EnglishText)
	require.Equal(t, "en", pt.OriginLanguage)
	require.Zero(t, client.calls)
	require.Zero(t, led.Snapshot()[ledger.TranslateChars])
}

func TestTranslationIncrementsLedgerByTruncatedChars(t *testing.T) {
	client := &stubTranslator{detected: "de"}
	led := ledger.New()
	stage, _ := newStage(t, client, led)

	long := strings.Repeat("ä", normalize.ProviderLimit+500)
	item := types.ContentItem{Source: "german", Type: types.TypeArticle, LanguageHint: "de"}
	pt, err := stage.Process(context.Background(), item, staticFetch(long))
	require.NoError(t, err)

	require.Equal(t, 1, client.calls)
	require.Equal(t, normalize.ProviderLimit, utf8.RuneCountInString(client.lastText))
	require.Equal(t, float64(normalize.ProviderLimit), led.Snapshot()[ledger.TranslateChars])
	require.Equal(t, "de", pt.OriginLanguage)
}

func TestCachedArticleSkipsEverything(t *testing.T) {
	client := &stubTranslator{}
	led := ledger.New()
	stage, st := newStage(t, client, led)

	require.NoError(t, st.Put(context.Background(), translate.ArticleKey("german"), []byte("cached english text")))

	fetchCalled := false
	item := types.ContentItem{Source: "german", Type: types.TypeArticle, LanguageHint: "de"}
	pt, err := stage.Process(context.Background(), item, func(context.Context) (string, error) {
		fetchCalled = true
		return "", errors.New("should not fetch")
	})
	require.NoError(t, err)
	require.False(t, fetchCalled)
	require.Zero(t, client.calls)
	require.Zero(t, led.Snapshot()[ledger.TranslateChars])
	require.Equal(t, "cached english text", pt.EnglishText)
}

func TestTranslationFailureIsTyped(t *testing.T) {
	client := &stubTranslator{err: errors.New("quota exceeded")}
	led := ledger.New()
	stage, _ := newStage(t, client, led)

	item := types.ContentItem{Source: "german", Type: types.TypeArticle, LanguageHint: "de"}
	_, err := stage.Process(context.Background(), item, staticFetch("etwas text"))

	var terr *translate.Error
	require.ErrorAs(t, err, &terr)
	require.Equal(t, "german", terr.Source)
	require.Zero(t, led.Snapshot()[ledger.TranslateChars])
}
