package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/store"
)

type fakeRemote struct {
	objects   map[string][]byte
	uploadErr error
	uploads   int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{objects: map[string][]byte{}}
}

func (f *fakeRemote) Upload(_ context.Context, key string, data []byte) error {
	f.uploads++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeRemote) Download(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := f.objects[key]
	return data, ok, nil
}

func TestPutGetRoundTrip(t *testing.T) {
	remote := newFakeRemote()
	s, err := store.New(t.TempDir(), remote, logger.New())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "txt/cnn_article.txt", []byte("body")))

	data, ok, err := s.Get(ctx, "txt/cnn_article.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("body"), data)
	require.Equal(t, []byte("body"), remote.objects["txt/cnn_article.txt"])
	require.True(t, s.Exists(ctx, "txt/cnn_article.txt"))
}

func TestGetAbsent(t *testing.T) {
	s, err := store.New(t.TempDir(), nil, logger.New())
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "txt/missing.txt")
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, s.Exists(context.Background(), "txt/missing.txt"))
}

func TestRemoteFailureIsNonFatal(t *testing.T) {
	remote := newFakeRemote()
	remote.uploadErr = errors.New("network down")
	s, err := store.New(t.TempDir(), remote, logger.New())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "txt/bbc_article.txt", []byte("body")))

	// local copy still readable
	data, ok, err := s.Get(ctx, "txt/bbc_article.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("body"), data)

	require.Equal(t, []string{"txt/bbc_article.txt"}, s.RemoteFailures())
}

func TestGetFallsBackToRemote(t *testing.T) {
	remote := newFakeRemote()
	remote.objects["txt/reuters_transcript.txt"] = []byte("cached transcript")
	s, err := store.New(t.TempDir(), remote, logger.New())
	require.NoError(t, err)

	ctx := context.Background()
	data, ok, err := s.Get(ctx, "txt/reuters_transcript.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("cached transcript"), data)

	// refreshed locally; a second read must not need the remote
	remote.objects = map[string][]byte{}
	data, ok, err = s.Get(ctx, "txt/reuters_transcript.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("cached transcript"), data)
}

func TestPutOverwrites(t *testing.T) {
	s, err := store.New(t.TempDir(), nil, logger.New())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []byte("old")))
	require.NoError(t, s.Put(ctx, "k", []byte("new")))

	data, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("new"), data)
}
