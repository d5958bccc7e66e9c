package ledger_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"news-sentiment-go/internal/ledger"
)

func TestNewStartsAtZero(t *testing.T) {
	l := ledger.New()
	snap := l.Snapshot()
	require.Zero(t, snap[ledger.TranslateChars])
	require.Zero(t, snap[ledger.ComprehendCalls])
	require.Zero(t, snap[ledger.TranscribeSeconds])
}

func TestAddAccumulates(t *testing.T) {
	l := ledger.New()
	l.Add(ledger.TranslateChars, 1199)
	l.Add(ledger.ComprehendCalls, 1)
	l.Add(ledger.ComprehendCalls, 1)
	l.Add(ledger.TranscribeSeconds, 30)

	snap := l.Snapshot()
	require.Equal(t, 1199.0, snap[ledger.TranslateChars])
	require.Equal(t, 2.0, snap[ledger.ComprehendCalls])
	require.Equal(t, 30.0, snap[ledger.TranscribeSeconds])
}

func TestSnapshotIsACopy(t *testing.T) {
	l := ledger.New()
	l.Add(ledger.ComprehendCalls, 1)
	snap := l.Snapshot()
	snap[ledger.ComprehendCalls] = 99

	require.Equal(t, 1.0, l.Snapshot()[ledger.ComprehendCalls])
}

func TestAddConcurrent(t *testing.T) {
	l := ledger.New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Add(ledger.ComprehendCalls, 1)
		}()
	}
	wg.Wait()
	require.Equal(t, 100.0, l.Snapshot()[ledger.ComprehendCalls])
}
