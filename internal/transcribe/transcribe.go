package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"news-sentiment-go/internal/ledger"
	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/store"
	"news-sentiment-go/internal/types"
)

// Status of an asynchronous transcription job. COMPLETED and FAILED are
// terminal; polling stops on either.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Job is the handle returned by a submission.
type Job struct {
	Name     string
	MediaURI string
	Status   Status
}

// PollResult is one status observation of a job. DurationSeconds is the
// media length as reported by the service, 0 when not reported.
type PollResult struct {
	Status          Status
	TranscriptURI   string
	DurationSeconds float64
	Reason          string
}

// Client is the transcription service boundary.
type Client interface {
	Submit(ctx context.Context, jobName, mediaURI, format, language string) (Job, error)
	Poll(ctx context.Context, job Job) (PollResult, error)
	FetchTranscript(ctx context.Context, transcriptURI string) (string, error)
}

// Error marks a transcription failure for one job. Timeout distinguishes a
// poll deadline expiry from a job the service itself failed.
type Error struct {
	Job     string
	Timeout bool
	Err     error
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transcription timed out for job %q: %v", e.Job, e.Err)
	}
	return fmt.Sprintf("transcription failed for job %q: %v", e.Job, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// TranscriptKey is the store key of an item's transcript text.
func TranscriptKey(source string) string {
	return "txt/" + source + "_transcript.txt"
}

// AudioKey is the store key the raw audio is mirrored under before submission.
func AudioKey(path string) string {
	return "audio/" + filepath.Base(path)
}

// Options configure the polling loop and the submission parameters.
type Options struct {
	PollInterval time.Duration
	MaxWait      time.Duration
	MediaFormat  string
	Language     string
	// MediaBaseURI prefixes the audio store key to form the media URI handed
	// to the service. Empty means the bare key is submitted (stub services).
	MediaBaseURI string
	// Sleep is swappable so tests can run the poll loop instantly.
	Sleep func(time.Duration)
}

func (o *Options) fill() {
	if o.PollInterval <= 0 {
		o.PollInterval = 5 * time.Second
	}
	if o.MaxWait <= 0 {
		o.MaxWait = 5 * time.Minute
	}
	if o.MediaFormat == "" {
		o.MediaFormat = "mp3"
	}
	if o.Language == "" {
		o.Language = "en-US"
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
}

// Stage turns an audio item into English transcript text via the two-phase
// submit/poll protocol. The store guard makes it idempotent: a cached
// transcript skips submission and ledger charges entirely.
type Stage struct {
	client Client
	store  *store.Store
	ledger *ledger.Ledger
	opts   Options
	log    *logger.Logger
}

func NewStage(client Client, st *store.Store, led *ledger.Ledger, opts Options, log *logger.Logger) *Stage {
	opts.fill()
	return &Stage{client: client, store: st, ledger: led, opts: opts, log: log}
}

// Process resolves the transcript for one video item.
func (s *Stage) Process(ctx context.Context, item types.ContentItem) (types.ProcessedText, error) {
	log := s.log.WithStage("transcribe", item.Source)
	key := TranscriptKey(item.Source)

	if cached, ok, err := s.store.Get(ctx, key); err != nil {
		return types.ProcessedText{}, &Error{Job: item.Source, Err: err}
	} else if ok && len(cached) > 0 {
		log.Info("transcript cached, skipping submission")
		return transcriptOf(item, string(cached)), nil
	}

	audio, err := os.ReadFile(item.AudioPath)
	if err != nil {
		return types.ProcessedText{}, &Error{Job: item.Source, Err: fmt.Errorf("read audio: %w", err)}
	}
	audioKey := AudioKey(item.AudioPath)
	if err := s.store.Put(ctx, audioKey, audio); err != nil {
		return types.ProcessedText{}, &Error{Job: item.Source, Err: err}
	}
	mediaURI := audioKey
	if s.opts.MediaBaseURI != "" {
		mediaURI = s.opts.MediaBaseURI + "/" + audioKey
	}

	// fresh name per submission; resume comes from the store guard, never
	// from job-name reuse
	jobName := fmt.Sprintf("transcribe-%s-%s", item.Source, uuid.New().String())
	log.WithField("job", jobName).Info("submitting transcription job")
	job, err := s.client.Submit(ctx, jobName, mediaURI, s.opts.MediaFormat, s.opts.Language)
	if err != nil {
		return types.ProcessedText{}, &Error{Job: jobName, Err: err}
	}

	res, err := s.pollUntilTerminal(ctx, job, log)
	if err != nil {
		return types.ProcessedText{}, err
	}

	text, err := s.client.FetchTranscript(ctx, res.TranscriptURI)
	if err != nil {
		return types.ProcessedText{}, &Error{Job: jobName, Err: err}
	}

	seconds := res.DurationSeconds
	if seconds <= 0 {
		seconds = item.DurationSeconds
	}
	if seconds <= 0 {
		return types.ProcessedText{}, &Error{Job: jobName, Err: fmt.Errorf("no media duration available for billing")}
	}
	s.ledger.Add(ledger.TranscribeSeconds, seconds)

	if err := s.store.Put(ctx, key, []byte(text)); err != nil {
		return types.ProcessedText{}, &Error{Job: jobName, Err: err}
	}
	log.WithField("seconds", seconds).Info("transcription complete")
	return transcriptOf(item, text), nil
}

// pollUntilTerminal is the pipeline's one suspension point: fixed-interval
// polling bounded by MaxWait.
func (s *Stage) pollUntilTerminal(ctx context.Context, job Job, log *logrus.Entry) (PollResult, error) {
	var waited time.Duration
	for {
		if err := ctx.Err(); err != nil {
			return PollResult{}, &Error{Job: job.Name, Err: err}
		}
		res, err := s.client.Poll(ctx, job)
		if err != nil {
			// transient poll errors consume the budget like any other tick
			log.WithError(err).Warn("poll failed")
		} else {
			switch res.Status {
			case StatusCompleted:
				return res, nil
			case StatusFailed:
				return PollResult{}, &Error{Job: job.Name, Err: fmt.Errorf("job failed: %s", res.Reason)}
			}
			log.WithField("status", string(res.Status)).Debug("job still running")
		}
		if waited >= s.opts.MaxWait {
			return PollResult{}, &Error{Job: job.Name, Timeout: true, Err: fmt.Errorf("no terminal status after %s", s.opts.MaxWait)}
		}
		s.opts.Sleep(s.opts.PollInterval)
		waited += s.opts.PollInterval
	}
}

func transcriptOf(item types.ContentItem, text string) types.ProcessedText {
	return types.ProcessedText{
		Source:         item.Source,
		Type:           item.Type,
		EnglishText:    text,
		OriginLanguage: "en",
	}
}
