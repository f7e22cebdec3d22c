package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/snake/pkg/log"
)

// BestScoreSaver persists a new best score.
type BestScoreSaver interface {
	Save(ctx context.Context, score int) error
}

type SaveBestScoreWorker struct {
	saver             BestScoreSaver
	saveBestScoreChan <-chan SaveBestScoreRequest
	timeout           time.Duration
	// saved is the highest score written so far, -1 before the first write
	saved int
}

type NewSaveBestScoreWorkerOptions struct {
	Saver             BestScoreSaver
	SaveBestScoreChan <-chan SaveBestScoreRequest
	// Timeout bounds a single save, defaults to 5 seconds
	Timeout time.Duration
}

type SaveBestScoreRequest struct {
	GameID string
	Score  int
}

// NewSaveBestScoreWorker creates a new SaveBestScoreWorker.
// The worker drains best score save requests sent by the game loop so
// that storage latency and failures never reach a tick.
func NewSaveBestScoreWorker(opts NewSaveBestScoreWorkerOptions) *SaveBestScoreWorker {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SaveBestScoreWorker{
		saver:             opts.Saver,
		saveBestScoreChan: opts.SaveBestScoreChan,
		timeout:           timeout,
		saved:             -1,
	}
}

// Start processes requests until the context is cancelled or the channel is closed.
func (w *SaveBestScoreWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest, ok := <-w.saveBestScoreChan:
			if !ok {
				return
			}
			w.saveBestScore(ctx, saveRequest)
		}
	}
}

// saveBestScore writes the request unless a higher score was already written.
// Sessions sharing a tracker may deliver their requests out of order.
func (w *SaveBestScoreWorker) saveBestScore(ctx context.Context, saveRequest SaveBestScoreRequest) {
	if saveRequest.Score <= w.saved {
		log.Debug("Skipped best score %d from game %s: %d already saved", saveRequest.Score, saveRequest.GameID, w.saved)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.saver.Save(ctx, saveRequest.Score); err != nil {
		log.Error("Failed to save best score %d from game %s: %v", saveRequest.Score, saveRequest.GameID, err)
		return
	}
	w.saved = saveRequest.Score
	log.Debug("Saved best score %d from game %s", saveRequest.Score, saveRequest.GameID)
}
