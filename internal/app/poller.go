package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/cardwallet/internal/logging"
	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/wallet"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 30 * time.Second
)

// sessionHolder is the session the poller lists for. The UI replaces it
// when a new session is installed.
type sessionHolder struct {
	mu      sync.RWMutex
	session wallet.Session
}

func (h *sessionHolder) Set(s wallet.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = s
}

func (h *sessionHolder) Get() wallet.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

// StartPoller launches a background goroutine that reloads the card list
// into store for whichever session current returns at each tick. Failures
// back off exponentially up to maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, current func() wallet.Session, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			session := current()
			if !session.Valid() {
				timer.Reset(interval)
				continue
			}
			if err := state.Refresh(ctx, session.Store, store, session.User.ID); err != nil && ctx.Err() == nil {
				logging.Warn("card poll failed",
					zap.String("user", session.User.ID),
					zap.Error(err),
					zap.Int("failures", store.Snapshot().ConsecutiveFailures),
				)
			}
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff. Intervals already above the cap are left alone.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
