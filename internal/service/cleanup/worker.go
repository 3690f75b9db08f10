package cleanup

import (
	"log"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

const finishedGameTTL = 30 * time.Minute

type Worker struct {
	SessionManager *game.SessionManager
	IdleTimeout    time.Duration
	Interval       time.Duration
	stop           chan struct{}
}

func NewWorker(sm *game.SessionManager, idleTimeout time.Duration) *Worker {
	return &Worker{
		SessionManager: sm,
		IdleTimeout:    idleTimeout,
		Interval:       10 * time.Minute,
		stop:           make(chan struct{}),
	}
}

// Start runs the cleanup once and then on every tick until Stop is called
func (w *Worker) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		w.RunCleanup()
		for {
			select {
			case <-ticker.C:
				w.RunCleanup()
			case <-w.stop:
				return
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) Stop() {
	close(w.stop)
}

// RunCleanup evicts stale sessions from memory and reports how many went
func (w *Worker) RunCleanup() int {
	removed := w.SessionManager.CleanupOldSessions(finishedGameTTL, w.IdleTimeout)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d stale sessions", removed)
	}
	return removed
}
