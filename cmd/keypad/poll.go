package main

import (
	"context"
	"github.com/callebjorkell/keypad/internal/button"
	log "github.com/sirupsen/logrus"
	"time"
)

type stateReader interface {
	State() button.ID
}

// pollButtons samples the buttons on every tick and reports each new press.
// Holding a button reports it once.
func pollButtons(ctx context.Context, r stateReader, n button.Notifiable, interval time.Duration) {
	log.Infof("Polling buttons every %v", interval)
	t := time.NewTicker(interval)
	defer t.Stop()

	last := button.NoPress
	for {
		select {
		case <-t.C:
		case <-ctx.Done():
			log.Debug("Stopped polling buttons.")
			return
		}

		s := r.State()
		if s != last && s.Valid() {
			n.Notify(s)
		}
		last = s
	}
}
