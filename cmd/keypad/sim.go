package main

import (
	"context"
	"github.com/callebjorkell/keypad/internal/button"
	"github.com/callebjorkell/keypad/internal/hal"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const simHold = 150 * time.Millisecond

// simulatePresses clicks the next button, round robin, on every SIGHUP.
func simulatePresses(ctx context.Context, sim *hal.Sim, table *button.Table) {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)
	defer signal.Stop(hupChan)

	log.Infof("Simulating buttons, send SIGHUP to pid %d to press one", os.Getpid())
	descs := table.Descriptors()
	for i := 0; ; i = (i + 1) % len(descs) {
		select {
		case <-hupChan:
		case <-ctx.Done():
			return
		}
		pin := descs[i].Pin
		log.Debugf("Simulating press of %s", descs[i].Name)
		sim.Press(pin)
		// held long enough for the poller to see it
		time.AfterFunc(simHold, func() { sim.Release(pin) })
	}
}
