package neopixel

import (
	log "github.com/sirupsen/logrus"
	"time"
)

// Flash blinks color three times and then falls back to the idle glow. It
// blocks until done or until a newer effect takes the strip.
func (l *LedController) Flash(color uint32) {
	e := l.enter("flash")
	defer e.leave()
	defer l.rest()

	log.Debugf("Flashing color %06x", color)

	steps := []struct {
		color uint32
		hold  time.Duration
	}{
		{color, 250 * time.Millisecond},
		{0, 40 * time.Millisecond},
		{color, 100 * time.Millisecond},
		{0, 40 * time.Millisecond},
		{color, 100 * time.Millisecond},
	}
	for _, s := range steps {
		if e.stopped() {
			return
		}
		if err := l.setColor(s.color); err != nil {
			log.Warn("Unable to set LED color: ", err)
			return
		}
		if !e.hold(s.hold) {
			return
		}
	}

	log.Debug("Flashing done...")
}

// Pulse starts a Flash without waiting for it.
func (l *LedController) Pulse(color uint32) {
	go l.Flash(color)
}

// Glow makes color, at light percent, the idle state of the strip. Flashes
// return to it when they end.
func (l *LedController) Glow(color, light uint32) {
	e := l.enter("glow")
	defer e.leave()

	l.setIdle(withBrightness(color, light))
	l.rest()
}

// Off turns the strip dark and forgets the idle glow.
func (l *LedController) Off() {
	e := l.enter("off")
	defer e.leave()

	l.setIdle(0)
	l.rest()
}

func (l *LedController) enter(name string) *effect {
	e, interrupted := l.stage.enter(name)
	if interrupted != "" {
		log.Debugf("LED %s interrupted by %s", interrupted, name)
	}
	return e
}
