package neopixel

import (
	log "github.com/sirupsen/logrus"
	"sync"
)

const (
	brightness = 90
	ledCounts  = 64
)

type wsEngine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

// LedController owns the LED strip. Effects take turns on a stage, a newer
// effect stops the one that is running.
type LedController struct {
	ws    wsEngine
	stage stage

	mu   sync.Mutex
	idle uint32
}

func (l *LedController) setColor(color uint32) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	leds := l.ws.Leds(0)
	for i := range leds {
		leds[i] = color
	}
	return l.ws.Render()
}

func (l *LedController) setIdle(color uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.idle = color
}

// rest shows the idle glow.
func (l *LedController) rest() {
	l.mu.Lock()
	idle := l.idle
	l.mu.Unlock()

	if err := l.setColor(idle); err != nil {
		log.Warn("Unable to set LED color: ", err)
	}
}

func (l *LedController) Close() {
	e := l.enter("close")
	defer e.leave()

	if err := l.setColor(0); err != nil {
		log.Warn("Unable to clear the LEDs: ", err)
	}
	l.ws.Fini()
}

// withBrightness scales each channel of an 0xRRGGBB color to light percent.
func withBrightness(color, light uint32) uint32 {
	if light > 100 {
		light = 100
	}
	r := (color >> 16 & 0xff) * light / 100
	g := (color >> 8 & 0xff) * light / 100
	b := (color & 0xff) * light / 100
	return r<<16 | g<<8 | b
}
