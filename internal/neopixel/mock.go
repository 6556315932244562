//go:build !pi

package neopixel

import (
	log "github.com/sirupsen/logrus"
	"sync"
)

type mockEngine struct {
	mu       sync.Mutex
	colors   []uint32
	rendered []uint32
	finished bool
}

func (d *mockEngine) Init() error {
	return nil
}

func (d *mockEngine) Render() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.Debugf("neopixel: render %06x", d.colors[0])
	d.rendered = append(d.rendered, d.colors[0])
	return nil
}

func (d *mockEngine) Wait() error {
	return nil
}

func (d *mockEngine) Fini() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.finished = true
}

func (d *mockEngine) Leds(_ int) []uint32 {
	return d.colors
}

func (d *mockEngine) history() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]uint32, len(d.rendered))
	copy(out, d.rendered)
	return out
}

func NewLedController() (*LedController, error) {
	log.Infoln("Starting the LEDs (mock)")
	return &LedController{
		ws: &mockEngine{
			colors: make([]uint32, 1),
		},
	}, nil
}
