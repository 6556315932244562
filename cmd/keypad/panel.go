package main

import (
	"fmt"
	"github.com/callebjorkell/keypad/internal/button"
	log "github.com/sirupsen/logrus"
)

type screen interface {
	Print(line1, line2 string)
}

type lights interface {
	Pulse(color uint32)
	Glow(color, light uint32)
	Off()
}

// dim white while waiting for a press
const (
	readyColor = 0xffffff
	readyLight = 5
)

type forwarder interface {
	Publish(d button.Descriptor) error
}

// frontPanel is the one subscriber of the buttons. Every part is optional.
// Notify is only ever called from a single goroutine.
type frontPanel struct {
	table     *button.Table
	colors    map[button.ID]uint32
	screen    screen
	lights    lights
	forwarder forwarder
	presses   map[button.ID]int
}

func newFrontPanel(table *button.Table, colors map[button.ID]uint32) *frontPanel {
	return &frontPanel{
		table:   table,
		colors:  colors,
		presses: make(map[button.ID]int),
	}
}

func (p *frontPanel) Ready() {
	if p.screen != nil {
		p.screen.Print("Ready", fmt.Sprintf("%d buttons", p.table.Len()))
	}
	if p.lights != nil {
		p.lights.Glow(readyColor, readyLight)
	}
}

// Sleep blanks the outputs on shutdown.
func (p *frontPanel) Sleep() {
	if p.screen != nil {
		p.screen.Print("  Sleeping...", "")
	}
	if p.lights != nil {
		p.lights.Off()
	}
}

func (p *frontPanel) Notify(id button.ID) {
	d, ok := p.table.ByID(id)
	if !ok {
		log.Warnf("Notified about unknown button %d", id)
		return
	}
	p.presses[id]++
	log.Infof("Button %s pressed (%d)", d.Name, p.presses[id])

	if p.screen != nil {
		p.screen.Print(fmt.Sprintf("%s pressed", d.Name), fmt.Sprintf("count %d", p.presses[id]))
	}
	if p.lights != nil {
		p.lights.Pulse(p.colors[id])
	}
	if p.forwarder != nil {
		if err := p.forwarder.Publish(d); err != nil {
			log.Warn("Unable to forward button press: ", err)
		}
	}
}
