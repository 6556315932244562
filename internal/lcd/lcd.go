//go:build pi

package lcd

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
	"sync"
	"time"
)

// LCD is a HD44780 16x2 character display driven in 4 bit mode.
type LCD struct {
	mu                sync.Mutex
	registerSelection gpio.PinIO
	clockEdge         gpio.PinIO
	dataPins          [4]gpio.PinIO
}

func New() (*LCD, error) {
	log.Infoln("Initializing LCD")
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}

	l := &LCD{}
	pins := []struct {
		p    *gpio.PinIO
		name string
	}{
		{&l.registerSelection, registerSelectionPin},
		{&l.clockEdge, clockEdgePin},
		{&l.dataPins[0], data4Pin},
		{&l.dataPins[1], data5Pin},
		{&l.dataPins[2], data6Pin},
		{&l.dataPins[3], data7Pin},
	}
	for _, pin := range pins {
		*pin.p = gpioreg.ByName(pin.name)
		if *pin.p == nil {
			return nil, fmt.Errorf("lcd pin %s not found", pin.name)
		}
	}

	for _, b := range []byte{0x33, 0x32, 0x28, 0x0C, 0x06, 0x01} {
		if err := l.sendByte(b, command); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *LCD) sendByte(bits byte, mode gpio.Level) error {
	if err := l.registerSelection.Out(mode); err != nil {
		return err
	}
	if err := l.pulseByte(bits, 0x10); err != nil {
		return err
	}
	return l.pulseByte(bits, 0x01)
}

func (l *LCD) pulseByte(bits, mask byte) error {
	for i, pin := range l.dataPins {
		level := gpio.Low
		if bits&(mask<<uint(i)) != 0 {
			level = gpio.High
		}
		if err := pin.Out(level); err != nil {
			return err
		}
	}
	time.Sleep(signalDelay)
	if err := l.clockEdge.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(signalPulse)
	if err := l.clockEdge.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(signalDelay)
	return nil
}

func (l *LCD) printLine(line Line, msg string) {
	m := Fit(msg)
	if err := l.sendByte(byte(line), command); err != nil {
		log.Warnf("Unable to select line %v: %v", line, err)
		return
	}
	for i := 0; i < lineWidth; i++ {
		if err := l.sendByte(m[i], character); err != nil {
			log.Warnf("Unable to write to line %v: %v", line, err)
			return
		}
	}
}

func (l *LCD) PrintLine(line Line, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printLine(line, msg)
}

func (l *LCD) Print(line1, line2 string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printLine(Line1, line1)
	l.printLine(Line2, line2)
}

func (l *LCD) Clear() {
	l.Print("", "")
}
