//go:build pi

package neopixel

import (
	"fmt"
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
	log "github.com/sirupsen/logrus"
)

func NewLedController() (*LedController, error) {
	log.Infoln("Initializing LEDs")
	opt := ws.DefaultOptions
	opt.Channels[0].Brightness = brightness
	opt.Channels[0].LedCount = ledCounts

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("create led strip: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("init led strip: %w", err)
	}

	return &LedController{
		ws: dev,
	}, nil
}
