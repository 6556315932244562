package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/callebjorkell/keypad/internal/button"
	"github.com/callebjorkell/keypad/internal/hal"
	"github.com/callebjorkell/keypad/internal/lcd"
	"github.com/callebjorkell/keypad/internal/mqttpub"
	"github.com/callebjorkell/keypad/internal/neopixel"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"os"
	"os/signal"
	"syscall"
)

var (
	app        = kingpin.New("keypad", "Debounced button presses for a front panel")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Configuration file.").Short('c').Default(defaultConfigFile).String()
	start      = app.Command("start", "Deliver button presses using edge interrupts")
	poll       = app.Command("poll", "Poll the buttons instead of using edge interrupts")
	version    = app.Command("version", "Show current version.")
)

var buildTime, buildVersion string

func showVersion() {
	if buildTime != "" && buildVersion != "" {
		fmt.Printf("%s (built: %s)\n", buildVersion, buildTime)
	} else {
		fmt.Println("keypad: dev")
	}
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case start.FullCommand():
		err = run(false)
	case poll.FullCommand():
		err = run(true)
	case version.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}

	if err != nil {
		log.Fatal(err)
	}
}

func openController(conf *Config) (hal.Controller, *hal.Sim, error) {
	switch conf.Backend {
	case backendSim:
		s := hal.NewSim()
		return s, s, nil
	case backendPeriph:
		c, err := hal.OpenPeriph()
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case backendRPIO:
		c, err := hal.OpenRPIO()
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	default:
		c, err := hal.OpenChip(conf.Chip)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	}
}

func run(polling bool) error {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	conf, err := readConfig(*configFile)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	mode := conf.ButtonMode()
	if polling {
		mode = button.ModePoll
	}

	ctrl, sim, err := openController(conf)
	if err != nil {
		// keep going: Init reports the missing device below
		log.Error(err)
	} else {
		defer ctrl.Close()
	}

	buttons, err := button.New(button.Config{
		Controller:        ctrl,
		Buttons:           conf.Descriptors(),
		DebounceWindow:    conf.DebounceWindow(),
		PerButtonDebounce: conf.PerButtonDebounce,
		Mode:              mode,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := buttons.Init(ctx); err != nil {
		if errors.Is(err, button.ErrDeviceNotFound) {
			return fmt.Errorf("buttons unavailable, not starting the panel: %w", err)
		}
		return err
	}
	defer buttons.Close()

	panel := newFrontPanel(buttons.Table(), conf.ColorMap())
	closePanel := attachPanel(panel, conf)
	defer closePanel()
	panel.Ready()
	defer panel.Sleep()

	switch mode {
	case button.ModePoll:
		go pollButtons(ctx, buttons, panel, conf.PollInterval())
	default:
		buttons.RegisterNotifyHandler(panel)
		defer buttons.UnregisterNotifyHandler()
	}

	if sim != nil {
		go simulatePresses(ctx, sim, buttons.Table())
	}

	<-signalChan
	log.Info("Done...")
	return nil
}

// attachPanel opens whatever outputs the configuration asks for. An output
// that fails to open is logged and left out.
func attachPanel(p *frontPanel, conf *Config) func() {
	var closers []func()

	if conf.LCD {
		if display, err := lcd.New(); err != nil {
			log.Warn("Unable to start the LCD: ", err)
		} else {
			p.screen = display
		}
	}

	if conf.LEDs {
		if led, err := neopixel.NewLedController(); err != nil {
			log.Warn("Unable to start the LEDs: ", err)
		} else {
			p.lights = led
			closers = append(closers, led.Close)
		}
	}

	if conf.MQTT.Broker != "" {
		pub, err := mqttpub.Connect(mqttpub.Config{
			Broker:   conf.MQTT.Broker,
			Topic:    conf.MQTT.Topic,
			ClientID: conf.MQTT.ClientID,
		})
		if err != nil {
			log.Warn("Unable to connect to mqtt: ", err)
		} else {
			p.forwarder = pub
			closers = append(closers, func() {
				if err := pub.Close(); err != nil {
					log.Warn("Unable to close mqtt cleanly: ", err)
				}
			})
		}
	}

	return func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
