package button

import (
	"context"
	"errors"
	"fmt"
	"github.com/callebjorkell/keypad/internal/hal"
	log "github.com/sirupsen/logrus"
	"strings"
	"sync/atomic"
	"time"
)

var (
	ErrDeviceNotFound     = hal.ErrDeviceNotFound
	ErrAlreadyInitialized = errors.New("buttons already initialized")
)

// Mode selects how presses are consumed. The two modes are exclusive.
type Mode int

const (
	// ModeInterrupt delivers presses to the registered subscriber.
	ModeInterrupt Mode = iota
	// ModePoll only configures the inputs; the consumer calls State itself.
	ModePoll
)

func (m Mode) String() string {
	switch m {
	case ModeInterrupt:
		return "interrupt"
	case ModePoll:
		return "poll"
	}
	return "N/A"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "interrupt":
		return ModeInterrupt, nil
	case "poll":
		return ModePoll, nil
	}
	return ModeInterrupt, fmt.Errorf("unknown button mode %q", s)
}

type Config struct {
	Controller hal.Controller
	// Buttons defaults to DefaultDescriptors when empty.
	Buttons           []Descriptor
	DebounceWindow    time.Duration
	PerButtonDebounce bool
	Mode              Mode
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Buttons owns the whole pipeline: pin table, debounce state, pending event
// and subscriber slot. Independent instances share nothing.
type Buttons struct {
	ctrl       hal.Controller
	table      *Table
	filter     *Filter
	registry   Registry
	dispatcher *Dispatcher
	mode       Mode
	clock      func() time.Time

	initialized atomic.Bool
	cancel      context.CancelFunc
}

func New(cfg Config) (*Buttons, error) {
	descs := cfg.Buttons
	if len(descs) == 0 {
		descs = DefaultDescriptors()
	}
	table, err := NewTable(descs)
	if err != nil {
		return nil, err
	}

	window := cfg.DebounceWindow
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	b := &Buttons{
		ctrl:   cfg.Controller,
		table:  table,
		filter: NewFilter(window, cfg.PerButtonDebounce),
		mode:   cfg.Mode,
		clock:  clock,
	}
	b.dispatcher = NewDispatcher(&b.registry)

	return b, nil
}

// Init configures every button pin as an active-low input with pull-up and,
// in interrupt mode, installs one edge handler for all of them and starts the
// dispatcher. Without a controller it fails with ErrDeviceNotFound and the
// buttons stay inert for good. Init runs once: after a failed attempt the
// instance is spent and later calls return ErrAlreadyInitialized, build a new
// one with New to try again.
func (b *Buttons) Init(ctx context.Context) error {
	log.Infoln("Initializing button handler")
	if b.ctrl == nil {
		log.Error("No GPIO controller, buttons are disabled.")
		return ErrDeviceNotFound
	}
	if !b.initialized.CompareAndSwap(false, true) {
		return ErrAlreadyInitialized
	}

	for _, d := range b.table.entries {
		if err := b.ctrl.ConfigureInput(d.Pin, hal.Input|hal.PullUp|hal.ActiveLow); err != nil {
			return fmt.Errorf("configure %s: %w", d.Name, err)
		}
	}

	if b.mode == ModePoll {
		log.Infof("Buttons configured for polling: %d buttons", b.table.Len())
		return nil
	}

	for _, d := range b.table.entries {
		if err := b.ctrl.ConfigureInterrupt(d.Pin, hal.EdgeToActive); err != nil {
			return fmt.Errorf("configure interrupt for %s: %w", d.Name, err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	b.dispatcher.Start(ctx)
	if err := b.ctrl.AddCallback(b.table.Mask(), b.onEdge); err != nil {
		cancel()
		return fmt.Errorf("install edge handler: %w", err)
	}
	b.cancel = cancel

	log.Infof("Buttons armed: %d buttons, mask 0x%08x, debounce %v (per button: %v)",
		b.table.Len(), b.table.Mask(), b.filter.Window(), b.filter.PerButton())
	return nil
}

// onEdge runs in the controller's edge context: no logging, no blocking and
// no subscriber calls in here.
func (b *Buttons) onEdge(pins uint32) {
	d := b.table.Resolve(pins)
	if !d.ID.Valid() {
		return
	}
	if !b.filter.Accept(d.ID, b.clock()) {
		return
	}
	b.dispatcher.Schedule(d)
}

func (b *Buttons) RegisterNotifyHandler(n Notifiable) {
	b.registry.Register(n)
}

// UnregisterNotifyHandler clears the subscriber. An event that is already
// being delivered still completes.
func (b *Buttons) UnregisterNotifyHandler() {
	b.registry.Unregister()
}

// State returns the first button, in table order, that is currently held,
// or NoPress.
func (b *Buttons) State() ID {
	if b.ctrl == nil {
		return NoPress
	}
	for _, d := range b.table.entries {
		active, err := b.ctrl.Get(d.Pin)
		if err != nil {
			log.Debugf("Unable to read %s: %v", d.Name, err)
			continue
		}
		if active {
			return d.ID
		}
	}
	return NoPress
}

func (b *Buttons) Table() *Table {
	return b.table
}

func (b *Buttons) Mode() Mode {
	return b.mode
}

// Pending reports where the dispatcher is in its idle/scheduled/running cycle.
func (b *Buttons) Pending() State {
	return b.dispatcher.State()
}

// Close stops the dispatcher. The controller belongs to the caller.
func (b *Buttons) Close() error {
	if b.cancel != nil {
		b.cancel()
		<-b.dispatcher.Done()
	}
	return nil
}
