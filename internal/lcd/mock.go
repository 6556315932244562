//go:build !pi

package lcd

import (
	log "github.com/sirupsen/logrus"
	"strings"
	"sync"
)

// LCD stands in for the display when there is no hardware. It logs what
// would have been shown and remembers it.
type LCD struct {
	mu    sync.Mutex
	lines [2]string
}

func New() (*LCD, error) {
	log.Infoln("Starting the LCD (mock)")
	return &LCD{}, nil
}

func (l *LCD) printLine(line Line, msg string) {
	i := 0
	if line == Line2 {
		i = 1
	}
	l.lines[i] = Fit(msg)
	log.Debugf("LCD %v: %q", line, l.lines[i])
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

// Lines returns the current content with trailing padding removed.
func (l *LCD) Lines() (string, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.TrimRight(l.lines[0], " "), strings.TrimRight(l.lines[1], " ")
}
