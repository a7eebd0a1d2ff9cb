// Package notify delivers short user-facing notifications about the pokedex run.
// Delivery is fire-and-forget: a notifier never fails its caller.
package notify

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Title is shown on desktop notifications.
const Title = "Pokédex"

// FetchFailedMessage is sent when the record fetch aborts.
const FetchFailedMessage = "Something went wrong, check the logs"

// Level is a notification severity.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelDanger
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelDanger:
		return "danger"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return LevelInfo, nil
	case "success":
		return LevelSuccess, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "danger", "error":
		return LevelDanger, nil
	}
	return LevelInfo, fmt.Errorf("unknown notification level %q", s)
}

// Notifier shows a message at a severity.
type Notifier interface {
	Notify(level Level, message string)
}

// Log writes notifications to a zerolog logger.
type Log struct {
	logger zerolog.Logger
}

// NewLog creates a notifier that logs under the "notify" component.
func NewLog() *Log {
	return &Log{logger: log.With().Str("component", "notify").Logger()}
}

// NewLogWith creates a notifier on a specific logger.
func NewLogWith(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

// Notify implements Notifier.
func (n *Log) Notify(level Level, message string) {
	var ev *zerolog.Event
	switch level {
	case LevelDanger:
		ev = n.logger.Error()
	case LevelWarning:
		ev = n.logger.Warn()
	default:
		ev = n.logger.Info()
	}
	ev.Str("level_name", level.String()).Msg(message)
}

// Desktop sends notifications through the OS notification service.
type Desktop struct {
	// MinLevel filters out less severe notifications.
	MinLevel Level

	send   func(title, message string, icon any) error
	logger zerolog.Logger
}

// NewDesktop creates a desktop notifier for levels at or above minLevel.
func NewDesktop(minLevel Level) *Desktop {
	return &Desktop{
		MinLevel: minLevel,
		send:     beeep.Notify,
		logger:   log.With().Str("component", "notify").Logger(),
	}
}

// Notify implements Notifier. Delivery errors are logged and dropped.
func (d *Desktop) Notify(level Level, message string) {
	if level < d.MinLevel {
		return
	}
	// Use empty string for icon - beeep handles platform defaults
	if err := d.send(Title, message, ""); err != nil {
		d.logger.Warn().Err(err).Str("level_name", level.String()).Msg("Desktop notification unavailable")
	}
}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(level Level, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(level, message)
		}
	}
}

// Notification is one delivered message.
type Notification struct {
	Level   Level
	Message string
}

// Recorder keeps every notification in memory. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Notification{Level: level, Message: message})
}

// Sent returns a copy of the recorded notifications.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}
