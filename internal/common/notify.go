package common

import (
	"log/slog"
	"sync"
)

// Notifier surfaces a failure to whoever is looking at the dashboard. The
// loaders use it in place of returning errors.
type Notifier interface {
	Error(msg string, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string, err error)

// Error implements Notifier.
func (f NotifierFunc) Error(msg string, err error) {
	f(msg, err)
}

// LogNotifier reports failures through a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Error implements Notifier.
func (n LogNotifier) Error(msg string, err error) {
	LoggerOrDefault(n.Logger).Error(msg, "error", err)
}

// Notice is one recorded notification.
type Notice struct {
	Err     error
	Message string
}

// RecordingNotifier keeps every notification, for tests and for surfaces
// that report failures after the fact.
type RecordingNotifier struct {
	notices []Notice
	mu      sync.Mutex
}

// Error implements Notifier.
func (r *RecordingNotifier) Error(msg string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Message: msg, Err: err})
}

// Notices returns a copy of the recorded notifications.
func (r *RecordingNotifier) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice{}, r.notices...)
}
