// Package notifytest provides a Notifier that records warnings for tests.
package notifytest

import (
	"sync"

	"github.com/loicsikidi/adminhelper/internal/notify"
)

var _ notify.Notifier = (*Recorder)(nil)

type Warning struct {
	Title string
	Text  string
}

// Recorder stores every warning it receives and returns Err from Warn.
type Recorder struct {
	Err error

	mu       sync.Mutex
	warnings []Warning
}

func (r *Recorder) Warn(title, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{Title: title, Text: text})
	return r.Err
}

func (r *Recorder) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Warning(nil), r.warnings...)
}
