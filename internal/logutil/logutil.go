package logutil

import (
	"time"

	"github.com/caarlos0/log"
)

// LogDuration logs the time elapsed since start as a padded sub-entry of
// the step it belongs to.
func LogDuration(logger *log.Logger, step string, start time.Time) {
	logger.IncreasePadding()
	logger.WithField("step", step).Infof("took: %s", time.Since(start).Round(time.Millisecond))
	logger.DecreasePadding()
}
