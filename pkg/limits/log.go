package limits

import (
	"time"

	"mercator-hq/jikan/pkg/limits/ratelimit"
	"mercator-hq/jikan/pkg/telemetry/logging"
)

// logObserver writes permit events at debug level.
type logObserver struct {
	logger *logging.Logger
}

// NewLogObserver returns a ratelimit.Observer that logs permit events at
// debug level. Waits longer than a millisecond are logged at info so that
// throttling is visible at the default level.
func NewLogObserver(logger *logging.Logger) ratelimit.Observer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &logObserver{logger: logger.Component("ratelimit")}
}

func (o *logObserver) OnAcquire(w ratelimit.RateWindow, waited time.Duration) {
	if waited > time.Millisecond {
		o.logger.Info("throttled", "window", w.String(), "waited", waited)
		return
	}
	o.logger.Debug("permit acquired", "window", w.String())
}

func (o *logObserver) OnRelease(w ratelimit.RateWindow) {
	o.logger.Debug("permit released", "window", w.String())
}

func (o *logObserver) OnCancel(w ratelimit.RateWindow, err error) {
	o.logger.Debug("permit wait abandoned", "window", w.String(), "error", err)
}
