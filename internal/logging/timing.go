package logging

import (
	"time"
)

// TimingContext holds timing information for manual Start/End tracking
type TimingContext struct {
	name      string
	startTime time.Time
	logger    *Logger
}

// Time executes fn and logs its execution time at debug level.
//
// Example:
//
//	logging.Time("load sources", func() {
//	    roots, err = view.Roots(ctx)
//	})
func Time(name string, fn func()) {
	if !IsEnabled() {
		fn()
		return
	}
	ctx := Start(name)
	fn()
	End(ctx)
}

// Start begins a timing measurement. Pair it with End or EndWithCount.
func Start(name string) TimingContext {
	return Get().Start(name)
}

// Start begins a timing measurement bound to this logger
func (l *Logger) Start(name string) TimingContext {
	return TimingContext{name: name, startTime: time.Now(), logger: l}
}

// Elapsed returns the time since Start
func (c TimingContext) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// End logs the duration of a measurement started with Start
func End(ctx TimingContext) {
	if ctx.logger == nil || !ctx.logger.IsEnabled() {
		return
	}
	d := ctx.Elapsed()
	ctx.logger.Debug(ctx.name, "duration", d.String(), "ms", d.Milliseconds())
}

// EndWithCount logs the duration together with an item count
func EndWithCount(ctx TimingContext, count int) {
	if ctx.logger == nil || !ctx.logger.IsEnabled() {
		return
	}
	d := ctx.Elapsed()
	ctx.logger.Debug(ctx.name, "duration", d.String(), "ms", d.Milliseconds(), "count", count)
}
