package boundchan

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

type config struct {
	name    string
	logger  logrus.FieldLogger
	onEvent func(Event)
}

// Option configures a [Channel].
type Option func(*config)

var (
	discardOnce   sync.Once
	discardLogger *logrus.Logger
)

func defaultLogger() logrus.FieldLogger {
	discardOnce.Do(func() {
		discardLogger = logrus.New()
		discardLogger.SetOutput(io.Discard)
	})
	return discardLogger
}

func defaultConfig() config {
	return config{
		logger: defaultLogger(),
	}
}

// WithName labels the channel. The name appears in log fields, in
// [Event] values and in [Stats], and is the metric label used by the
// chanmetrics collector.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the structured logger used for lifecycle messages.
// Close and Destroy are logged at debug level, storage failures and
// panicking hooks at error level. By default nothing is logged.
//
// WithLogger panics if l is nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("boundchan: WithLogger requires non-nil logger")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithOnEvent registers a hook invoked for every channel lifecycle
// [Event]. The hook runs in the goroutine that caused the event, after
// the channel lock has been released.
//
// WithOnEvent panics if fn is nil.
func WithOnEvent(fn func(Event)) Option {
	if fn == nil {
		panic("boundchan: WithOnEvent requires non-nil callback")
	}
	return func(c *config) {
		c.onEvent = fn
	}
}
