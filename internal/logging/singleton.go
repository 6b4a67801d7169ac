package logging

import (
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.RWMutex
	logConfig *Config
)

// Configure sets the logging configuration.
// This should be called before any logger usage.
func Configure(config *Config) {
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
}

// GetLogger returns the singleton logger instance, initializing it from the
// configuration set via Configure(). It panics when no configuration was set.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		if logConfig == nil {
			panic("logger configuration not set - call logging.Configure() first")
		}

		var err error
		instance, err = NewLogger(logConfig)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})

	return instance
}
