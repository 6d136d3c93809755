// Package xlog is the ambient debug logger for this module. The argument
// engine is purely computational; this logger is never on the path of a
// correctness decision, only a narrow trace of which stage of a proof is
// being built or checked.
package xlog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
)

// SetLevel adjusts the global verbosity, e.g. "debug", "warn", "error".
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	mu.Lock()
	logger = logger.Level(lvl)
	mu.Unlock()
}

// Stage logs which named stage of an argument is currently executing.
func Stage(component, stage string) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debug().Str("component", component).Str("stage", stage).Msg("stage")
}

// FirstFailure logs the first accumulated verification failure for a
// component, to make multi-argument verification traceable without turning
// the failure into a fast-exit.
func FirstFailure(component, reason string) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Warn().Str("component", component).Str("reason", reason).Msg("verification failure")
}
