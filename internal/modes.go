package internal

import (
	"strconv"
	"sync/atomic"
)

// Logging modes. Defaults come from the raw linker-flag strings; the CLI
// overrides them once flags are parsed.
var (
	quietMode   atomic.Bool
	debugMode   atomic.Bool
	verboseMode atomic.Bool
)

func init() {
	storeMode(&quietMode, rawQuiet)
	storeMode(&debugMode, rawDebug)
	storeMode(&verboseMode, rawVerbose)
}

// Parses a raw linker-flag boolean into a mode. Unparseable values leave
// the mode disabled.
func storeMode(mode *atomic.Bool, raw string) {
	if v, err := strconv.ParseBool(raw); err == nil {
		mode.Store(v)
	}
}

// Enables or disables quiet mode.
func SetQuiet(enabled bool) {
	quietMode.Store(enabled)
}

// Returns true if quiet mode is enabled.
func IsQuiet() bool {
	return quietMode.Load()
}

// Enables or disables debug mode.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// Returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode.Load()
}

// Enables or disables verbose logging.
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// Returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verboseMode.Load()
}
