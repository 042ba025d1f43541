package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	daemonName = "bakerd"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for runtime files (sockets, PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/bakerd or /run/user/<uid>/bakerd
//	macOS:   ~/Library/Caches/bakerd/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, daemonName)
	}
	return filepath.Join(xdg.CacheHome, daemonName, "run")
}

// Default path to the Unix domain socket for CLI-to-daemon communication.
//
//	Linux:   $XDG_RUNTIME_DIR/bakerd/bakerd.sock
//	macOS:   ~/Library/Caches/bakerd/run/bakerd.sock
func Socket() string {
	return filepath.Join(Runtime(), daemonName+".sock")
}

// Default path to the PID file.
//
//	Linux:   $XDG_RUNTIME_DIR/bakerd/bakerd.pid
//	macOS:   ~/Library/Caches/bakerd/run/bakerd.pid
func PIDFile() string {
	return filepath.Join(Runtime(), daemonName+".pid")
}

// Default directory for exported image archives.
//
//	Linux:   ~/.local/share/bakerd/images
//	macOS:   ~/Library/Application Support/bakerd/images
func Images() string {
	return filepath.Join(xdg.DataHome, daemonName, "images")
}
